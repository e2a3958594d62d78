// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/waitables/clock/clocktest"
)

// assertState verifies the counters of a semaphore along with the ordering invariant.
func assertState(t *testing.T, s *Semaphore, available, ceiling int) {
	assert := assert.New(t)
	assert.Equal(available, s.Available(), "available")
	assert.Equal(ceiling, s.Ceiling(), "ceiling")
	assert.LessOrEqual(s.Available(), s.Ceiling())
	assert.LessOrEqual(s.Ceiling(), s.Max())
}

func testNewInvalidCount(t *testing.T) {
	for _, c := range [][2]int{{-1, 1}, {0, -1}, {2, 1}} {
		t.Run(fmt.Sprintf("initial=%d,max=%d", c[0], c[1]), func(t *testing.T) {
			assert := assert.New(t)
			defer func() {
				r := recover()
				err, ok := r.(error)
				assert.True(ok)
				assert.ErrorIs(err, ErrInvalidCount)
			}()

			New(c[0], c[1])
		})
	}
}

func testNewValidCount(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {0, 2}, {1, 1}, {3, 5}} {
		t.Run(fmt.Sprintf("initial=%d,max=%d", c[0], c[1]), func(t *testing.T) {
			s := New(c[0], c[1])
			require.NotNil(t, s)
			assert.Equal(t, c[1], s.Max())
			assertState(t, s, c[0], c[0])
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("InvalidCount", testNewInvalidCount)
	t.Run("ValidCount", testNewValidCount)
}

func TestUncontested(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		s       = New(1, 1)
	)

	p, err := s.TryWait()
	require.NoError(err)
	require.NotNil(p)
	assertState(t, s, 0, 1)

	second, err := s.TryWait()
	assert.Nil(second)
	assert.Equal(ErrTimeout, err)
	assertState(t, s, 0, 1)

	assert.NoError(p.Release())
	assertState(t, s, 1, 1)

	again, err := s.WaitFor(0)
	assert.NoError(err)
	assert.NotNil(again)
}

func TestZero(t *testing.T) {
	var (
		assert = assert.New(t)
		s      = New(0, 0)
	)

	for i := 0; i < 3; i++ {
		p, err := s.TryWait()
		assert.Nil(p)
		assert.Equal(ErrTimeout, err)
	}

	p, err := s.WaitFor(10 * time.Millisecond)
	assert.Nil(p)
	assert.Equal(ErrTimeout, err)
	assertState(t, s, 0, 0)
}

func TestWaitForTimeout(t *testing.T) {
	var (
		assert = assert.New(t)
		c      = new(clocktest.Mock)
		timer  = clocktest.NewFiredTimer()
		now    = time.Now()
		s      = New(0, 1, WithClock(c))
	)

	c.OnNow(now)
	c.OnNewTimer(time.Second, timer).Once()

	p, err := s.WaitFor(time.Second)
	assert.Nil(p)
	assert.Equal(ErrTimeout, err)
	assertState(t, s, 0, 0)

	c.AssertExpectations(t)
	timer.AssertExpectations(t)
}

func TestWaitForExpiredDeadline(t *testing.T) {
	var (
		assert = assert.New(t)
		c      = new(clocktest.Mock)
		now    = time.Now()
		s      = New(0, 1, WithClock(c))
	)

	// the second reading is already past the deadline, so no timer is created
	c.OnNow(now).Once()
	c.OnNow(now.Add(time.Minute)).Once()

	p, err := s.WaitFor(time.Second)
	assert.Nil(p)
	assert.Equal(ErrTimeout, err)
	c.AssertExpectations(t)
}

// releaseXOfY has x goroutines wait on an empty semaphore with a maximum of y, then releases
// x permits at once after a delay.  Every waiter must succeed, and only after the release.
func releaseXOfY(t *testing.T, x, y int) *Semaphore {
	var (
		s        = New(0, y)
		released atomic.Bool
		held     = new(sync.WaitGroup)
		done     = make(chan struct{})
		permits  = make(chan *Permit, x)
	)

	held.Add(x)
	for i := 0; i < x; i++ {
		go func() {
			defer held.Done()
			p, err := s.TryWait()
			assert.Nil(t, p)
			assert.Equal(t, ErrTimeout, err)

			p, err = s.WaitFor(time.Second)
			if assert.NoError(t, err) {
				assert.True(t, released.Load(), "a permit was acquired before the release")
				permits <- p
			}
		}()
	}

	go func() {
		time.Sleep(100 * time.Millisecond)
		released.Store(true)
		s.Release(x)
	}()

	go func() {
		held.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "waiters did not finish")
	}

	assert.Len(t, permits, x)
	assertState(t, s, 0, x)
	return s
}

func TestRelease(t *testing.T) {
	t.Run("1of1", func(t *testing.T) { releaseXOfY(t, 1, 1) })
	t.Run("1of2", func(t *testing.T) { releaseXOfY(t, 1, 2) })
	t.Run("2of2", func(t *testing.T) { releaseXOfY(t, 2, 2) })
	t.Run("2of3", func(t *testing.T) { releaseXOfY(t, 2, 3) })
	t.Run("5of8", func(t *testing.T) { releaseXOfY(t, 5, 8) })
}

func TestReleaseSequentiallyAndForget(t *testing.T) {
	const count = 2

	var (
		require = require.New(t)
		s       = New(0, count)
		wg      = new(sync.WaitGroup)
	)

	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			p, err := s.WaitFor(time.Second)
			if assert.NoError(t, err) {
				assert.NoError(t, p.Forget())
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < count; i++ {
		require.NoError(s.TryRelease(1))
	}

	wg.Wait()

	// every permit was forgotten, so nothing can ever be acquired again without a release
	p, err := s.TryWait()
	assert.Nil(t, p)
	assert.Equal(t, ErrTimeout, err)
	assertState(t, s, 0, 0)
}

func TestDomino(t *testing.T) {
	const waiterCount = 4

	var (
		s        = New(0, waiterCount)
		acquired = make(chan *Permit, waiterCount)
		ready    = new(sync.WaitGroup)
	)

	ready.Add(waiterCount)
	for i := 0; i < waiterCount; i++ {
		go func() {
			ready.Done()
			acquired <- s.Wait()
		}()
	}

	ready.Wait()
	time.Sleep(20 * time.Millisecond)

	// a single release must cascade through every blocked waiter
	s.Release(waiterCount)
	for i := 0; i < waiterCount; i++ {
		select {
		case p := <-acquired:
			require.NotNil(t, p)
		case <-time.After(time.Second):
			require.FailNow(t, "a permit was stranded", "%d of %d waiters acquired", i, waiterCount)
		}
	}

	assertState(t, s, 0, waiterCount)
}

func TestWaitBlocksUntilPermitReleased(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		s       = New(1, 1)
		first   = s.Wait()
		result  = make(chan *Permit)
	)

	go func() {
		result <- s.Wait()
	}()

	select {
	case <-result:
		require.FailNow("Wait did not block")
	case <-time.After(50 * time.Millisecond):
	}

	assert.NoError(first.Release())
	select {
	case p := <-result:
		assert.NotNil(p)
		assertState(t, s, 0, 1)
	case <-time.After(time.Second):
		require.FailNow("Wait blocked unexpectedly")
	}
}

func testTryReleaseSuccess(t *testing.T) {
	s := New(1, 3)
	assert.NoError(t, s.TryRelease(0))
	assertState(t, s, 1, 1)

	assert.NoError(t, s.TryRelease(2))
	assertState(t, s, 3, 3)
}

func testTryReleaseFailure(t *testing.T) {
	var (
		assert = assert.New(t)
		s      = New(1, 2)
	)

	assert.ErrorIs(s.TryRelease(2), ErrCeilingExceeded)
	assertState(t, s, 1, 1)

	assert.ErrorIs(s.TryRelease(-1), ErrInvalidCount)
	assertState(t, s, 1, 1)

	// a held permit still counts against the ceiling
	p, err := s.TryWait()
	require.NoError(t, err)
	assert.NoError(s.TryRelease(1))
	assert.ErrorIs(s.TryRelease(1), ErrCeilingExceeded)
	assertState(t, s, 1, 2)
	assert.NoError(p.Release())
	assertState(t, s, 2, 2)
}

func testReleasePanics(t *testing.T) {
	s := New(2, 2)
	assert.PanicsWithValue(t, ErrCeilingExceeded, func() {
		s.Release(1)
	})

	assertState(t, s, 2, 2)
}

func TestTryRelease(t *testing.T) {
	t.Run("Success", testTryReleaseSuccess)
	t.Run("Failure", testTryReleaseFailure)
	t.Run("Panics", testReleasePanics)
}

func TestModify(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		s       = New(2, 4)
	)

	assert.NoError(s.TryModify(0))
	assertState(t, s, 2, 2)

	assert.ErrorIs(s.TryModify(3), ErrCeilingExceeded)
	assertState(t, s, 2, 2)

	assert.NoError(s.TryModify(2))
	assertState(t, s, 4, 4)

	p, err := s.TryWait()
	require.NoError(err)

	// only the three free permits can be withdrawn
	assert.ErrorIs(s.TryModify(-4), ErrInsufficientPermits)
	assertState(t, s, 3, 4)

	assert.NoError(s.TryModify(-3))
	assertState(t, s, 0, 1)

	assert.NoError(p.Release())
	assertState(t, s, 1, 1)

	assert.PanicsWithValue(ErrCeilingExceeded, func() {
		s.Modify(4)
	})

	assert.PanicsWithValue(ErrInsufficientPermits, func() {
		s.Modify(-2)
	})

	s.Modify(-1)
	assertState(t, s, 0, 0)

	s.Modify(3)
	assertState(t, s, 3, 3)
}

func TestModifyShrinkBeyondMax(t *testing.T) {
	for _, delta := range []int{math.MinInt, math.MinInt + 1, -3} {
		t.Run(strconv.Itoa(delta), func(t *testing.T) {
			var (
				assert = assert.New(t)
				s      = New(1, 2)
			)

			assert.ErrorIs(s.TryModify(delta), ErrInsufficientPermits)
			assertState(t, s, 1, 1)

			assert.PanicsWithValue(ErrInsufficientPermits, func() {
				s.Modify(delta)
			})

			assertState(t, s, 1, 1)
		})
	}
}

func TestShrinkRejectsNonPositive(t *testing.T) {
	s := New(1, 1)
	assert.ErrorIs(t, s.shrink(0), ErrInvalidCount)
	assert.ErrorIs(t, s.shrink(math.MinInt64), ErrInvalidCount)
	assertState(t, s, 1, 1)
}

func TestModifyWakesWaiter(t *testing.T) {
	var (
		require = require.New(t)
		s       = New(0, 1)
		result  = make(chan error, 1)
	)

	go func() {
		_, err := s.WaitFor(time.Second)
		result <- err
	}()

	time.Sleep(20 * time.Millisecond)
	s.Modify(1)

	select {
	case err := <-result:
		require.NoError(err)
	case <-time.After(2 * time.Second):
		require.FailNow("Modify did not wake the waiter")
	}
}

func TestConcurrentInvariant(t *testing.T) {
	const (
		goroutines = 8
		iterations = 500
		max        = 4
	)

	var (
		s      = New(max, max)
		wg     = new(sync.WaitGroup)
		stop   = make(chan struct{})
		broken atomic.Bool
	)

	// each counter is read atomically on its own, and must always be within bounds
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				if a, c := s.Available(), s.Ceiling(); a < 0 || c < 0 || a > max || c > max {
					broken.Store(true)
				}
			}
		}
	}()

	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				p, err := s.WaitFor(10 * time.Millisecond)
				if errors.Is(err, ErrTimeout) {
					continue
				}

				if (g+i)%97 == 0 {
					p.Forget()

					// put the unit back so the pool does not drain
					s.Release(1)
				} else {
					p.Release()
				}
			}
		}(g)
	}

	wg.Wait()
	close(stop)

	assert.False(t, broken.Load())
	assertState(t, s, max, max)
}

func TestString(t *testing.T) {
	s := New(1, 3)
	assert.Equal(t, "Semaphore(1/1, max=3)", s.String())

	p, _ := s.TryWait()
	assert.Equal(t, "Semaphore(0/1, max=3)", s.String())
	p.Forget()
	assert.Equal(t, "Semaphore(0/0, max=3)", s.String())
}
