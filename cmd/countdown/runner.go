// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"sync"

	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/waitables/clock"
	"github.com/xmidt-org/waitables/countdown"
	"github.com/xmidt-org/waitables/semaphore"
	"go.uber.org/zap"
)

// runner hands out tasks to a fixed pool of workers.  The semaphore bounds how many workers are
// busy at once, and the latch counts finished tasks.
type runner struct {
	config  Config
	logger  *zap.Logger
	clock   clock.Interface
	latch   *countdown.Latch
	permits *semaphore.Semaphore
}

func newRunner(c Config, logger *zap.Logger, p provider.Provider) *runner {
	r := &runner{
		config: c,
		logger: logger,
		clock:  clock.System(),
	}

	r.latch = countdown.New(
		c.Tasks,
		append(countdown.NewMeasures(p).Options(), countdown.WithLogger(logger))...,
	)

	r.permits = semaphore.New(
		c.Concurrency,
		c.Concurrency,
		append(semaphore.NewMeasures(p).Options(), semaphore.WithLogger(logger))...,
	)

	return r
}

func (r *runner) work(id int, tasks <-chan int) {
	for task := range tasks {
		p := r.permits.Wait()
		r.clock.Sleep(r.config.Work)
		if err := p.Release(); err != nil {
			r.logger.Error("unable to release permit", zap.Int("worker", id), zap.Error(err))
		}

		r.logger.Debug("task complete", zap.Int("worker", id), zap.Int("task", task))
		r.latch.Tick()
	}
}

// run executes every task and blocks until all of them have completed, logging the remaining
// count at each progress interval.
func (r *runner) run() {
	var (
		tasks = make(chan int)
		wg    sync.WaitGroup
	)

	r.logger.Info("starting tasks",
		zap.Int("tasks", r.config.Tasks),
		zap.Int("workers", r.config.Workers),
		zap.Int("concurrency", r.config.Concurrency),
	)

	wg.Add(r.config.Workers)
	for i := 0; i < r.config.Workers; i++ {
		go func(id int) {
			defer wg.Done()
			r.work(id, tasks)
		}(i)
	}

	go func() {
		defer close(tasks)
		for t := 0; t < r.config.Tasks; t++ {
			tasks <- t
		}
	}()

	for !r.latch.WaitFor(r.config.Progress) {
		r.logger.Info("waiting on tasks", zap.Int("remaining", r.latch.Count()), zap.Stringer("permits", r.permits))
	}

	r.logger.Info("all tasks complete", zap.Stringer("latch", r.latch))
	wg.Wait()
}
