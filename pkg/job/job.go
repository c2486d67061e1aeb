package job

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

type job struct {
	name     string
	interval time.Duration
	timeout  time.Duration
	fn       func(ctx context.Context) error
}

// Service runs registered functions periodically until the context is done.
type Service struct {
	jobs []job
	wg   sync.WaitGroup
}

func NewService() *Service {
	return &Service{}
}

func (s *Service) RegisterJob(name string, interval time.Duration, fn func(ctx context.Context) error) *Service {
	return s.TryRegisterJob(true, name, interval, fn)
}

func (s *Service) TryRegisterJob(isEnabled bool, name string, interval time.Duration, fn func(ctx context.Context) error) *Service {
	if !isEnabled || interval <= 0 {
		return s
	}

	s.jobs = append(s.jobs, job{
		name:     name,
		interval: interval,
		timeout:  interval,
		fn:       fn,
	})

	return s
}

func (s *Service) Start(ctx context.Context) {
	for _, v := range s.jobs {
		s.wg.Add(1)

		go s.startJob(ctx, v)
	}
}

func (s *Service) startJob(ctx context.Context, j job) {
	defer s.wg.Done()

	l := slog.Default().With("job", j.name)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		l.DebugContext(ctx, "job started")

		err := s.run(ctx, j)
		if err != nil {
			l.ErrorContext(ctx, "job failed", "error", err)
		} else {
			l.DebugContext(ctx, "job done")
		}

		select {
		case <-ctx.Done():
			l.DebugContext(ctx, "context done")
			return

		case <-ticker.C:
		}
	}
}

func (s *Service) run(ctx context.Context, j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panic: %v", r)
			slog.ErrorContext(ctx, "job panic", "job", j.name, "error", r, "stack", string(debug.Stack()))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	return j.fn(ctx)
}

// Stop waits for all jobs to return. The context passed to Start must be cancelled first.
func (s *Service) Stop() {
	s.wg.Wait()
}
