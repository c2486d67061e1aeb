package poller_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/acquiring/internal/entity"
	"github.com/samandr77/microservices/acquiring/internal/poller"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var testConfig = poller.Config{Retries: 3, Interval: time.Millisecond}

type step struct {
	status entity.PaymentStatus
	err    error
	gate   chan struct{}
}

type scriptedService struct {
	mu    sync.Mutex
	steps []step
	calls int
}

func newScriptedService(steps ...step) *scriptedService {
	return &scriptedService{steps: steps}
}

func (s *scriptedService) GetPaymentState(ctx context.Context, paymentID string) (entity.PaymentState, error) {
	s.mu.Lock()
	i := min(s.calls, len(s.steps)-1)
	st := s.steps[i]
	s.calls++
	s.mu.Unlock()

	if st.gate != nil {
		select {
		case <-st.gate:
		case <-ctx.Done():
			return entity.PaymentState{}, ctx.Err()
		}
	}

	if st.err != nil {
		return entity.PaymentState{}, st.err
	}

	return entity.PaymentState{PaymentID: paymentID, OrderID: "order", Status: st.status}, nil
}

func (s *scriptedService) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

type stateLog struct {
	mu     sync.Mutex
	states []entity.SheetState
}

func (l *stateLog) listen(_ string, state entity.SheetState) {
	l.mu.Lock()
	l.states = append(l.states, state)
	l.mu.Unlock()
}

func (l *stateLog) States() []entity.SheetState {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.states)
}

func TestPoll_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	service := newScriptedService(step{status: entity.PaymentStatusFormShowed})
	p := poller.New(service, "2222", testConfig)

	res := p.Run(context.Background())

	require.Equal(t, testConfig.Retries, service.Calls())
	require.Equal(t, entity.PollOutcomeFailed, res.Outcome)
	require.Equal(t, entity.SheetStateTimeout, res.State)
	require.Equal(t, testConfig.Retries, res.Attempts)
	require.ErrorIs(t, res.Err, entity.ErrTimeout)

	var timeoutErr *entity.TimeoutError
	require.ErrorAs(t, res.Err, &timeoutErr)
	require.NoError(t, timeoutErr.Err)
}

func TestPoll_ProcessingIsBudgeted(t *testing.T) {
	t.Parallel()

	service := newScriptedService(step{status: entity.PaymentStatusAuthorizing})
	p := poller.New(service, "2222", testConfig)

	states := &stateLog{}
	p.AddListener(states.listen)

	res := p.Run(context.Background())

	require.Equal(t, testConfig.Retries, service.Calls())
	require.Equal(t, entity.SheetStateTimeout, res.State)
	require.Equal(t, []entity.SheetState{entity.SheetStateProcessing, entity.SheetStateTimeout}, states.States())
	require.True(t, p.CanDismiss())
}

func TestPoll_Paid(t *testing.T) {
	t.Parallel()

	service := newScriptedService(
		step{status: entity.PaymentStatusFormShowed},
		step{status: entity.PaymentStatusAuthorizing},
		step{status: entity.PaymentStatusConfirmed},
	)
	p := poller.New(service, "2222", poller.Config{Retries: 10, Interval: time.Millisecond})

	states := &stateLog{}
	p.AddListener(states.listen)

	res := p.Run(context.Background())

	require.Equal(t, entity.PollOutcomeSucceeded, res.Outcome)
	require.NoError(t, res.Err)
	require.Equal(t, entity.SheetStatePaid, res.State)
	require.Equal(t, entity.PaymentStatusConfirmed, res.Info.Status)
	require.Equal(t, 3, res.Attempts)
	require.Equal(t, p.ID(), res.ID)
	require.Equal(t, []entity.SheetState{entity.SheetStateProcessing, entity.SheetStatePaid}, states.States())
}

func TestPoll_FinalStatuses(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		status  entity.PaymentStatus
		state   entity.SheetState
		wantErr error
	}{
		{status: entity.PaymentStatusAuthorized, state: entity.SheetStatePaid},
		{status: entity.PaymentStatusConfirmed, state: entity.SheetStatePaid},
		{status: entity.PaymentStatusRejected, state: entity.SheetStatePaymentFailed, wantErr: entity.ErrRejected},
		{status: entity.PaymentStatusCanceled, state: entity.SheetStatePaymentFailed, wantErr: entity.ErrRejected},
		{status: entity.PaymentStatusReversed, state: entity.SheetStatePaymentFailed, wantErr: entity.ErrRejected},
		{status: entity.PaymentStatusRefunded, state: entity.SheetStatePaymentFailed, wantErr: entity.ErrRejected},
		{status: entity.PaymentStatusAuthFail, state: entity.SheetStatePaymentFailed, wantErr: entity.ErrRejected},
		{status: entity.PaymentStatusDeadlineExpired, state: entity.SheetStateTimeout, wantErr: entity.ErrTimeout},
	} {
		tt := tt

		t.Run(tt.status.String(), func(t *testing.T) {
			t.Parallel()

			service := newScriptedService(step{status: tt.status})
			res := poller.New(service, "2222", testConfig).Run(context.Background())

			require.Equal(t, 1, service.Calls())
			require.Equal(t, tt.state, res.State)

			if tt.wantErr == nil {
				require.Equal(t, entity.PollOutcomeSucceeded, res.Outcome)
				require.NoError(t, res.Err)

				return
			}

			require.Equal(t, entity.PollOutcomeFailed, res.Outcome)
			require.ErrorIs(t, res.Err, tt.wantErr)
		})
	}
}

func TestPoll_ErrorsConsumeBudget(t *testing.T) {
	t.Parallel()

	errFirst := errors.New("connection refused")
	errLast := errors.New("i/o timeout")

	service := newScriptedService(
		step{err: errFirst},
		step{status: entity.PaymentStatusFormShowed},
		step{err: errLast},
	)
	res := poller.New(service, "2222", testConfig).Run(context.Background())

	require.Equal(t, 3, service.Calls())
	require.Equal(t, entity.SheetStateTimeout, res.State)
	require.ErrorIs(t, res.Err, entity.ErrTimeout)
	require.ErrorIs(t, res.Err, errLast)
	require.NotErrorIs(t, res.Err, errFirst)
	require.Equal(t, entity.PaymentStatusFormShowed, res.Info.Status)
}

func TestPoll_ErrorThenPaid(t *testing.T) {
	t.Parallel()

	service := newScriptedService(
		step{err: errors.New("bad gateway")},
		step{status: entity.PaymentStatusAuthorized},
	)
	res := poller.New(service, "2222", testConfig).Run(context.Background())

	require.Equal(t, entity.PollOutcomeSucceeded, res.Outcome)
	require.Equal(t, 2, res.Attempts)
}

func TestPoll_DismissWhileProcessing(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	service := newScriptedService(
		step{status: entity.PaymentStatusConfirming},
		step{status: entity.PaymentStatusConfirmed, gate: gate},
	)
	p := poller.New(service, "2222", testConfig)
	p.Start(context.Background())

	require.Eventually(t, func() bool { return p.State() == entity.SheetStateProcessing }, waitFor, tick)
	require.False(t, p.CanDismiss())

	_, err := p.Dismiss(context.Background())
	require.ErrorIs(t, err, entity.ErrDismissNotAllowed)
	require.False(t, p.Finished())

	close(gate)
	<-p.Done()

	res, err := p.Dismiss(context.Background())
	require.NoError(t, err)
	require.Equal(t, entity.PollOutcomeSucceeded, res.Outcome)
	require.Equal(t, p.Result(), res)
}

func TestPoll_DismissWhileWaiting(t *testing.T) {
	t.Parallel()

	service := newScriptedService(
		step{status: entity.PaymentStatusFormShowed},
		step{status: entity.PaymentStatusConfirmed, gate: make(chan struct{})},
	)
	p := poller.New(service, "2222", testConfig)
	p.Start(context.Background())

	require.Eventually(t, func() bool { return service.Calls() == 2 }, waitFor, tick)
	require.True(t, p.CanDismiss())

	res, err := p.Dismiss(context.Background())
	require.NoError(t, err)
	require.Equal(t, entity.PollOutcomeCancelled, res.Outcome)
	require.Equal(t, entity.SheetStateWaiting, res.State)
	require.Equal(t, entity.PaymentStatusFormShowed, res.Info.Status)
	require.NoError(t, res.Err)

	select {
	case <-p.Done():
	case <-time.After(waitFor):
		t.Fatal("poll is not done after dismiss")
	}

	again, err := p.Dismiss(context.Background())
	require.NoError(t, err)
	require.Equal(t, res, again)
	require.Equal(t, 2, service.Calls())
}

func TestPoll_ContextCancelled(t *testing.T) {
	t.Parallel()

	service := newScriptedService(step{status: entity.PaymentStatusNew, gate: make(chan struct{})})
	p := poller.New(service, "2222", testConfig)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	require.Eventually(t, func() bool { return service.Calls() == 1 }, waitFor, tick)
	cancel()

	res := p.Wait(context.Background())
	require.Equal(t, entity.PollOutcomeCancelled, res.Outcome)
	require.ErrorIs(t, res.Err, context.Canceled)
	require.Zero(t, res.Attempts)
}

func TestPoll_RunTwice(t *testing.T) {
	t.Parallel()

	service := newScriptedService(step{status: entity.PaymentStatusConfirmed})
	p := poller.New(service, "2222", testConfig)

	first := p.Run(context.Background())
	second := p.Run(context.Background())

	require.Equal(t, first, second)
	require.Equal(t, 1, service.Calls())
}
