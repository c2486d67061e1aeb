package poller

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/acquiring/internal/entity"
	"github.com/samandr77/microservices/acquiring/pkg/logger"
)

const (
	DefaultRetries  = 10
	DefaultInterval = 3 * time.Second
)

// StatusService returns the current state of a payment.
type StatusService interface {
	GetPaymentState(ctx context.Context, paymentID string) (entity.PaymentState, error)
}

type Config struct {
	Retries  int
	Interval time.Duration
}

// Listener is called on every state change of a poll.
type Listener func(paymentID string, state entity.SheetState)

// Poll asks for the status of one payment until it is paid, failed, out of retries or dismissed.
type Poll struct {
	id        uuid.UUID
	paymentID string
	service   StatusService
	repeater  *Repeater

	mu         sync.Mutex
	retries    int
	attempts   int
	state      entity.SheetState
	canDismiss bool
	info       entity.PaymentState
	lastErr    error
	listeners  []Listener
	startedAt  time.Time
	started    bool
	cancel     context.CancelFunc
	result     entity.PollResult
	finished   bool
	done       chan struct{}
}

func New(service StatusService, paymentID string, cfg Config) *Poll {
	if cfg.Retries <= 0 {
		cfg.Retries = DefaultRetries
	}

	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}

	return &Poll{
		id:         uuid.Must(uuid.NewV7()),
		paymentID:  paymentID,
		service:    service,
		repeater:   NewRepeater(cfg.Interval),
		retries:    cfg.Retries,
		state:      entity.SheetStateWaiting,
		canDismiss: true,
		info:       entity.PaymentState{PaymentID: paymentID},
		done:       make(chan struct{}),
	}
}

func (p *Poll) ID() uuid.UUID {
	return p.id
}

func (p *Poll) PaymentID() string {
	return p.paymentID
}

// AddListener registers l for state changes. It is not called for the current state.
func (p *Poll) AddListener(l Listener) {
	p.mu.Lock()
	p.listeners = append(p.listeners, l)
	p.mu.Unlock()
}

// Start runs the poll in background. The poll is cancelled when ctx is done.
func (p *Poll) Start(ctx context.Context) {
	go p.Run(ctx)
}

// Run polls until the poll is over and returns its result. Only the first call polls,
// the others wait for the result.
func (p *Poll) Run(ctx context.Context) entity.PollResult {
	p.mu.Lock()

	if p.started || p.finished {
		p.mu.Unlock()
		return p.Wait(ctx)
	}

	ctx, cancel := context.WithCancel(logger.WithPaymentID(ctx, p.paymentID))
	defer cancel()

	p.started = true
	p.startedAt = time.Now()
	p.cancel = cancel

	p.mu.Unlock()

	slog.InfoContext(ctx, "payment status polling started")

	for {
		err := p.repeater.Wait(ctx)
		if err != nil {
			p.resolve(ctx, entity.PollOutcomeCancelled, err)
			break
		}

		state, err := p.service.GetPaymentState(ctx, p.paymentID)
		if ctx.Err() != nil {
			p.resolve(ctx, entity.PollOutcomeCancelled, ctx.Err())
			break
		}

		if !p.handle(ctx, state, err) {
			break
		}
	}

	return p.Result()
}

// State returns the current state of the poll.
func (p *Poll) State() entity.SheetState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

func (p *Poll) CanDismiss() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.canDismiss
}

// Info returns the payment state of the last successful status request.
func (p *Poll) Info() entity.PaymentState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.info
}

// Dismiss stops the poll on behalf of the client and returns its result.
// It fails with ErrDismissNotAllowed while the payment is processing.
func (p *Poll) Dismiss(ctx context.Context) (entity.PollResult, error) {
	p.mu.Lock()

	if p.finished {
		res := p.result
		p.mu.Unlock()

		return res, nil
	}

	if !p.canDismiss {
		p.mu.Unlock()
		return entity.PollResult{}, entity.ErrDismissNotAllowed
	}

	cancel := p.finishLocked(p.outcomeLocked())
	res := p.result

	p.mu.Unlock()

	p.afterFinish(logger.WithPaymentID(ctx, p.paymentID), res, cancel)

	return res, nil
}

// View returns a consistent snapshot of the poll.
func (p *Poll) View() entity.PollView {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := entity.PollView{
		ID:         p.id,
		PaymentID:  p.paymentID,
		State:      p.state,
		CanDismiss: p.canDismiss,
		Info:       p.info,
		Attempts:   p.attempts,
		Finished:   p.finished,
	}

	if p.finished {
		v.Outcome = p.result.Outcome
		v.FinishedAt = p.result.FinishedAt

		if p.result.Err != nil {
			v.Error = p.result.Err.Error()
		}
	}

	return v
}

// Done is closed when the poll is over.
func (p *Poll) Done() <-chan struct{} {
	return p.done
}

// Finished reports whether the poll is over.
func (p *Poll) Finished() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Result returns the result of a finished poll or a zero value if it is still running.
func (p *Poll) Result() entity.PollResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.result
}

// Wait blocks until the poll is over or ctx is done.
func (p *Poll) Wait(ctx context.Context) entity.PollResult {
	select {
	case <-ctx.Done():
		return entity.PollResult{}
	case <-p.done:
		return p.Result()
	}
}

// handle applies a status response and reports whether polling continues.
func (p *Poll) handle(ctx context.Context, state entity.PaymentState, err error) bool {
	p.mu.Lock()

	if p.finished {
		p.mu.Unlock()
		return false
	}

	p.retries--
	p.attempts++
	retryAllowed := p.retries > 0

	var (
		next   entity.SheetState
		repeat bool
	)

	if err != nil {
		slog.WarnContext(ctx, "failed to get payment state",
			slog.Int("attempt", p.attempts),
			slog.String("err", err.Error()),
		)

		p.lastErr = err
		next, repeat = p.state, retryAllowed

		if !retryAllowed {
			next = entity.SheetStateTimeout
		}
	} else {
		p.info = state
		next, repeat = nextState(state.Status, retryAllowed)
	}

	changed := next != p.state
	p.state = next
	p.canDismiss = next.CanDismiss()
	listeners := slices.Clone(p.listeners)

	var cancel context.CancelFunc
	if !repeat {
		cancel = p.finishLocked(p.outcomeLocked())
	}

	res := p.result

	p.mu.Unlock()

	if changed {
		slog.InfoContext(ctx, "payment status poll state changed", slog.String("state", next.String()))

		for _, l := range listeners {
			l(p.paymentID, next)
		}
	}

	if !repeat {
		p.afterFinish(ctx, res, cancel)
	}

	return repeat
}

// resolve finishes the poll with the given outcome unless it is already over.
func (p *Poll) resolve(ctx context.Context, outcome entity.PollOutcome, err error) {
	p.mu.Lock()

	if p.finished {
		p.mu.Unlock()
		return
	}

	cancel := p.finishLocked(outcome, err)
	res := p.result

	p.mu.Unlock()

	p.afterFinish(ctx, res, cancel)
}

// outcomeLocked maps the current state to the poll outcome. mu must be held.
func (p *Poll) outcomeLocked() (entity.PollOutcome, error) {
	switch p.state {
	case entity.SheetStatePaid:
		return entity.PollOutcomeSucceeded, nil
	case entity.SheetStatePaymentFailed:
		return entity.PollOutcomeFailed, entity.ErrRejected
	case entity.SheetStateTimeout:
		return entity.PollOutcomeFailed, &entity.TimeoutError{Err: p.lastErr}
	default:
		return entity.PollOutcomeCancelled, nil
	}
}

// finishLocked stores the result and closes done. mu must be held.
func (p *Poll) finishLocked(outcome entity.PollOutcome, err error) context.CancelFunc {
	now := time.Now()

	startedAt := p.startedAt
	if startedAt.IsZero() {
		startedAt = now
	}

	p.finished = true
	p.canDismiss = true
	p.result = entity.PollResult{
		ID:         p.id,
		PaymentID:  p.paymentID,
		Outcome:    outcome,
		State:      p.state,
		Info:       p.info,
		Err:        err,
		Attempts:   p.attempts,
		StartedAt:  startedAt,
		FinishedAt: now,
	}

	close(p.done)

	return p.cancel
}

func (p *Poll) afterFinish(ctx context.Context, res entity.PollResult, cancel context.CancelFunc) {
	if cancel != nil {
		cancel()
	}

	attrs := []any{
		slog.String("outcome", res.Outcome.String()),
		slog.String("state", res.State.String()),
		slog.Int("attempts", res.Attempts),
	}
	if res.Err != nil {
		attrs = append(attrs, slog.String("err", res.Err.Error()))
	}

	slog.InfoContext(ctx, "payment status polling finished", attrs...)
}

// nextState maps a remote payment status to the poll state and reports whether to poll again.
func nextState(status entity.PaymentStatus, retryAllowed bool) (entity.SheetState, bool) {
	switch status {
	case entity.PaymentStatusAuthorized, entity.PaymentStatusConfirmed:
		return entity.SheetStatePaid, false
	case entity.PaymentStatusRejected,
		entity.PaymentStatusCanceled,
		entity.PaymentStatusReversed,
		entity.PaymentStatusRefunded,
		entity.PaymentStatusAuthFail:
		return entity.SheetStatePaymentFailed, false
	case entity.PaymentStatusDeadlineExpired:
		return entity.SheetStateTimeout, false
	}

	if !retryAllowed {
		return entity.SheetStateTimeout, false
	}

	switch status {
	case entity.PaymentStatusAuthorizing,
		entity.PaymentStatusConfirming,
		entity.PaymentStatus3DSChecking,
		entity.PaymentStatus3DSChecked:
		return entity.SheetStateProcessing, true
	default:
		return entity.SheetStateWaiting, true
	}
}
