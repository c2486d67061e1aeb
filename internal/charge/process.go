package charge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samandr77/microservices/acquiring/internal/entity"
	"github.com/samandr77/microservices/acquiring/pkg/logger"
)

// PaymentsService registers payments and charges saved cards.
type PaymentsService interface {
	InitPayment(ctx context.Context, order entity.InitOrder) (entity.InitPayload, error)
	Charge(ctx context.Context, paymentID, rebillID string) (entity.ChargePayload, error)
}

// Delegate receives the outcome of a process. Exactly one method is called unless
// the process was cancelled.
type Delegate interface {
	PaymentFinished(p *Process, state entity.PaymentState)
	PaymentFailed(p *Process, err error)
}

// Process charges a card saved for recurrent payments. A full process registers the
// payment with Init first, a finishing one charges an already registered payment.
type Process struct {
	service  PaymentsService
	delegate Delegate
	order    *entity.InitOrder
	rebillID string

	mu        sync.Mutex
	paymentID string
	started   bool
	cancelled bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewFull(service PaymentsService, order entity.InitOrder, rebillID string, delegate Delegate) *Process {
	return &Process{
		service:  service,
		delegate: delegate,
		order:    &order,
		rebillID: rebillID,
		done:     make(chan struct{}),
	}
}

func NewFinish(service PaymentsService, paymentID, rebillID string, delegate Delegate) *Process {
	return &Process{
		service:   service,
		delegate:  delegate,
		paymentID: paymentID,
		rebillID:  rebillID,
		done:      make(chan struct{}),
	}
}

// PaymentID is empty until Init of a full process succeeds.
func (p *Process) PaymentID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.paymentID
}

func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Start runs the process in background.
func (p *Process) Start(ctx context.Context) {
	go func() {
		_, _ = p.Run(ctx)
	}()
}

// Run executes the process and reports the outcome to the delegate.
func (p *Process) Run(ctx context.Context) (entity.PaymentState, error) {
	p.mu.Lock()

	if p.started {
		p.mu.Unlock()
		return entity.PaymentState{}, errors.New("charge process already started")
	}

	p.started = true

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	cancelled := p.cancelled

	p.mu.Unlock()

	defer close(p.done)
	defer cancel()

	if cancelled {
		return entity.PaymentState{}, entity.ErrCancelled
	}

	state, err := p.run(ctx)
	if err != nil {
		slog.WarnContext(ctx, "charge failed", slog.String("err", err.Error()))
		p.report(func(d Delegate) { d.PaymentFailed(p, err) })

		return entity.PaymentState{}, err
	}

	slog.InfoContext(logger.WithPaymentID(ctx, state.PaymentID), "charge finished", slog.String("status", state.Status.String()))
	p.report(func(d Delegate) { d.PaymentFinished(p, state) })

	return state, nil
}

// Cancel stops the process. The delegate is not called after Cancel.
func (p *Process) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelled = true

	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Process) run(ctx context.Context) (entity.PaymentState, error) {
	paymentID := p.PaymentID()

	if p.order != nil {
		payload, err := p.service.InitPayment(ctx, *p.order)
		if err != nil {
			return entity.PaymentState{}, fmt.Errorf("init payment: %w", err)
		}

		paymentID = payload.PaymentID

		p.mu.Lock()
		p.paymentID = paymentID
		p.mu.Unlock()
	}

	res, err := p.service.Charge(logger.WithPaymentID(ctx, paymentID), paymentID, p.rebillID)
	if err != nil {
		return entity.PaymentState{}, fmt.Errorf("charge payment %s: %w", paymentID, err)
	}

	state := res.State
	if state.PaymentID == "" {
		state.PaymentID = paymentID
	}

	if state.Status == "" {
		state.Status = res.Status
	}

	return state, nil
}

func (p *Process) report(f func(d Delegate)) {
	p.mu.Lock()
	cancelled := p.cancelled
	p.mu.Unlock()

	if cancelled || p.delegate == nil {
		return
	}

	f(p.delegate)
}
