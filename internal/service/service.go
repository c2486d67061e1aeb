package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/acquiring/internal/cards"
	"github.com/samandr77/microservices/acquiring/internal/charge"
	"github.com/samandr77/microservices/acquiring/internal/entity"
	"github.com/samandr77/microservices/acquiring/internal/poller"
	"github.com/samandr77/microservices/acquiring/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Acquiring interface {
	LoadCards(ctx context.Context, customerKey string) ([]entity.PaymentCard, error)
	RemoveCard(ctx context.Context, customerKey, cardID string) error
	GetPaymentState(ctx context.Context, paymentID string) (entity.PaymentState, error)
	InitPayment(ctx context.Context, order entity.InitOrder) (entity.InitPayload, error)
	Charge(ctx context.Context, paymentID, rebillID string) (entity.ChargePayload, error)
	SBPPayload(ctx context.Context, paymentID string) (entity.SBPPayload, error)
	YandexPayMethod(ctx context.Context) (entity.YandexPayMethod, error)
}

type Repository interface {
	SavePollResult(ctx context.Context, res entity.PollResult) error
	PollResults(ctx context.Context, f entity.PollResultFilter) ([]entity.PollResult, error)
}

type Producer interface {
	SendPaymentResolved(ctx context.Context, res entity.PollResult)
}

type Config struct {
	Poll            poller.Config
	FinishedPollTTL time.Duration
}

type Service struct {
	acquiring Acquiring
	repo      Repository
	producer  Producer
	cards     *cards.Assembly
	cfg       Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	polls map[string]*poller.Poll
}

func New(acquiring Acquiring, repo Repository, producer Producer, cfg Config) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	return &Service{
		acquiring: acquiring,
		repo:      repo,
		producer:  producer,
		cards:     cards.NewAssembly(acquiring),
		cfg:       cfg,
		ctx:       ctx,
		cancel:    cancel,
		polls:     make(map[string]*poller.Poll),
	}
}

// Cards loads the customer's cards. Concurrent requests for one customer share a single API call.
func (s *Service) Cards(ctx context.Context, customerKey string, f entity.CardFilter) ([]entity.PaymentCard, error) {
	err := authorizeCustomer(ctx, customerKey)
	if err != nil {
		return nil, err
	}

	list, err := s.cards.Controller().Load(logger.WithCustomerKey(ctx, customerKey), customerKey)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}

	return cards.Filter(list, cardPredicates(f)...), nil
}

func (s *Service) RemoveCard(ctx context.Context, customerKey, cardID string) error {
	err := authorizeCustomer(ctx, customerKey)
	if err != nil {
		return err
	}

	ctx = logger.WithCustomerKey(ctx, customerKey)

	err = s.acquiring.RemoveCard(ctx, customerKey, cardID)
	if err != nil {
		return fmt.Errorf("remove card %s: %w", cardID, err)
	}

	s.cards.Controller().Invalidate(customerKey)

	slog.InfoContext(ctx, "card removed", slog.String("card_id", cardID))

	return nil
}

// StartStatusPoll starts polling the payment status. A running poll of the payment is returned as is.
func (s *Service) StartStatusPoll(ctx context.Context, paymentID string) (entity.PollView, error) {
	if paymentID == "" {
		return entity.PollView{}, fmt.Errorf("%w: empty payment id", entity.ErrInvalidArgument)
	}

	_, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.PollView{}, err
	}

	return s.startPoll(ctx, paymentID).View(), nil
}

func (s *Service) PollState(ctx context.Context, paymentID string) (entity.PollView, error) {
	_, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.PollView{}, err
	}

	p, err := s.poll(paymentID)
	if err != nil {
		return entity.PollView{}, err
	}

	return p.View(), nil
}

// DismissPoll closes the poll on behalf of the client. It is refused while the payment is processing.
func (s *Service) DismissPoll(ctx context.Context, paymentID string) (entity.PollResult, error) {
	_, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.PollResult{}, err
	}

	p, err := s.poll(paymentID)
	if err != nil {
		return entity.PollResult{}, err
	}

	res, err := p.Dismiss(ctx)
	if err != nil {
		return entity.PollResult{}, fmt.Errorf("dismiss poll of payment %s: %w", paymentID, err)
	}

	return res, nil
}

// PollHistory returns stored results of finished polls of the payment.
func (s *Service) PollHistory(ctx context.Context, paymentID string) ([]entity.PollResult, error) {
	results, err := s.repo.PollResults(ctx, entity.PollResultFilter{PaymentID: paymentID})
	if err != nil {
		return nil, fmt.Errorf("get poll results of payment %s: %w", paymentID, err)
	}

	return results, nil
}

// Charge pays with a saved card. A payment which is not final after the charge gets a status poll.
func (s *Service) Charge(ctx context.Context, req entity.ChargeRequest) (entity.PaymentState, error) {
	err := authorizeCustomer(ctx, req.CustomerKey)
	if err != nil {
		return entity.PaymentState{}, err
	}

	ctx = logger.WithCustomerKey(ctx, req.CustomerKey)

	list, err := s.cards.Controller().Load(ctx, req.CustomerKey)
	if err != nil {
		return entity.PaymentState{}, fmt.Errorf("load cards: %w", err)
	}

	card, ok := findCard(cards.Filter(list, cards.ActiveOnly, cards.WithParentPayment), req.CardID)
	if !ok {
		return entity.PaymentState{}, fmt.Errorf("%w: active recurrent card %s", entity.ErrNotFound, req.CardID)
	}

	var p *charge.Process

	if req.PaymentID != "" {
		p = charge.NewFinish(s.acquiring, req.PaymentID, card.ParentPaymentID, s)
	} else {
		order := req.Order
		order.CustomerKey = req.CustomerKey

		if order.OrderID == "" {
			order.OrderID = uuid.Must(uuid.NewV4()).String()
		}

		if !order.Amount.IsPositive() {
			return entity.PaymentState{}, fmt.Errorf("%w: amount %s is not positive", entity.ErrInvalidArgument, order.Amount)
		}

		p = charge.NewFull(s.acquiring, order, card.ParentPaymentID, s)
	}

	state, err := p.Run(ctx)
	if err != nil {
		return entity.PaymentState{}, err
	}

	return state, nil
}

// SBPPayment returns the SBP link of the payment and starts polling its status.
func (s *Service) SBPPayment(ctx context.Context, paymentID string) (entity.SBPPayload, entity.PollView, error) {
	_, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.SBPPayload{}, entity.PollView{}, err
	}

	ctx = logger.WithPaymentID(ctx, paymentID)

	payload, err := s.acquiring.SBPPayload(ctx, paymentID)
	if err != nil {
		return entity.SBPPayload{}, entity.PollView{}, fmt.Errorf("get sbp payload: %w", err)
	}

	return payload, s.startPoll(ctx, paymentID).View(), nil
}

// YandexPay returns YandexPay params of the terminal. ok is false if the terminal has no YandexPay.
func (s *Service) YandexPay(ctx context.Context) (entity.YandexPayMethod, bool, error) {
	_, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.YandexPayMethod{}, false, err
	}

	method, err := s.acquiring.YandexPayMethod(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrMethodUnavailable) {
			return entity.YandexPayMethod{}, false, nil
		}

		return entity.YandexPayMethod{}, false, fmt.Errorf("get yandex pay method: %w", err)
	}

	return method, true, nil
}

// HandleNotification reacts on a payment status notification: the payment status is
// polled so that the final state is stored and published the usual way.
func (s *Service) HandleNotification(ctx context.Context, n entity.Notification) error {
	if n.PaymentID == "" {
		return fmt.Errorf("%w: empty payment id", entity.ErrInvalidArgument)
	}

	ctx = logger.WithPaymentID(ctx, n.PaymentID)

	slog.InfoContext(ctx, "payment notification received",
		slog.String("status", n.Status.String()),
		slog.Bool("success", n.Success),
	)

	s.startPoll(ctx, n.PaymentID)

	return nil
}

// EvictFinishedPolls forgets polls which finished longer than the configured TTL ago.
func (s *Service) EvictFinishedPolls(ctx context.Context) error {
	deadline := time.Now().Add(-s.cfg.FinishedPollTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted int

	for id, p := range s.polls {
		if !p.Finished() || p.Result().FinishedAt.After(deadline) {
			continue
		}

		delete(s.polls, id)
		evicted++
	}

	if evicted > 0 {
		slog.DebugContext(ctx, "finished polls evicted", slog.Int("count", evicted))
	}

	return nil
}

// Close cancels running polls and waits until their results are saved.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
	s.cards.Close()
}

func (s *Service) PaymentFinished(p *charge.Process, state entity.PaymentState) {
	ctx := logger.WithPaymentID(s.ctx, state.PaymentID)

	switch state.Status {
	case entity.PaymentStatusAuthorized, entity.PaymentStatusConfirmed:
		slog.InfoContext(ctx, "recurrent payment paid")
	default:
		slog.InfoContext(ctx, "recurrent payment is not final yet", slog.String("status", state.Status.String()))
		s.startPoll(ctx, p.PaymentID())
	}
}

func (s *Service) PaymentFailed(p *charge.Process, err error) {
	ctx := logger.WithPaymentID(s.ctx, p.PaymentID())
	slog.WarnContext(ctx, "recurrent payment failed", slog.String("err", err.Error()))
}

func (s *Service) startPoll(ctx context.Context, paymentID string) *poller.Poll {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.polls[paymentID]; ok && !p.Finished() {
		return p
	}

	p := poller.New(s.acquiring, paymentID, s.cfg.Poll)
	p.AddListener(func(paymentID string, state entity.SheetState) {
		slog.DebugContext(logger.WithPaymentID(s.ctx, paymentID), "poll state", slog.String("state", state.String()))
	})

	s.polls[paymentID] = p

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		res := p.Run(logger.WithRequestID(s.ctx, logger.RequestIDFromCtx(ctx)))
		s.saveResult(res)
	}()

	return p
}

func (s *Service) saveResult(res entity.PollResult) {
	ctx := logger.WithPaymentID(context.WithoutCancel(s.ctx), res.PaymentID)

	err := s.repo.SavePollResult(ctx, res)
	if err != nil {
		slog.ErrorContext(ctx, "failed to save poll result", slog.String("err", err.Error()))
	}

	s.producer.SendPaymentResolved(ctx, res)
}

func (s *Service) poll(paymentID string) (*poller.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.polls[paymentID]
	if !ok {
		return nil, fmt.Errorf("%w: status poll of payment %s", entity.ErrNotFound, paymentID)
	}

	return p, nil
}

func authorizeCustomer(ctx context.Context, customerKey string) error {
	if customerKey == "" {
		return fmt.Errorf("%w: empty customer key", entity.ErrInvalidArgument)
	}

	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return err
	}

	if !user.CanAccessCustomer(customerKey) {
		return fmt.Errorf("%w: user %s can't access customer %s", entity.ErrForbidden, user.ID, customerKey)
	}

	return nil
}

func cardPredicates(f entity.CardFilter) []cards.Predicate {
	var predicates []cards.Predicate

	if f.ActiveOnly {
		predicates = append(predicates, cards.ActiveOnly)
	}

	if f.Recurrent {
		predicates = append(predicates, cards.WithParentPayment)
	}

	return predicates
}

func findCard(list []entity.PaymentCard, cardID string) (entity.PaymentCard, bool) {
	for _, c := range list {
		if c.CardID == cardID {
			return c, true
		}
	}

	return entity.PaymentCard{}, false
}
