package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samandr77/microservices/acquiring/internal/entity"
	"github.com/samandr77/microservices/acquiring/internal/mocks"
	"github.com/samandr77/microservices/acquiring/internal/poller"
	"github.com/samandr77/microservices/acquiring/internal/service"
)

var testCards = []entity.PaymentCard{
	{PAN: "430000******0777", CardID: "1", Status: entity.PaymentCardStatusActive, ParentPaymentID: "1021"},
	{PAN: "220000******0001", CardID: "2", Status: entity.PaymentCardStatusActive},
	{PAN: "510000******0003", CardID: "3", Status: entity.PaymentCardStatusInactive, ParentPaymentID: "1022"},
}

type deps struct {
	acquiring *mocks.MockAcquiring
	repo      *mocks.MockRepository
	producer  *mocks.MockProducer
	s         *service.Service
}

func newService(t *testing.T, pollCfg poller.Config) deps {
	t.Helper()

	ctrl := gomock.NewController(t)

	d := deps{
		acquiring: mocks.NewMockAcquiring(ctrl),
		repo:      mocks.NewMockRepository(ctrl),
		producer:  mocks.NewMockProducer(ctrl),
	}

	d.s = service.New(d.acquiring, d.repo, d.producer, service.Config{
		Poll:            pollCfg,
		FinishedPollTTL: time.Minute,
	})
	t.Cleanup(d.s.Close)

	return d
}

func userCtx(customerKey string) context.Context {
	return entity.CtxWithUser(context.Background(), entity.User{
		ID:          uuid.Must(uuid.NewV4()),
		Email:       "user@example.com",
		CustomerKey: customerKey,
		Role:        entity.RoleUser,
	})
}

// expectResolved waits for the poll result to be saved and published.
func expectResolved(d deps) <-chan entity.PollResult {
	done := make(chan entity.PollResult, 1)

	d.repo.EXPECT().SavePollResult(gomock.Any(), gomock.Any()).Return(nil)
	d.producer.EXPECT().SendPaymentResolved(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, res entity.PollResult) { done <- res })

	return done
}

func waitResult(t *testing.T, done <-chan entity.PollResult) entity.PollResult {
	t.Helper()

	select {
	case res := <-done:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("poll result was not published")
	}

	return entity.PollResult{}
}

func TestService_Cards(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name   string
		filter entity.CardFilter
		want   []string
	}{
		{name: "all", want: []string{"1", "2", "3"}},
		{name: "active", filter: entity.CardFilter{ActiveOnly: true}, want: []string{"1", "2"}},
		{name: "recurrent", filter: entity.CardFilter{ActiveOnly: true, Recurrent: true}, want: []string{"1"}},
	} {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newService(t, poller.Config{})
			d.acquiring.EXPECT().LoadCards(gomock.Any(), "customer").Return(testCards, nil)

			got, err := d.s.Cards(userCtx("customer"), "customer", tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.CardID)
			}

			require.Equal(t, tt.want, ids)
		})
	}
}

func TestService_Cards_Access(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{})

	_, err := d.s.Cards(context.Background(), "customer", entity.CardFilter{})
	require.ErrorIs(t, err, entity.ErrUnauthenticated)

	_, err = d.s.Cards(userCtx("other"), "customer", entity.CardFilter{})
	require.ErrorIs(t, err, entity.ErrForbidden)

	_, err = d.s.Cards(userCtx("customer"), "", entity.CardFilter{})
	require.ErrorIs(t, err, entity.ErrInvalidArgument)

	manager := entity.CtxWithUser(context.Background(), entity.User{ID: uuid.Must(uuid.NewV4()), Role: entity.RoleManager})
	d.acquiring.EXPECT().LoadCards(gomock.Any(), "customer").Return(nil, entity.ErrAcquiring)

	_, err = d.s.Cards(manager, "customer", entity.CardFilter{})
	require.ErrorIs(t, err, entity.ErrAcquiring)
}

func TestService_RemoveCard(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{})
	d.acquiring.EXPECT().RemoveCard(gomock.Any(), "customer", "1").Return(nil)

	require.NoError(t, d.s.RemoveCard(userCtx("customer"), "customer", "1"))
	require.ErrorIs(t, d.s.RemoveCard(userCtx("other"), "customer", "1"), entity.ErrForbidden)
}

func TestService_StartStatusPoll_Paid(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{Retries: 3, Interval: time.Millisecond})

	d.acquiring.EXPECT().GetPaymentState(gomock.Any(), "2222").Return(entity.PaymentState{
		PaymentID: "2222",
		OrderID:   "order-1",
		Amount:    decimal.RequireFromString("234"),
		Status:    entity.PaymentStatusConfirmed,
	}, nil)

	done := expectResolved(d)

	view, err := d.s.StartStatusPoll(userCtx("customer"), "2222")
	require.NoError(t, err)
	require.Equal(t, "2222", view.PaymentID)

	res := waitResult(t, done)
	require.Equal(t, view.ID, res.ID)
	require.Equal(t, entity.PollOutcomeSucceeded, res.Outcome)
	require.Equal(t, "order-1", res.Info.OrderID)

	state, err := d.s.PollState(userCtx("customer"), "2222")
	require.NoError(t, err)
	require.True(t, state.Finished)
	require.Equal(t, entity.SheetStatePaid, state.State)

	dismissed, err := d.s.DismissPoll(userCtx("customer"), "2222")
	require.NoError(t, err)
	require.Equal(t, res.ID, dismissed.ID)
}

func TestService_StartStatusPoll_Processing(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{Retries: 100, Interval: 10 * time.Millisecond})

	d.acquiring.EXPECT().GetPaymentState(gomock.Any(), "2222").Return(entity.PaymentState{
		PaymentID: "2222",
		Status:    entity.PaymentStatusAuthorizing,
	}, nil).AnyTimes()

	// Cancelled on Close.
	d.repo.EXPECT().SavePollResult(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.producer.EXPECT().SendPaymentResolved(gomock.Any(), gomock.Any()).AnyTimes()

	first, err := d.s.StartStatusPoll(userCtx("customer"), "2222")
	require.NoError(t, err)

	second, err := d.s.StartStatusPoll(userCtx("customer"), "2222")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	require.Eventually(t, func() bool {
		view, err := d.s.PollState(userCtx("customer"), "2222")
		return err == nil && view.State == entity.SheetStateProcessing
	}, 2*time.Second, 5*time.Millisecond)

	_, err = d.s.DismissPoll(userCtx("customer"), "2222")
	require.ErrorIs(t, err, entity.ErrDismissNotAllowed)
}

func TestService_PollNotFound(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{})

	_, err := d.s.PollState(userCtx("customer"), "unknown")
	require.ErrorIs(t, err, entity.ErrNotFound)

	_, err = d.s.DismissPoll(userCtx("customer"), "unknown")
	require.ErrorIs(t, err, entity.ErrNotFound)

	_, err = d.s.StartStatusPoll(userCtx("customer"), "")
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestService_EvictFinishedPolls(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	acquiring := mocks.NewMockAcquiring(ctrl)
	repo := mocks.NewMockRepository(ctrl)
	producer := mocks.NewMockProducer(ctrl)

	s := service.New(acquiring, repo, producer, service.Config{
		Poll:            poller.Config{Retries: 1, Interval: time.Millisecond},
		FinishedPollTTL: 0,
	})
	t.Cleanup(s.Close)

	acquiring.EXPECT().GetPaymentState(gomock.Any(), "2222").Return(entity.PaymentState{Status: entity.PaymentStatusRejected}, nil)

	done := expectResolved(deps{repo: repo, producer: producer})

	_, err := s.StartStatusPoll(userCtx("customer"), "2222")
	require.NoError(t, err)

	res := waitResult(t, done)
	require.ErrorIs(t, res.Err, entity.ErrRejected)

	require.NoError(t, s.EvictFinishedPolls(context.Background()))

	_, err = s.PollState(userCtx("customer"), "2222")
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestService_Charge(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{})

	d.acquiring.EXPECT().LoadCards(gomock.Any(), "customer").Return(testCards, nil)
	d.acquiring.EXPECT().InitPayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order entity.InitOrder) (entity.InitPayload, error) {
			if order.CustomerKey != "customer" || order.OrderID == "" {
				return entity.InitPayload{}, errors.New("unexpected order")
			}

			return entity.InitPayload{PaymentID: "3333", OrderID: order.OrderID, Amount: order.Amount, Status: entity.PaymentStatusNew}, nil
		})
	d.acquiring.EXPECT().Charge(gomock.Any(), "3333", "1021").Return(entity.ChargePayload{
		Status: entity.PaymentStatusConfirmed,
		State:  entity.PaymentState{PaymentID: "3333", Status: entity.PaymentStatusConfirmed},
	}, nil)

	state, err := d.s.Charge(userCtx("customer"), entity.ChargeRequest{
		CustomerKey: "customer",
		CardID:      "1",
		Order:       entity.InitOrder{Amount: decimal.RequireFromString("100")},
	})
	require.NoError(t, err)
	require.Equal(t, entity.PaymentStatusConfirmed, state.Status)

	_, err = d.s.PollState(userCtx("customer"), "3333")
	require.ErrorIs(t, err, entity.ErrNotFound, "paid charge needs no status poll")
}

func TestService_Charge_NotFinal(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{Retries: 3, Interval: time.Millisecond})

	d.acquiring.EXPECT().LoadCards(gomock.Any(), "customer").Return(testCards, nil)
	d.acquiring.EXPECT().Charge(gomock.Any(), "4444", "1021").Return(entity.ChargePayload{
		Status: entity.PaymentStatusAuthorizing,
		State:  entity.PaymentState{PaymentID: "4444", Status: entity.PaymentStatusAuthorizing},
	}, nil)
	d.acquiring.EXPECT().GetPaymentState(gomock.Any(), "4444").
		Return(entity.PaymentState{PaymentID: "4444", Status: entity.PaymentStatusAuthorized}, nil)

	done := expectResolved(d)

	state, err := d.s.Charge(userCtx("customer"), entity.ChargeRequest{
		CustomerKey: "customer",
		CardID:      "1",
		PaymentID:   "4444",
	})
	require.NoError(t, err)
	require.Equal(t, entity.PaymentStatusAuthorizing, state.Status)

	res := waitResult(t, done)
	require.Equal(t, "4444", res.PaymentID)
	require.Equal(t, entity.PollOutcomeSucceeded, res.Outcome)
}

func TestService_Charge_Errors(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{})

	d.acquiring.EXPECT().LoadCards(gomock.Any(), "customer").Return(testCards, nil).Times(2)

	// Card without a parent payment can't be charged.
	_, err := d.s.Charge(userCtx("customer"), entity.ChargeRequest{CustomerKey: "customer", CardID: "2", PaymentID: "1"})
	require.ErrorIs(t, err, entity.ErrNotFound)

	_, err = d.s.Charge(userCtx("customer"), entity.ChargeRequest{CustomerKey: "customer", CardID: "1"})
	require.ErrorIs(t, err, entity.ErrInvalidArgument)

	_, err = d.s.Charge(userCtx("other"), entity.ChargeRequest{CustomerKey: "customer", CardID: "1"})
	require.ErrorIs(t, err, entity.ErrForbidden)
}

func TestService_SBPPayment(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{Retries: 3, Interval: time.Millisecond})

	d.acquiring.EXPECT().SBPPayload(gomock.Any(), "2222").
		Return(entity.SBPPayload{PaymentID: "2222", Payload: "https://qr.nspk.ru/AD10"}, nil)
	d.acquiring.EXPECT().GetPaymentState(gomock.Any(), "2222").
		Return(entity.PaymentState{PaymentID: "2222", Status: entity.PaymentStatusFormShowed}, nil).Times(3)

	done := expectResolved(d)

	payload, view, err := d.s.SBPPayment(userCtx("customer"), "2222")
	require.NoError(t, err)
	require.Equal(t, "https://qr.nspk.ru/AD10", payload.Payload)
	require.Equal(t, "2222", view.PaymentID)

	res := waitResult(t, done)
	require.Equal(t, entity.SheetStateTimeout, res.State)
	require.ErrorIs(t, res.Err, entity.ErrTimeout)
}

func TestService_YandexPay(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{})

	method := entity.YandexPayMethod{MerchantID: "m-1", ShowcaseID: "s-1"}

	gomock.InOrder(
		d.acquiring.EXPECT().YandexPayMethod(gomock.Any()).Return(method, nil),
		d.acquiring.EXPECT().YandexPayMethod(gomock.Any()).Return(entity.YandexPayMethod{}, entity.ErrMethodUnavailable),
		d.acquiring.EXPECT().YandexPayMethod(gomock.Any()).Return(entity.YandexPayMethod{}, entity.ErrAcquiring),
	)

	got, ok, err := d.s.YandexPay(userCtx("customer"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, method, got)

	_, ok, err = d.s.YandexPay(userCtx("customer"))
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = d.s.YandexPay(userCtx("customer"))
	require.ErrorIs(t, err, entity.ErrAcquiring)
}

func TestService_HandleNotification(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{Retries: 3, Interval: time.Millisecond})

	d.acquiring.EXPECT().GetPaymentState(gomock.Any(), "2222").
		Return(entity.PaymentState{PaymentID: "2222", Status: entity.PaymentStatusConfirmed}, nil)

	done := expectResolved(d)

	err := d.s.HandleNotification(context.Background(), entity.Notification{
		PaymentID: "2222",
		Status:    entity.PaymentStatusConfirmed,
		Success:   true,
	})
	require.NoError(t, err)

	res := waitResult(t, done)
	require.Equal(t, entity.PollOutcomeSucceeded, res.Outcome)

	require.ErrorIs(t, d.s.HandleNotification(context.Background(), entity.Notification{}), entity.ErrInvalidArgument)
}

func TestService_PollHistory(t *testing.T) {
	t.Parallel()

	d := newService(t, poller.Config{})

	results := []entity.PollResult{{ID: uuid.Must(uuid.NewV7()), PaymentID: "2222", Outcome: entity.PollOutcomeSucceeded}}
	d.repo.EXPECT().PollResults(gomock.Any(), entity.PollResultFilter{PaymentID: "2222"}).Return(results, nil)

	got, err := d.s.PollHistory(context.Background(), "2222")
	require.NoError(t, err)
	require.Equal(t, results, got)
}
