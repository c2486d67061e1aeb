package cards_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/acquiring/internal/cards"
	"github.com/samandr77/microservices/acquiring/internal/entity"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var testCards = []entity.PaymentCard{
	{PAN: "430000******0777", CardID: "1", Status: entity.PaymentCardStatusActive, ParentPaymentID: "1021"},
	{PAN: "220000******0001", CardID: "2", Status: entity.PaymentCardStatusActive},
	{PAN: "510000******0003", CardID: "3", Status: entity.PaymentCardStatusDeleted, ParentPaymentID: "1022"},
}

type fakeLoader struct {
	mu    sync.Mutex
	calls map[string]int
	gate  chan struct{}
	cards []entity.PaymentCard
	err   error
}

func newFakeLoader(blocked bool) *fakeLoader {
	l := &fakeLoader{
		calls: make(map[string]int),
		cards: testCards,
	}

	if blocked {
		l.gate = make(chan struct{})
	}

	return l
}

func (l *fakeLoader) LoadCards(ctx context.Context, customerKey string) ([]entity.PaymentCard, error) {
	l.mu.Lock()
	l.calls[customerKey]++
	gate := l.gate
	l.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.cards, l.err
}

func (l *fakeLoader) Calls(customerKey string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.calls[customerKey]
}

func (l *fakeLoader) release() {
	close(l.gate)
}

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (e *eventLog) add(event string) {
	e.mu.Lock()
	e.events = append(e.events, event)
	e.mu.Unlock()
}

func (e *eventLog) Events() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.events)
}

type recorder struct {
	name string
	key  string
	log  *eventLog

	mu    sync.Mutex
	cards []entity.PaymentCard
	err   error
}

func newRecorder(name, key string, log *eventLog) *recorder {
	return &recorder{name: name, key: key, log: log}
}

func (r *recorder) CustomerKey() string {
	return r.key
}

func (r *recorder) CardsLoadingStarted() {
	r.log.add(r.name + ":started")
}

func (r *recorder) CardsLoadingFinished(cards []entity.PaymentCard, err error) {
	r.mu.Lock()
	r.cards, r.err = cards, err
	r.mu.Unlock()

	r.log.add(r.name + ":finished")
}

func (r *recorder) Result() ([]entity.PaymentCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cards, r.err
}

func TestController_LoadCards_SingleRequestInOrder(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader(true)
	c := cards.NewController(loader)
	t.Cleanup(c.Close)

	log := &eventLog{}
	c.AddListener(newRecorder("first", "customer", log))
	c.AddListener(newRecorder("second", "customer", log))

	for i := 1; i <= 3; i++ {
		i := i

		c.LoadCards("customer", func(got []entity.PaymentCard, err error) {
			if err == nil && len(got) == len(testCards) {
				log.add(fmt.Sprintf("completion%d", i))
			}
		})
	}

	require.Eventually(t, func() bool { return loader.Calls("customer") == 1 }, waitFor, tick)
	loader.release()

	want := []string{
		"first:started", "second:started",
		"completion1", "completion2", "completion3",
		"first:finished", "second:finished",
	}
	require.Eventually(t, func() bool { return slices.Equal(want, log.Events()) }, waitFor, tick)
	require.Equal(t, 1, loader.Calls("customer"))

	got, ok := c.Cards("customer")
	require.True(t, ok)
	require.Equal(t, testCards, got)
}

func TestController_LoadCards_Concurrent(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader(true)
	c := cards.NewController(loader)
	t.Cleanup(c.Close)

	const callers = 50

	var (
		wg   sync.WaitGroup
		done sync.WaitGroup
	)

	wg.Add(callers)
	done.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			c.LoadCards("customer", func([]entity.PaymentCard, error) { done.Done() })
		}()
	}

	wg.Wait()
	require.Eventually(t, func() bool { return loader.Calls("customer") == 1 }, waitFor, tick)
	loader.release()
	done.Wait()

	require.Equal(t, 1, loader.Calls("customer"))
}

func TestController_LoadCards_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader(false)
	c := cards.NewController(loader)
	t.Cleanup(c.Close)

	_, err := c.Load(context.Background(), "first")
	require.NoError(t, err)

	_, err = c.Load(context.Background(), "second")
	require.NoError(t, err)

	_, err = c.Load(context.Background(), "first")
	require.NoError(t, err)

	require.Equal(t, 2, loader.Calls("first"))
	require.Equal(t, 1, loader.Calls("second"))
}

func TestController_AddListener_DuringLoad(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader(true)
	c := cards.NewController(loader)
	t.Cleanup(c.Close)

	log := &eventLog{}
	c.LoadCards("customer", nil)
	require.Eventually(t, func() bool { return loader.Calls("customer") == 1 }, waitFor, tick)

	late := newRecorder("late", "customer", log)
	c.AddListener(late)
	require.Equal(t, []string{"late:started"}, log.Events())

	loader.release()

	require.Eventually(t, func() bool {
		return slices.Equal([]string{"late:started", "late:finished"}, log.Events())
	}, waitFor, tick)

	got, err := late.Result()
	require.NoError(t, err)
	require.Equal(t, testCards, got)
	require.Equal(t, 1, loader.Calls("customer"))
}

func TestController_AddListener_ReplaysCachedCards(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader(false)
	c := cards.NewController(loader)
	t.Cleanup(c.Close)

	log := &eventLog{}
	c.AddListener(newRecorder("first", "customer", log))

	_, err := c.Load(context.Background(), "customer")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(log.Events()) == 2 }, waitFor, tick)

	second := newRecorder("second", "customer", log)
	c.AddListener(second)

	require.Eventually(t, func() bool {
		return slices.Equal([]string{"first:started", "first:finished", "second:finished"}, log.Events())
	}, waitFor, tick)

	got, err := second.Result()
	require.NoError(t, err)
	require.Equal(t, testCards, got)
	require.Equal(t, 1, loader.Calls("customer"))
}

func TestController_RemoveListener_EvictsCache(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader(false)
	c := cards.NewController(loader)
	t.Cleanup(c.Close)

	log := &eventLog{}
	first := newRecorder("first", "customer", log)
	second := newRecorder("second", "customer", log)
	c.AddListener(first)
	c.AddListener(second)

	_, err := c.Load(context.Background(), "customer")
	require.NoError(t, err)

	c.RemoveListener(first)

	_, ok := c.Cards("customer")
	require.True(t, ok, "cache must survive while a listener is left")

	c.RemoveListener(second)

	_, ok = c.Cards("customer")
	require.False(t, ok)

	third := newRecorder("third", "customer", log)
	c.AddListener(third)
	require.NotContains(t, log.Events(), "third:finished")
}

func TestController_LoadWithoutListenersIsNotCached(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader(false)
	c := cards.NewController(loader)
	t.Cleanup(c.Close)

	got, err := c.Load(context.Background(), "customer")
	require.NoError(t, err)
	require.Equal(t, testCards, got)

	_, ok := c.Cards("customer")
	require.False(t, ok)
}

func TestController_LoadError(t *testing.T) {
	t.Parallel()

	errLoad := errors.New("connection reset")

	loader := newFakeLoader(false)
	loader.err = errLoad
	loader.cards = nil

	c := cards.NewController(loader)
	t.Cleanup(c.Close)

	log := &eventLog{}
	listener := newRecorder("listener", "customer", log)
	c.AddListener(listener)

	_, err := c.Load(context.Background(), "customer")
	require.ErrorIs(t, err, errLoad)

	require.Eventually(t, func() bool { return len(log.Events()) == 2 }, waitFor, tick)

	_, err = listener.Result()
	require.ErrorIs(t, err, errLoad)

	_, ok := c.Cards("customer")
	require.False(t, ok)
}

func TestController_Load_ContextCancelled(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader(true)
	c := cards.NewController(loader)
	t.Cleanup(c.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Load(ctx, "customer")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	loader.release()

	got, err := c.Load(context.Background(), "customer")
	require.NoError(t, err)
	require.Equal(t, testCards, got)
}

func TestController_Invalidate(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader(false)
	c := cards.NewController(loader)
	t.Cleanup(c.Close)

	c.AddListener(newRecorder("listener", "customer", &eventLog{}))

	_, err := c.Load(context.Background(), "customer")
	require.NoError(t, err)

	_, ok := c.Cards("customer")
	require.True(t, ok)

	c.Invalidate("customer")

	_, ok = c.Cards("customer")
	require.False(t, ok)
}

func TestController_Close(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader(true)
	c := cards.NewController(loader)

	done := make(chan error, 1)
	c.LoadCards("customer", func(_ []entity.PaymentCard, err error) { done <- err })

	require.Eventually(t, func() bool { return loader.Calls("customer") == 1 }, waitFor, tick)
	c.Close()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(waitFor):
		t.Fatal("completion was not called")
	}
}
