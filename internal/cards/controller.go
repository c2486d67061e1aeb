package cards

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/samandr77/microservices/acquiring/internal/entity"
	"github.com/samandr77/microservices/acquiring/pkg/logger"
)

// Loader fetches the saved cards of a customer from the acquiring API.
type Loader interface {
	LoadCards(ctx context.Context, customerKey string) ([]entity.PaymentCard, error)
}

// Listener observes card loading of one customer key.
// Implementations must be comparable, pointer receivers are expected.
type Listener interface {
	CustomerKey() string
	CardsLoadingStarted()
	CardsLoadingFinished(cards []entity.PaymentCard, err error)
}

// Completion is called once when the load it was queued for is over.
type Completion func(cards []entity.PaymentCard, err error)

type keyState struct {
	loading     bool
	cached      bool
	cards       []entity.PaymentCard
	completions []Completion
	listeners   []Listener
}

// Controller de-duplicates card list loads per customer key and fans the result out
// to queued completions and registered listeners.
//
// Callbacks are delivered one at a time in the order the state changed, possibly
// on a goroutine other than the caller's. They must not block waiting for the controller.
type Controller struct {
	loader Loader

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	keys        map[string]*keyState
	pending     []func()
	dispatching bool
}

func NewController(loader Loader) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		loader: loader,
		ctx:    ctx,
		cancel: cancel,
		keys:   make(map[string]*keyState),
	}
}

// LoadCards queues completion and starts a load for customerKey unless one is already in flight.
// completion may be nil when only listeners are interested in the result.
func (c *Controller) LoadCards(customerKey string, completion Completion) {
	c.mu.Lock()

	st := c.state(customerKey)
	if completion != nil {
		st.completions = append(st.completions, completion)
	}

	if st.loading {
		c.mu.Unlock()
		return
	}

	st.loading = true
	listeners := slices.Clone(st.listeners)

	c.enqueue(func() {
		for _, l := range listeners {
			l.CardsLoadingStarted()
		}
	})

	c.wg.Add(1)
	c.mu.Unlock()

	go c.load(customerKey)

	c.dispatch()
}

// Load starts or joins a load for customerKey and waits for its result.
// ctx bounds only this wait, the shared request keeps running for other waiters.
func (c *Controller) Load(ctx context.Context, customerKey string) ([]entity.PaymentCard, error) {
	type result struct {
		cards []entity.PaymentCard
		err   error
	}

	ch := make(chan result, 1)

	c.LoadCards(customerKey, func(cards []entity.PaymentCard, err error) {
		ch <- result{cards: cards, err: err}
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.cards, res.err
	}
}

// AddListener registers l for its customer key. A listener added during a load receives
// the start notification at once, one added after a successful load receives the cached cards.
func (c *Controller) AddListener(l Listener) {
	c.mu.Lock()

	st := c.state(l.CustomerKey())
	if slices.Contains(st.listeners, l) {
		c.mu.Unlock()
		return
	}

	st.listeners = append(st.listeners, l)

	switch {
	case st.loading:
		c.enqueue(l.CardsLoadingStarted)
	case st.cached:
		cards := st.cards
		c.enqueue(func() {
			l.CardsLoadingFinished(entity.CloneCards(cards), nil)
		})
	}

	c.mu.Unlock()

	c.dispatch()
}

// RemoveListener unregisters l. Removing the last listener of a key evicts its cached cards.
func (c *Controller) RemoveListener(l Listener) {
	key := l.CustomerKey()

	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.keys[key]
	if !ok {
		return
	}

	st.listeners = slices.DeleteFunc(st.listeners, func(v Listener) bool {
		return v == l
	})

	if len(st.listeners) == 0 {
		st.evict()
	}

	c.cleanup(key, st)
}

// Cards returns a copy of the cached cards of customerKey.
func (c *Controller) Cards(customerKey string) ([]entity.PaymentCard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.keys[customerKey]
	if !ok || !st.cached {
		return nil, false
	}

	return entity.CloneCards(st.cards), true
}

// Invalidate drops the cached cards of customerKey.
func (c *Controller) Invalidate(customerKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.keys[customerKey]
	if !ok {
		return
	}

	st.evict()
	c.cleanup(customerKey, st)
}

// Close cancels loads in flight and waits until they are reported.
func (c *Controller) Close() {
	c.cancel()
	c.wg.Wait()
}

func (c *Controller) load(customerKey string) {
	defer c.wg.Done()

	ctx := logger.WithCustomerKey(c.ctx, customerKey)

	slog.DebugContext(ctx, "loading cards")

	cards, err := c.loader.LoadCards(ctx, customerKey)
	if err != nil {
		slog.WarnContext(ctx, "failed to load cards", slog.String("err", err.Error()))
	}

	c.mu.Lock()

	st := c.state(customerKey)
	st.loading = false

	completions := st.completions
	st.completions = nil
	listeners := slices.Clone(st.listeners)

	if err == nil && len(listeners) > 0 {
		st.cards = entity.CloneCards(cards)
		st.cached = true
	}

	c.cleanup(customerKey, st)

	c.enqueue(func() {
		for _, f := range completions {
			f(entity.CloneCards(cards), err)
		}

		for _, l := range listeners {
			l.CardsLoadingFinished(entity.CloneCards(cards), err)
		}
	})

	c.mu.Unlock()

	c.dispatch()
}

// state must be called with mu held.
func (c *Controller) state(customerKey string) *keyState {
	st, ok := c.keys[customerKey]
	if !ok {
		st = &keyState{}
		c.keys[customerKey] = st
	}

	return st
}

// cleanup must be called with mu held.
func (c *Controller) cleanup(customerKey string, st *keyState) {
	if st.loading || st.cached || len(st.listeners) > 0 || len(st.completions) > 0 {
		return
	}

	delete(c.keys, customerKey)
}

// enqueue must be called with mu held.
func (c *Controller) enqueue(f func()) {
	c.pending = append(c.pending, f)
}

// dispatch runs queued callbacks outside the lock. Only one goroutine dispatches at a time,
// others just leave their callbacks in the queue.
func (c *Controller) dispatch() {
	c.mu.Lock()

	if c.dispatching {
		c.mu.Unlock()
		return
	}

	c.dispatching = true

	for len(c.pending) > 0 {
		f := c.pending[0]
		c.pending[0] = nil
		c.pending = c.pending[1:]

		c.mu.Unlock()
		f()
		c.mu.Lock()
	}

	c.dispatching = false
	c.mu.Unlock()
}

func (st *keyState) evict() {
	st.cards = nil
	st.cached = false
}
