package cards

import (
	"sync"

	"github.com/samandr77/microservices/acquiring/internal/entity"
)

type ProviderState string

const (
	ProviderStateLoading ProviderState = "loading"
	ProviderStateData    ProviderState = "data"
	ProviderStateError   ProviderState = "error"
)

// Predicate selects the cards a provider exposes.
type Predicate func(card entity.PaymentCard) bool

func ActiveOnly(card entity.PaymentCard) bool {
	return card.IsActive()
}

// WithParentPayment keeps cards usable for recurrent charges.
func WithParentPayment(card entity.PaymentCard) bool {
	return card.ParentPaymentID != ""
}

// ProviderListener is notified on every provider state change.
type ProviderListener interface {
	CardsProviderChanged(p *Provider, state ProviderState)
}

// Provider is a filtered view of one customer's cards kept in sync with a Controller.
type Provider struct {
	customerKey string
	controller  *Controller
	predicates  []Predicate
	owned       bool

	mu       sync.RWMutex
	state    ProviderState
	cards    []entity.PaymentCard
	err      error
	listener ProviderListener
}

// NewProvider registers a provider for customerKey on controller.
// The provider starts in data state with whatever cards the controller has cached.
func NewProvider(controller *Controller, customerKey string, listener ProviderListener, predicates ...Predicate) *Provider {
	p := &Provider{
		customerKey: customerKey,
		controller:  controller,
		predicates:  predicates,
		state:       ProviderStateData,
		listener:    listener,
	}

	if cards, ok := controller.Cards(customerKey); ok {
		p.cards = p.filter(cards)
	}

	controller.AddListener(p)

	return p
}

func (p *Provider) CustomerKey() string {
	return p.customerKey
}

func (p *Provider) State() ProviderState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.state
}

// Cards returns the filtered cards of the last successful load.
func (p *Provider) Cards() []entity.PaymentCard {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return entity.CloneCards(p.cards)
}

// Err returns the error of the last load if the provider is in error state.
func (p *Provider) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.err
}

func (p *Provider) SetListener(l ProviderListener) {
	p.mu.Lock()
	p.listener = l
	p.mu.Unlock()
}

// LoadCards asks the controller for fresh cards. completion receives the unfiltered result.
func (p *Provider) LoadCards(completion Completion) {
	p.controller.LoadCards(p.customerKey, completion)
}

// Close unregisters the provider. A provider with a private controller closes it too.
func (p *Provider) Close() {
	p.controller.RemoveListener(p)

	if p.owned {
		p.controller.Close()
	}
}

func (p *Provider) CardsLoadingStarted() {
	p.setState(ProviderStateLoading, nil, nil, false)
}

func (p *Provider) CardsLoadingFinished(cards []entity.PaymentCard, err error) {
	if err != nil {
		p.setState(ProviderStateError, nil, err, false)
		return
	}

	p.setState(ProviderStateData, p.filter(cards), nil, true)
}

func (p *Provider) setState(state ProviderState, cards []entity.PaymentCard, err error, replaceCards bool) {
	p.mu.Lock()

	p.state = state
	p.err = err

	if replaceCards {
		p.cards = cards
	}

	listener := p.listener

	p.mu.Unlock()

	if listener != nil {
		listener.CardsProviderChanged(p, state)
	}
}

func (p *Provider) filter(cards []entity.PaymentCard) []entity.PaymentCard {
	return Filter(cards, p.predicates...)
}

// Filter returns the cards matching all predicates.
func Filter(cards []entity.PaymentCard, predicates ...Predicate) []entity.PaymentCard {
	filtered := make([]entity.PaymentCard, 0, len(cards))

	for _, card := range cards {
		if match(card, predicates) {
			filtered = append(filtered, card)
		}
	}

	return filtered
}

func match(card entity.PaymentCard, predicates []Predicate) bool {
	for _, pred := range predicates {
		if !pred(card) {
			return false
		}
	}

	return true
}
