package cards

import (
	"sync"
)

// Assembly builds card providers on top of a single Loader.
// Synchronized providers of one customer share loads and cached cards,
// the rest get a private controller each.
type Assembly struct {
	loader Loader

	once       sync.Once
	controller *Controller
}

func NewAssembly(loader Loader) *Assembly {
	return &Assembly{loader: loader}
}

func (a *Assembly) Provider(customerKey string, synchronized bool, listener ProviderListener, predicates ...Predicate) *Provider {
	if synchronized {
		return NewProvider(a.Controller(), customerKey, listener, predicates...)
	}

	p := NewProvider(NewController(a.loader), customerKey, listener, predicates...)
	p.owned = true

	return p
}

// Controller returns the controller shared by synchronized providers.
func (a *Assembly) Controller() *Controller {
	a.once.Do(func() {
		a.controller = NewController(a.loader)
	})

	return a.controller
}

// Close stops the shared controller. Providers with private controllers are closed by their owners.
func (a *Assembly) Close() {
	a.Controller().Close()
}
