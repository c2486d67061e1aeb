package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/samandr77/microservices/acquiring/docs" // swagger docs
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.HealthHandler)
		r.HandleFunc("/swagger/*", httpSwagger.Handler())

		r.Group(func(r chi.Router) {
			r.Use(mw.BearerAuth)

			r.Route("/customers/{customerKey}/cards", func(r chi.Router) {
				r.Get("/", h.Cards)
				r.Delete("/{cardId}", h.RemoveCard)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/charge", h.Charge)
				r.Post("/{paymentId}/sbp", h.SBPPayment)
				r.Post("/{paymentId}/status-poll", h.StartStatusPoll)
				r.Get("/{paymentId}/status-poll", h.PollState)
				r.Delete("/{paymentId}/status-poll", h.DismissPoll)
			})

			r.Get("/terminal/yandex-pay", h.YandexPay)
		})

		r.Post("/payments/callbacks/notification", h.Notification)

		r.Route("/private", func(r chi.Router) {
			r.Use(mw.APIKeyAuth)
			r.Get("/payments/{paymentId}/status-polls", h.PollHistory)
		})
	})

	return mux
}
