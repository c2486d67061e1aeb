package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/acquiring/internal/entity"
	"github.com/samandr77/microservices/acquiring/pkg/security"
)

// @title Acquiring API
// @version 1.0
// @description Saved cards and payment status polling on top of Tinkoff Acquiring
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-Api-Key

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=../mocks/handler.go -package=mocks

type Service interface {
	Cards(ctx context.Context, customerKey string, f entity.CardFilter) ([]entity.PaymentCard, error)
	RemoveCard(ctx context.Context, customerKey, cardID string) error
	StartStatusPoll(ctx context.Context, paymentID string) (entity.PollView, error)
	PollState(ctx context.Context, paymentID string) (entity.PollView, error)
	DismissPoll(ctx context.Context, paymentID string) (entity.PollResult, error)
	PollHistory(ctx context.Context, paymentID string) ([]entity.PollResult, error)
	Charge(ctx context.Context, req entity.ChargeRequest) (entity.PaymentState, error)
	SBPPayment(ctx context.Context, paymentID string) (entity.SBPPayload, entity.PollView, error)
	YandexPay(ctx context.Context) (entity.YandexPayMethod, bool, error)
	HandleNotification(ctx context.Context, n entity.Notification) error
}

type Handler struct {
	s                Service
	terminalPassword string
}

func NewHandler(s Service, terminalPassword string) *Handler {
	return &Handler{
		s:                s,
		terminalPassword: terminalPassword,
	}
}

// HealthHandler returns 200 OK
// @Summary Health check
// @Tags health
// @Produce text/plain
// @Success 200 {string} string "Сервис работает!"
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("Сервис работает!\n"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Сервис не работает!")
		return
	}
}

type CardsResponse struct {
	Cards []entity.PaymentCard `json:"cards"`
}

// Cards returns saved cards of the customer
// @Summary Customer cards
// @Tags cards
// @Produce json
// @Param customerKey path string true "Customer key"
// @Param active query bool false "Only active cards"
// @Param recurrent query bool false "Only cards usable for recurrent payments"
// @Success 200 {object} CardsResponse
// @Failure 403 {object} ErrorResponse "Action forbidden for user"
// @Failure 502 {object} ErrorResponse "Acquiring error"
// @Router /customers/{customerKey}/cards [get]
// @Security BearerAuth
func (h *Handler) Cards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		f   entity.CardFilter
		err error
	)

	f.ActiveOnly, err = boolQuery(r, "active")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Неверный параметр active")
		return
	}

	f.Recurrent, err = boolQuery(r, "recurrent")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Неверный параметр recurrent")
		return
	}

	cards, err := h.s.Cards(ctx, chi.URLParam(r, "customerKey"), f)
	if err != nil {
		SendServiceErr(ctx, w, err, "Не удалось загрузить карты")
		return
	}

	SendJSON(ctx, w, http.StatusOK, CardsResponse{Cards: cards})
}

// RemoveCard deactivates a saved card
// @Summary Remove card
// @Tags cards
// @Param customerKey path string true "Customer key"
// @Param cardId path string true "Card id"
// @Success 204
// @Failure 403 {object} ErrorResponse "Action forbidden for user"
// @Failure 502 {object} ErrorResponse "Acquiring error"
// @Router /customers/{customerKey}/cards/{cardId} [delete]
// @Security BearerAuth
func (h *Handler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.s.RemoveCard(ctx, chi.URLParam(r, "customerKey"), chi.URLParam(r, "cardId"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Не удалось удалить карту")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StartStatusPoll starts polling the payment status
// @Summary Start payment status poll
// @Tags payments
// @Produce json
// @Param paymentId path string true "Payment id"
// @Success 202 {object} entity.PollView
// @Router /payments/{paymentId}/status-poll [post]
// @Security BearerAuth
func (h *Handler) StartStatusPoll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.s.StartStatusPoll(ctx, chi.URLParam(r, "paymentId"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Не удалось запустить проверку статуса")
		return
	}

	SendJSON(ctx, w, http.StatusAccepted, view)
}

// PollState returns the current state of the payment status poll
// @Summary Payment status poll state
// @Tags payments
// @Produce json
// @Param paymentId path string true "Payment id"
// @Success 200 {object} entity.PollView
// @Failure 404 {object} ErrorResponse "Poll not found"
// @Router /payments/{paymentId}/status-poll [get]
// @Security BearerAuth
func (h *Handler) PollState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.s.PollState(ctx, chi.URLParam(r, "paymentId"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Не удалось получить статус")
		return
	}

	SendJSON(ctx, w, http.StatusOK, view)
}

type PollResultResponse struct {
	ID         uuid.UUID           `json:"id"`
	PaymentID  string              `json:"paymentId"`
	Outcome    entity.PollOutcome  `json:"outcome"`
	State      entity.SheetState   `json:"state"`
	Info       entity.PaymentState `json:"info"`
	Error      string              `json:"error,omitempty"`
	Attempts   int                 `json:"attempts"`
	StartedAt  time.Time           `json:"startedAt"`
	FinishedAt time.Time           `json:"finishedAt"`
}

func newPollResultResponse(res entity.PollResult) PollResultResponse {
	resp := PollResultResponse{
		ID:         res.ID,
		PaymentID:  res.PaymentID,
		Outcome:    res.Outcome,
		State:      res.State,
		Info:       res.Info,
		Attempts:   res.Attempts,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
	}

	if res.Err != nil {
		resp.Error = res.Err.Error()
	}

	return resp
}

// DismissPoll closes the payment status poll
// @Summary Dismiss payment status poll
// @Tags payments
// @Produce json
// @Param paymentId path string true "Payment id"
// @Success 200 {object} PollResultResponse
// @Failure 404 {object} ErrorResponse "Poll not found"
// @Failure 409 {object} ErrorResponse "Payment is processing"
// @Router /payments/{paymentId}/status-poll [delete]
// @Security BearerAuth
func (h *Handler) DismissPoll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := h.s.DismissPoll(ctx, chi.URLParam(r, "paymentId"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Не удалось закрыть проверку статуса")
		return
	}

	SendJSON(ctx, w, http.StatusOK, newPollResultResponse(res))
}

type PollHistoryResponse struct {
	Results []PollResultResponse `json:"results"`
}

// PollHistory returns finished status polls of the payment
// @Summary Payment status poll history
// @Tags private
// @Produce json
// @Param paymentId path string true "Payment id"
// @Success 200 {object} PollHistoryResponse
// @Router /private/payments/{paymentId}/status-polls [get]
// @Security ApiKeyAuth
func (h *Handler) PollHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	results, err := h.s.PollHistory(ctx, chi.URLParam(r, "paymentId"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Не удалось получить историю")
		return
	}

	resp := PollHistoryResponse{Results: make([]PollResultResponse, 0, len(results))}
	for _, res := range results {
		resp.Results = append(resp.Results, newPollResultResponse(res))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

type ChargeRequest struct {
	CustomerKey string          `json:"customerKey"`
	CardID      string          `json:"cardId"`
	PaymentID   string          `json:"paymentId,omitempty"`
	OrderID     string          `json:"orderId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// Charge pays with a saved card
// @Summary Recurrent charge
// @Description Registers the payment when paymentId is empty and charges the card
// @Tags payments
// @Accept json
// @Produce json
// @Param ChargeRequest body ChargeRequest true "Charge request"
// @Success 200 {object} entity.PaymentState
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Card not found"
// @Failure 502 {object} ErrorResponse "Acquiring error"
// @Router /payments/charge [post]
// @Security BearerAuth
func (h *Handler) Charge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ChargeRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Невалидный JSON")
		return
	}

	if req.CardID == "" {
		SendJSONErr(ctx, w, http.StatusUnprocessableEntity, errors.New("empty card id"), "Не указана карта")
		return
	}

	state, err := h.s.Charge(ctx, entity.ChargeRequest{
		CustomerKey: req.CustomerKey,
		CardID:      req.CardID,
		PaymentID:   req.PaymentID,
		Order: entity.InitOrder{
			OrderID:     req.OrderID,
			Amount:      req.Amount,
			Description: req.Description,
			Recurrent:   false,
		},
	})
	if err != nil {
		SendServiceErr(ctx, w, err, "Не удалось провести платеж")
		return
	}

	SendJSON(ctx, w, http.StatusOK, state)
}

type SBPPaymentResponse struct {
	Payload string          `json:"payload"`
	Poll    entity.PollView `json:"poll"`
}

// SBPPayment returns the SBP link and starts polling the payment status
// @Summary SBP payment
// @Tags payments
// @Produce json
// @Param paymentId path string true "Payment id"
// @Success 200 {object} SBPPaymentResponse
// @Failure 502 {object} ErrorResponse "Acquiring error"
// @Router /payments/{paymentId}/sbp [post]
// @Security BearerAuth
func (h *Handler) SBPPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, view, err := h.s.SBPPayment(ctx, chi.URLParam(r, "paymentId"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Не удалось получить ссылку СБП")
		return
	}

	SendJSON(ctx, w, http.StatusOK, SBPPaymentResponse{Payload: payload.Payload, Poll: view})
}

type YandexPayResponse struct {
	Available bool                    `json:"available"`
	Method    *entity.YandexPayMethod `json:"method,omitempty"`
}

// YandexPay returns YandexPay params of the terminal
// @Summary YandexPay availability
// @Tags terminal
// @Produce json
// @Success 200 {object} YandexPayResponse
// @Failure 502 {object} ErrorResponse "Acquiring error"
// @Router /terminal/yandex-pay [get]
// @Security BearerAuth
func (h *Handler) YandexPay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	method, ok, err := h.s.YandexPay(ctx)
	if err != nil {
		SendServiceErr(ctx, w, err, "Не удалось получить способы оплаты")
		return
	}

	resp := YandexPayResponse{Available: ok}
	if ok {
		resp.Method = &method
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// Notification handles payment status notifications of the acquiring
// @Summary Acquiring notification
// @Tags callbacks
// @Accept json
// @Produce text/plain
// @Success 200 {string} string "OK"
// @Failure 400 {object} ErrorResponse "Invalid notification"
// @Failure 401 {object} ErrorResponse "Invalid token"
// @Router /payments/callbacks/notification [post]
func (h *Handler) Notification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var params map[string]any

	err := dec.Decode(&params)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Невалидный JSON")
		return
	}

	if !security.VerifyToken(h.terminalPassword, params) {
		SendJSONErr(ctx, w, http.StatusUnauthorized, errors.New("notification token mismatch"), "Неверный токен")
		return
	}

	n, err := parseNotification(params)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Неверное уведомление")
		return
	}

	err = h.s.HandleNotification(ctx, n)
	if err != nil {
		SendServiceErr(ctx, w, err, "Не удалось обработать уведомление")
		return
	}

	w.Header().Set("Content-Type", "text/plain")

	_, err = w.Write([]byte("OK"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "write response")
		return
	}
}

func parseNotification(params map[string]any) (entity.Notification, error) {
	n := entity.Notification{
		PaymentID: paramString(params, "PaymentId"),
		OrderID:   paramString(params, "OrderId"),
		Status:    entity.PaymentStatus(paramString(params, "Status")),
		CardID:    paramString(params, "CardId"),
		RebillID:  paramString(params, "RebillId"),
	}

	if v, ok := params["Success"].(bool); ok {
		n.Success = v
	}

	if amount := paramString(params, "Amount"); amount != "" {
		kopecks, err := strconv.ParseInt(amount, 10, 64)
		if err != nil {
			return entity.Notification{}, fmt.Errorf("parse amount %q: %w", amount, err)
		}

		n.Amount = decimal.New(kopecks, -2)
	}

	if n.PaymentID == "" {
		return entity.Notification{}, errors.New("empty PaymentId")
	}

	return n, nil
}

func paramString(params map[string]any, key string) string {
	switch v := params[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func boolQuery(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}

	return strconv.ParseBool(v)
}
