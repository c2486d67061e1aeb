package acquiring

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/acquiring/internal/entity"
)

const oneHundred = 100

// APIError is a response with Success=false or a non-zero ErrorCode.
type APIError struct {
	Method  string
	Code    string
	Message string
	Details string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: error code %s: %s", e.Method, e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}

	return msg
}

func (e *APIError) Unwrap() error {
	return entity.ErrAcquiring
}

// flexString accepts both JSON strings and numbers, the API is not consistent about ids.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var v string

		err := json.Unmarshal(b, &v)
		if err != nil {
			return err
		}

		*s = flexString(v)

		return nil
	}

	var n json.Number

	err := json.Unmarshal(b, &n)
	if err != nil {
		return fmt.Errorf("neither string nor number: %s", b)
	}

	*s = flexString(n.String())

	return nil
}

type baseResponse struct {
	Success   bool   `json:"Success"`
	ErrorCode string `json:"ErrorCode"`
	Message   string `json:"Message"`
	Details   string `json:"Details"`
}

func (r baseResponse) err(method string) error {
	if r.Success && (r.ErrorCode == "" || r.ErrorCode == "0") {
		return nil
	}

	code := r.ErrorCode
	if code == "" {
		code = "unknown"
	}

	return &APIError{
		Method:  method,
		Code:    code,
		Message: r.Message,
		Details: r.Details,
	}
}

type response interface {
	err(method string) error
}

type GetCardListRequest struct {
	TerminalKey string `json:"TerminalKey"`
	CustomerKey string `json:"CustomerKey"`
}

type Card struct {
	Pan      string     `json:"Pan"`
	CardID   flexString `json:"CardId"`
	Status   string     `json:"Status"`
	RebillID flexString `json:"RebillId"`
	ExpDate  string     `json:"ExpDate"`
}

func (c Card) toEntity() entity.PaymentCard {
	return entity.PaymentCard{
		PAN:             c.Pan,
		CardID:          string(c.CardID),
		Status:          entity.PaymentCardStatus(c.Status),
		ParentPaymentID: string(c.RebillID),
		ExpDate:         c.ExpDate,
	}
}

type RemoveCardRequest struct {
	TerminalKey string `json:"TerminalKey"`
	CustomerKey string `json:"CustomerKey"`
	CardID      string `json:"CardId"`
}

type RemoveCardResponse struct {
	baseResponse
	CardID      flexString `json:"CardId"`
	CustomerKey string     `json:"CustomerKey"`
	Status      string     `json:"Status"`
}

type GetStateRequest struct {
	TerminalKey string `json:"TerminalKey"`
	PaymentID   string `json:"PaymentId"`
}

type paymentResponse struct {
	baseResponse
	PaymentID flexString `json:"PaymentId"`
	OrderID   string     `json:"OrderId"`
	Amount    int64      `json:"Amount"` // Kopecks
	Status    string     `json:"Status"`
}

func (r paymentResponse) toState() entity.PaymentState {
	return entity.PaymentState{
		PaymentID: string(r.PaymentID),
		OrderID:   r.OrderID,
		Amount:    fromKopecks(r.Amount),
		Status:    entity.PaymentStatus(r.Status),
	}
}

type InitRequest struct {
	TerminalKey string `json:"TerminalKey"`
	Amount      int64  `json:"Amount"` // Kopecks
	OrderID     string `json:"OrderId"`
	Description string `json:"Description,omitempty"`
	CustomerKey string `json:"CustomerKey,omitempty"`
	Recurrent   string `json:"Recurrent,omitempty"` // "Y" registers the card for recurrent charges
}

type InitResponse struct {
	paymentResponse
	PaymentURL string `json:"PaymentURL"`
}

type ChargeRequest struct {
	TerminalKey string `json:"TerminalKey"`
	PaymentID   string `json:"PaymentId"`
	RebillID    string `json:"RebillId"`
}

type GetQrRequest struct {
	TerminalKey string `json:"TerminalKey"`
	PaymentID   string `json:"PaymentId"`
	DataType    string `json:"DataType"`
}

type GetQrResponse struct {
	baseResponse
	PaymentID flexString `json:"PaymentId"`
	Data      string     `json:"Data"`
}

type TerminalPayMethodsResponse struct {
	baseResponse
	TerminalInfo struct {
		TokenRequired     bool        `json:"TokenRequired"`
		InitTokenRequired bool        `json:"InitTokenRequired"`
		AddCardScheme     bool        `json:"AddCardScheme"`
		Paymethods        []payMethod `json:"Paymethods"`
	} `json:"TerminalInfo"`
}

type payMethod struct {
	PayMethod string         `json:"PayMethod"`
	Params    map[string]any `json:"Params"`
}

func (m payMethod) toEntity() entity.TerminalPayMethod {
	params := make(map[string]string, len(m.Params))
	for k, v := range m.Params {
		params[k] = fmt.Sprint(v)
	}

	return entity.TerminalPayMethod{
		PayMethod: m.PayMethod,
		Params:    params,
	}
}

func toKopecks(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(oneHundred)).Truncate(0).IntPart()
}

func fromKopecks(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}

func boolFlag(v bool) string {
	if v {
		return "Y"
	}

	return ""
}
