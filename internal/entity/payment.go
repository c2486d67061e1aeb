package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the status code returned by the acquiring API.
type PaymentStatus string

const (
	PaymentStatusNew             PaymentStatus = "NEW"
	PaymentStatusFormShowed      PaymentStatus = "FORM_SHOWED"
	PaymentStatusDeadlineExpired PaymentStatus = "DEADLINE_EXPIRED"
	PaymentStatusCanceled        PaymentStatus = "CANCELED"
	PaymentStatusPreauthorizing  PaymentStatus = "PREAUTHORIZING"
	PaymentStatusAuthorizing     PaymentStatus = "AUTHORIZING"
	PaymentStatusAuthorized      PaymentStatus = "AUTHORIZED"
	PaymentStatusAuthFail        PaymentStatus = "AUTH_FAIL"
	PaymentStatusRejected        PaymentStatus = "REJECTED"
	PaymentStatus3DSChecking     PaymentStatus = "3DS_CHECKING"
	PaymentStatus3DSChecked      PaymentStatus = "3DS_CHECKED"
	PaymentStatusReversing       PaymentStatus = "REVERSING"
	PaymentStatusPartialReversed PaymentStatus = "PARTIAL_REVERSED"
	PaymentStatusReversed        PaymentStatus = "REVERSED"
	PaymentStatusConfirming      PaymentStatus = "CONFIRMING"
	PaymentStatusConfirmed       PaymentStatus = "CONFIRMED"
	PaymentStatusRefunding       PaymentStatus = "REFUNDING"
	PaymentStatusPartialRefunded PaymentStatus = "PARTIAL_REFUNDED"
	PaymentStatusRefunded        PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentState is the last known state of a payment.
type PaymentState struct {
	PaymentID string          `json:"paymentId"`
	OrderID   string          `json:"orderId"`
	Amount    decimal.Decimal `json:"amount"`
	Status    PaymentStatus   `json:"status"`
}

// SheetState is the client facing state of a payment status poll.
type SheetState string

const (
	SheetStateWaiting       SheetState = "waiting"
	SheetStateProcessing    SheetState = "processing"
	SheetStatePaid          SheetState = "paid"
	SheetStatePaymentFailed SheetState = "payment_failed"
	SheetStateTimeout       SheetState = "timeout"
)

func (s SheetState) String() string {
	return string(s)
}

// CanDismiss reports whether a client may close the poll in this state.
func (s SheetState) CanDismiss() bool {
	return s != SheetStateProcessing
}

// IsFinal reports whether polling has stopped in this state.
func (s SheetState) IsFinal() bool {
	switch s {
	case SheetStatePaid, SheetStatePaymentFailed, SheetStateTimeout:
		return true
	default:
		return false
	}
}

type PollOutcome string

const (
	PollOutcomeSucceeded PollOutcome = "succeeded"
	PollOutcomeCancelled PollOutcome = "cancelled"
	PollOutcomeFailed    PollOutcome = "failed"
)

func (o PollOutcome) String() string {
	return string(o)
}

// PollResult is reported exactly once when a payment status poll is over.
type PollResult struct {
	ID         uuid.UUID
	PaymentID  string
	Outcome    PollOutcome
	State      SheetState
	Info       PaymentState
	Err        error
	Attempts   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// InitOrder describes a payment to be registered with Init.
type InitOrder struct {
	OrderID     string
	Amount      decimal.Decimal
	Description string
	CustomerKey string
	Recurrent   bool
}

type InitPayload struct {
	PaymentID  string
	OrderID    string
	Amount     decimal.Decimal
	Status     PaymentStatus
	PaymentURL string
}

type ChargePayload struct {
	Status PaymentStatus
	State  PaymentState
}

// TerminalPayMethod is a payment method enabled on the terminal, e.g. "YandexPay".
type TerminalPayMethod struct {
	PayMethod string            `json:"payMethod"`
	Params    map[string]string `json:"params,omitempty"`
}

type YandexPayMethod struct {
	MerchantID     string `json:"merchantId"`
	MerchantName   string `json:"merchantName"`
	MerchantOrigin string `json:"merchantOrigin"`
	ShowcaseID     string `json:"showcaseId"`
}

// SBPPayload is the NSPK link a bank application opens to pay with SBP.
type SBPPayload struct {
	PaymentID string `json:"paymentId"`
	Payload   string `json:"payload"`
}

type PollResultFilter struct {
	PaymentID string
	Outcome   PollOutcome // Any outcome if empty.
	Limit     uint64
}

// PollView is a snapshot of a payment status poll.
type PollView struct {
	ID         uuid.UUID    `json:"id"`
	PaymentID  string       `json:"paymentId"`
	State      SheetState   `json:"state"`
	CanDismiss bool         `json:"canDismiss"`
	Info       PaymentState `json:"info"`
	Attempts   int          `json:"attempts"`
	Finished   bool         `json:"finished"`
	Outcome    PollOutcome  `json:"outcome,omitempty"`
	Error      string       `json:"error,omitempty"`
	FinishedAt time.Time    `json:"finishedAt"`
}

// ChargeRequest asks to pay with a card saved for recurrent payments.
// Order is registered with Init when PaymentID is empty.
type ChargeRequest struct {
	CustomerKey string
	CardID      string
	PaymentID   string
	Order       InitOrder
}

// Notification is a payment status callback sent by the acquiring.
type Notification struct {
	PaymentID string
	OrderID   string
	Status    PaymentStatus
	Success   bool
	Amount    decimal.Decimal
	CardID    string
	RebillID  string
}
