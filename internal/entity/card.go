package entity

type PaymentCardStatus string

const (
	PaymentCardStatusActive   PaymentCardStatus = "A"
	PaymentCardStatusInactive PaymentCardStatus = "I"
	PaymentCardStatusDeleted  PaymentCardStatus = "D"
)

func (s PaymentCardStatus) String() string {
	return string(s)
}

// PaymentCard is a card saved for a customer. It is never mutated after it was fetched.
type PaymentCard struct {
	PAN             string            `json:"pan"`
	CardID          string            `json:"cardId"`
	Status          PaymentCardStatus `json:"status"`
	ParentPaymentID string            `json:"parentPaymentId,omitempty"` // RebillId, only for recurrent cards
	ExpDate         string            `json:"expDate,omitempty"`         // MMYY
}

func (c PaymentCard) IsActive() bool {
	return c.Status == PaymentCardStatusActive
}

// CloneCards returns a copy of cards so callers can't alter cached data.
func CloneCards(cards []PaymentCard) []PaymentCard {
	if cards == nil {
		return nil
	}

	return append(make([]PaymentCard, 0, len(cards)), cards...)
}

type CardFilter struct {
	ActiveOnly bool
	Recurrent  bool // Only cards with a parent payment, usable for Charge.
}
