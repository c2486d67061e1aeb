package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/acquiring/internal/entity"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	l                     *slog.Logger
	w                     messageWriter
	paymentsResolvedTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:                     l,
		w:                     w,
		paymentsResolvedTopic: topic,
	}
}

type PaymentResolvedEvent struct {
	PollID     uuid.UUID       `json:"poll_id"`
	PaymentID  string          `json:"payment_id"`
	OrderID    string          `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	Outcome    string          `json:"outcome"`
	State      string          `json:"state"`
	Status     string          `json:"status,omitempty"`
	Error      string          `json:"error,omitempty"`
	FinishedAt time.Time       `json:"finished_at"`
}

// SendPaymentResolved publishes the result of a payment status poll. Messages are keyed by
// payment id so events of one payment stay ordered.
func (p *Producer) SendPaymentResolved(ctx context.Context, res entity.PollResult) {
	event := PaymentResolvedEvent{
		PollID:     res.ID,
		PaymentID:  res.PaymentID,
		OrderID:    res.Info.OrderID,
		Amount:     res.Info.Amount,
		Outcome:    res.Outcome.String(),
		State:      res.State.String(),
		Status:     res.Info.Status.String(),
		FinishedAt: res.FinishedAt,
	}

	if res.Err != nil {
		event.Error = res.Err.Error()
	}

	b, err := json.Marshal(event)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(res.PaymentID),
		Value: b,
		Topic: p.paymentsResolvedTopic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}
