package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"loveplanet/payment-svc/internal/domain"
)

// Consumer drains the payment-events topic and applies each terminal status
// through the processor. Webhook intake and the timeout watchdog both feed
// this topic, so every transition funnels through one place.
type Consumer struct {
	Reader    *kafka.Reader
	Processor *StatusProcessor
}

func NewConsumer(reader *kafka.Reader, processor *StatusProcessor) *Consumer {
	return &Consumer{
		Reader:    reader,
		Processor: processor,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting payment status consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var ev domain.StatusEvent
		if err := json.Unmarshal(message.Value, &ev); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if ev.Type == domain.EventPaymentStatus {
			c.Processor.Apply(ctx, ev)
		}
	}
}

// StatusProcessor applies a terminal status to the order row and tells the
// room watching that order what happened.
type StatusProcessor struct {
	Orders      OrderStore
	Notifier    Notifier
	Coordinator CoordinatorInterface
}

func NewStatusProcessor(orders OrderStore, notifier Notifier, coordinator CoordinatorInterface) *StatusProcessor {
	return &StatusProcessor{
		Orders:      orders,
		Notifier:    notifier,
		Coordinator: coordinator,
	}
}

func (p *StatusProcessor) Apply(ctx context.Context, ev domain.StatusEvent) {
	status, ok := domain.NormalizeStatus(ev.Status)
	if !ok {
		log.Printf("Ignoring non-terminal status %q for order %d", ev.Status, ev.OrderCode)
		return
	}

	applied, current, err := p.Orders.ApplyStatus(ctx, ev.OrderCode, status.OrderStatus())
	if err != nil {
		log.Printf("Error applying status %s to order %d: %v", status, ev.OrderCode, err)
		return
	}

	room := strconv.FormatInt(ev.OrderCode, 10)

	if applied {
		log.Printf("Order %d resolved to %s", ev.OrderCode, status)
		p.Notifier.Broadcast(room, domain.EventPaymentStatus, statusPayload{
			OrderCode: ev.OrderCode,
			Status:    string(status),
			Message:   ev.Message,
			Timestamp: time.Now(),
		})
		if p.Coordinator != nil {
			p.Coordinator.Resolve(ctx, ev.OrderCode, "")
		}
		return
	}

	// The row was already terminal. The one case worth surfacing is money
	// arriving after the watchdog timed the order out: flag it for manual
	// reconciliation and still tell the room.
	if current == domain.StatusTimeout.OrderStatus() && status == domain.StatusPaid {
		log.Printf("RECONCILE: order %d paid after timeout, manual review required", ev.OrderCode)
		p.Notifier.Broadcast(room, domain.EventPaymentStatus, statusPayload{
			OrderCode: ev.OrderCode,
			Status:    string(status),
			Message:   "payment received after the checkout window expired",
			Late:      true,
			Timestamp: time.Now(),
		})
		return
	}

	log.Printf("Order %d already %s, ignoring %s", ev.OrderCode, current, status)
}

type statusPayload struct {
	OrderCode int64     `json:"orderCode"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Late      bool      `json:"late,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
