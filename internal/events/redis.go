package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"zappayBack/internal/models"
)

// Channel carries invoice updates between processes.
const Channel = "invoice.updates"

// Publisher pushes invoice updates onto the shared redis channel.
type Publisher struct {
	RDB *redis.Client
}

func (p *Publisher) PublishInvoiceUpdate(ctx context.Context, inv models.Invoice) error {
	payload, err := json.Marshal(inv)
	if err != nil {
		return err
	}
	if err := p.RDB.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", Channel, err)
	}
	return nil
}

// Broadcaster delivers updates to local room subscribers.
type Broadcaster interface {
	Broadcast(token, event string, payload interface{})
}

// Subscriber feeds redis invoice updates into the local hub so every
// process delivers to whatever rooms it hosts.
type Subscriber struct {
	RDB      *redis.Client
	Hub      Broadcaster
	ErrorLog *log.Logger
}

// Run blocks consuming the update channel until ctx is canceled.
func (s *Subscriber) Run(ctx context.Context) {
	sub := s.RDB.Subscribe(ctx, Channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var inv models.Invoice
			if err := json.Unmarshal([]byte(msg.Payload), &inv); err != nil {
				s.ErrorLog.Printf("bad invoice update payload: %v", err)
				continue
			}
			s.Hub.Broadcast(inv.Token, "update", inv)
		}
	}
}
