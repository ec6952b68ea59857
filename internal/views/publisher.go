package views

import (
	"context"
	"encoding/json"

	"softpet/internal/adapters/mq"
	"softpet/internal/platform/logger"
)

// Channel es la cola donde se publican los eventos de invalidación.
const Channel = "softpet.views.invalidate"

// Publisher notifica a otros procesos (otras réplicas, workers) vía broker.
type Publisher struct {
	mq      *mq.MQ
	channel string
}

func NewPublisher(m *mq.MQ) *Publisher {
	return &Publisher{mq: m, channel: Channel}
}

func (p *Publisher) Invalidate(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = p.mq.Publish(ctx, p.channel, data, map[string]string{
		"action": string(ev.Action),
		"path":   ev.Path,
	})
	return err
}

// Listen consume eventos de otras réplicas y los aplica a inv (normalmente el
// Listing local). Bloquea hasta que ctx termine.
func Listen(ctx context.Context, m *mq.MQ, inv Invalidator, log logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	return m.Subscribe(ctx, Channel, func(ctx context.Context, msg mq.Message) error {
		var ev Event
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			// mensaje corrupto: ack para no reintentarlo para siempre
			log.Warn("drop invalid view event", map[string]any{"error": err, "message_id": msg.ID})
			return nil
		}
		return inv.Invalidate(ctx, ev)
	})
}
