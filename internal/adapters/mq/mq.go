package mq

import "context"

// Message es el payload entregado a un suscriptor, independiente del broker.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler procesa un mensaje; error => nack + reintento.
type Handler func(ctx context.Context, msg Message) error

type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// MQ envuelve un Backend con una API estable para el resto de la app.
type MQ struct {
	backend Backend
}

func New(backend Backend) *MQ {
	return &MQ{backend: backend}
}

func (m *MQ) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return m.backend.Publish(ctx, channel, data, attrs)
}

func (m *MQ) Subscribe(ctx context.Context, channel string, handler Handler) error {
	return m.backend.Subscribe(ctx, channel, handler)
}

func (m *MQ) Close() error {
	return m.backend.Close()
}
