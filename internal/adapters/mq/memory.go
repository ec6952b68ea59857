package mq

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrClosed = errors.New("mq: backend closed")

// Memory es un Backend in-process (modo dev y tests).
// Entrega a cada suscriptor activo; también guarda lo publicado por channel.
type Memory struct {
	mu        sync.Mutex
	closed    bool
	subs      map[string][]chan Message
	published map[string][]Message
}

func NewMemory() *Memory {
	return &Memory{
		subs:      map[string][]chan Message{},
		published: map[string][]Message{},
	}
}

func (m *Memory) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if strings.TrimSpace(channel) == "" {
		return "", ErrChannelRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", ErrClosed
	}

	msg := Message{ID: uuid.NewString(), Data: append([]byte(nil), data...), Attributes: copyAttrs(attrs)}
	m.published[channel] = append(m.published[channel], msg)

	for _, ch := range m.subs[channel] {
		select {
		case ch <- msg:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return msg.ID, nil
}

// Subscribe bloquea hasta que ctx termine o se cierre el backend.
func (m *Memory) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if strings.TrimSpace(channel) == "" {
		return ErrChannelRequired
	}

	ch := make(chan Message, 64)
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.subs[channel] = append(m.subs[channel], ch)
	m.mu.Unlock()

	defer m.unsubscribe(channel, ch)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return ErrClosed
			}
			// sin redelivery: el error se descarta
			_ = handler(ctx, msg)
		}
	}
}

// Published devuelve una copia de lo publicado en channel.
func (m *Memory) Published(channel string) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.published[channel]...)
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for _, list := range m.subs {
		for _, ch := range list {
			close(ch)
		}
	}
	m.subs = map[string][]chan Message{}
	return nil
}

func (m *Memory) unsubscribe(channel string, target chan Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.subs[channel]
	for i, ch := range list {
		if ch == target {
			m.subs[channel] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func copyAttrs(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
