package mq

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPublishRecords(t *testing.T) {
	m := New(NewMemory())
	defer m.Close()

	id, err := m.Publish(context.Background(), "views", []byte(`{"a":1}`), map[string]string{"action": "created"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got := m.backend.(*Memory).Published("views")
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "created", got[0].Attributes["action"])
}

func TestMemorySubscribeDelivers(t *testing.T) {
	mem := NewMemory()
	defer mem.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- mem.Subscribe(ctx, "views", func(ctx context.Context, msg Message) error {
			received <- msg
			return nil
		})
	}()

	// esperar a que el suscriptor quede registrado
	require.Eventually(t, func() bool {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		return len(mem.subs["views"]) == 1
	}, time.Second, 5*time.Millisecond)

	_, err := mem.Publish(ctx, "views", []byte("hi"), nil)
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, "hi", string(msg.Data))
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestMemoryRejectsEmptyChannelAndClosed(t *testing.T) {
	mem := NewMemory()

	_, err := mem.Publish(context.Background(), " ", nil, nil)
	assert.ErrorIs(t, err, ErrChannelRequired)

	require.NoError(t, mem.Close())
	_, err = mem.Publish(context.Background(), "views", nil, nil)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestHeadersToAttributes(t *testing.T) {
	assert.Nil(t, headersToAttributes(nil))
	got := headersToAttributes(map[string]any{"a": "x", "b": []byte("y"), "c": 3})
	assert.Equal(t, map[string]string{"a": "x", "b": "y", "c": "3"}, got)
}
