package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNop(t *testing.T) {
	t.Parallel()

	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), TopicProducts, "k", NewEvent("product_created", "1", "", "mug")))
	assert.NoError(t, p.Close())
}

func TestProducer_MarshalError(t *testing.T) {
	t.Parallel()

	p := NewProducer([]string{"127.0.0.1:1"})
	defer p.Close()

	err := p.Publish(context.Background(), TopicProducts, "k", map[string]any{"bad": make(chan int)})
	assert.ErrorContains(t, err, "json.Marshal")
}

func TestNewProducer_FlushesSingleMessages(t *testing.T) {
	t.Parallel()

	p := NewProducer([]string{"127.0.0.1:1"})
	defer p.Close()

	assert.Equal(t, batchTimeout, p.writer.BatchTimeout)
	assert.Equal(t, 1, p.writer.BatchSize)
	assert.Less(t, p.writer.BatchTimeout, 100*time.Millisecond)
}

func TestNewEvent(t *testing.T) {
	t.Parallel()

	ev := NewEvent("merch_deleted", "id-1", "user-1", "hoodie")
	assert.Equal(t, "merch_deleted", ev.Type)
	assert.Equal(t, "id-1", ev.ID)
	assert.Equal(t, "user-1", ev.UserID)
	assert.False(t, ev.OccurredAt.IsZero())
}
