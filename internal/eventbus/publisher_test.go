package eventbus_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go-shortlink/internal/eventbus"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockPublisher is a function-field test double for message.Publisher.
type mockPublisher struct {
	mu          sync.Mutex
	publishFunc func(topic string, messages ...*message.Message) error
	published   []*message.Message
	done        chan struct{}
}

func newMockPublisher(publishFunc func(topic string, messages ...*message.Message) error) *mockPublisher {
	return &mockPublisher{
		publishFunc: publishFunc,
		done:        make(chan struct{}, 16),
	}
}

func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	m.mu.Lock()
	m.published = append(m.published, messages...)
	m.mu.Unlock()

	err := m.publishFunc(topic, messages...)
	m.done <- struct{}{}
	return err
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) waitForPublish(t *testing.T) {
	t.Helper()
	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for async publish")
	}
}

// TestPublishClick_DispatchesEventAsynchronously verifies the event reaches
// the broker off the caller's path
func TestPublishClick_DispatchesEventAsynchronously(t *testing.T) {
	// Setup
	pub := newMockPublisher(func(topic string, messages ...*message.Message) error {
		assert.Equal(t, eventbus.ClickTopic, topic)
		return nil
	})
	clickPublisher := eventbus.NewClickPublisher(pub, zap.NewNop())

	// Act
	clickPublisher.PublishClick(validEvent())

	// Assert
	pub.waitForPublish(t)
	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.published, 1)
	assert.Equal(t, "abc1234", pub.published[0].Metadata.Get("short_code"))
}

// TestPublishClick_BrokerError_DoesNotPanic verifies publish failures stay
// contained: logged and counted, never surfaced
func TestPublishClick_BrokerError_DoesNotPanic(t *testing.T) {
	// Setup
	pub := newMockPublisher(func(topic string, messages ...*message.Message) error {
		return errors.New("broker unavailable")
	})
	clickPublisher := eventbus.NewClickPublisher(pub, zap.NewNop())

	// Act: must return immediately and swallow the broker error
	clickPublisher.PublishClick(validEvent())

	// Assert
	pub.waitForPublish(t)
}
