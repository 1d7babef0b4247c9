package eventbus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-shortlink/internal/domain"
	"go-shortlink/internal/eventbus"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func validEvent() domain.ClickEvent {
	return domain.ClickEvent{
		Code:      "abc1234",
		Timestamp: 1700000000000,
		UserAgent: "Mozilla/5.0",
		IP:        "203.0.113.7",
		Referer:   "https://news.example.com",
	}
}

// TestEventToMessage_SetsPayloadAndMetadata verifies message construction
func TestEventToMessage_SetsPayloadAndMetadata(t *testing.T) {
	event := validEvent()

	msg, err := eventbus.EventToMessage(event)

	require.NoError(t, err)
	assert.NotEmpty(t, msg.UUID)
	assert.Equal(t, "abc1234", msg.Metadata.Get("short_code"))
	assert.Contains(t, string(msg.Payload), `"code":"abc1234"`)
	assert.Contains(t, string(msg.Payload), `"timestamp":1700000000000`)
}

// TestMessageToEvent_ValidPayload_RoundTrips verifies decode of a built message
func TestMessageToEvent_ValidPayload_RoundTrips(t *testing.T) {
	event := validEvent()
	msg, err := eventbus.EventToMessage(event)
	require.NoError(t, err)

	decoded, err := eventbus.MessageToEvent(msg)

	require.NoError(t, err)
	assert.Equal(t, event, decoded)
}

// TestMessageToEvent_InvalidJSON_ReturnsErrMalformedEvent verifies that
// unparseable payloads are flagged for permanent drop
func TestMessageToEvent_InvalidJSON_ReturnsErrMalformedEvent(t *testing.T) {
	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))

	_, err := eventbus.MessageToEvent(msg)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedEvent))
}

// TestMessageToEvent_MissingFields_ReturnsErrMalformedEvent verifies that
// parseable but incomplete payloads are also dropped
func TestMessageToEvent_MissingFields_ReturnsErrMalformedEvent(t *testing.T) {
	msg := message.NewMessage(watermill.NewUUID(), []byte(`{"code":"abc1234"}`))

	_, err := eventbus.MessageToEvent(msg)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedEvent))
}

// BusSuite exercises publish/subscribe through the go-channel transport.
type BusSuite struct {
	suite.Suite
	bus *eventbus.Bus
}

func (s *BusSuite) SetupTest() {
	s.bus = eventbus.NewBus(watermill.NopLogger{})
}

func (s *BusSuite) TearDownTest() {
	s.Require().NoError(s.bus.Close())
}

// TestPublishSubscribe_DeliversEvent verifies an end-to-end roundtrip
func (s *BusSuite) TestPublishSubscribe_DeliversEvent() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msgs, err := s.bus.Subscriber().Subscribe(ctx, eventbus.ClickTopic)
	s.Require().NoError(err)

	event := validEvent()
	msg, err := eventbus.EventToMessage(event)
	s.Require().NoError(err)
	s.Require().NoError(s.bus.Publisher().Publish(eventbus.ClickTopic, msg))

	select {
	case received := <-msgs:
		decoded, err := eventbus.MessageToEvent(received)
		s.Require().NoError(err)
		s.Equal(event, decoded)
		received.Ack()
	case <-ctx.Done():
		s.Fail("timed out waiting for message")
	}
}

// TestPublishSubscribe_NackedMessageIsRedelivered verifies at-least-once
// delivery: a nack triggers redelivery of the same payload
func (s *BusSuite) TestPublishSubscribe_NackedMessageIsRedelivered() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msgs, err := s.bus.Subscriber().Subscribe(ctx, eventbus.ClickTopic)
	s.Require().NoError(err)

	msg, err := eventbus.EventToMessage(validEvent())
	s.Require().NoError(err)
	s.Require().NoError(s.bus.Publisher().Publish(eventbus.ClickTopic, msg))

	// First delivery: nack it
	select {
	case received := <-msgs:
		received.Nack()
	case <-ctx.Done():
		s.Fail("timed out waiting for first delivery")
		return
	}

	// Redelivery carries the same payload
	select {
	case received := <-msgs:
		decoded, err := eventbus.MessageToEvent(received)
		s.Require().NoError(err)
		s.Equal("abc1234", decoded.Code)
		received.Ack()
	case <-ctx.Done():
		s.Fail("timed out waiting for redelivery")
	}
}

func TestBusSuite(t *testing.T) {
	suite.Run(t, new(BusSuite))
}
