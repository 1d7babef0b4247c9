package eventbus

import (
	"encoding/json"

	"go-shortlink/internal/domain"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	// ClickTopic is the broadcast topic for click events.
	ClickTopic = "clicks"
)

// Bus wraps Watermill pub/sub for click events. The go-channel transport
// gives at-least-once, unordered delivery within the process: a nacked
// message is redelivered, an unacked publish may be dropped on shutdown.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter
}

// NewBus creates a new event bus using Go channels.
func NewBus(logger watermill.LoggerAdapter) *Bus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 256,
			Persistent:          false,
		},
		logger,
	)

	return &Bus{
		pubsub: pubsub,
		logger: logger,
	}
}

// Publisher returns the Watermill publisher.
func (b *Bus) Publisher() message.Publisher {
	return b.pubsub
}

// Subscriber returns the Watermill subscriber.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close closes the event bus.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// EventToMessage converts a click event to a Watermill message. The
// message UUID identifies the delivery, not the click: the durable click
// id is assigned only at persistence time.
func EventToMessage(e domain.ClickEvent) (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("short_code", e.Code)

	return msg, nil
}

// MessageToEvent decodes and validates a click event from a Watermill
// message. Both decode and validation failures return
// domain.ErrMalformedEvent wrapped, so callers can drop permanently.
func MessageToEvent(msg *message.Message) (domain.ClickEvent, error) {
	var e domain.ClickEvent
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return domain.ClickEvent{}, domain.ErrMalformedEvent
	}
	if err := e.Validate(); err != nil {
		return domain.ClickEvent{}, err
	}
	return e, nil
}
