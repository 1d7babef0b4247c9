package eventbus

import (
	"go-shortlink/internal/domain"
	"go-shortlink/internal/metrics"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// ClickPublisher emits click events onto the broadcast topic without
// blocking the caller. Publish failures are logged and counted; they are
// never surfaced to the redirect path, and this component does not retry.
type ClickPublisher struct {
	publisher message.Publisher
	logger    *zap.Logger
}

// NewClickPublisher creates a new click publisher.
func NewClickPublisher(publisher message.Publisher, logger *zap.Logger) *ClickPublisher {
	return &ClickPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishClick dispatches the event asynchronously. The caller's response
// path is already complete by the time the publish runs; its outcome is
// observed only through logging and metrics.
func (p *ClickPublisher) PublishClick(event domain.ClickEvent) {
	go p.publish(event)
}

func (p *ClickPublisher) publish(event domain.ClickEvent) {
	msg, err := EventToMessage(event)
	if err != nil {
		metrics.RecordPublishFailure()
		p.logger.Error("failed to marshal click event",
			zap.String("short_code", event.Code),
			zap.Error(err),
		)
		return
	}

	if err := p.publisher.Publish(ClickTopic, msg); err != nil {
		metrics.RecordPublishFailure()
		p.logger.Error("failed to publish click event",
			zap.String("short_code", event.Code),
			zap.Error(err),
		)
		// Click is lost, redirect already succeeded
		return
	}

	metrics.RecordClickPublished()
}
