package tracker

import (
	"context"
	"sync"
	"time"

	"go-shortlink/internal/domain"
	"go-shortlink/internal/eventbus"
	"go-shortlink/internal/metrics"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// ClickRecorder persists one validated click event.
type ClickRecorder interface {
	RecordClick(ctx context.Context, event domain.ClickEvent) (*domain.ClickRecord, error)
}

// Config holds batch consumer settings.
type Config struct {
	BatchSize    int           // maximum records per batch
	BatchTimeout time.Duration // maximum wait to fill a batch
	BatchBudget  time.Duration // execution budget for processing one batch
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:    25,
		BatchTimeout: 500 * time.Millisecond,
		BatchBudget:  30 * time.Second,
	}
}

// Result is the acknowledgment for one processed batch.
type Result struct {
	Processed int // records persisted
	Dropped   int // malformed records permanently discarded
	Failed    int // storage failures; any of these redelivers the batch
}

// Processor consumes click events from the broker in batches. Records
// within a batch are processed concurrently and failure-isolated: a
// malformed payload is dropped permanently while the rest proceed, and a
// storage failure nacks the whole batch so the broker redelivers it.
// Redelivery reprocesses already-persisted records too; those become
// duplicate rows, which the store accepts by contract.
type Processor struct {
	subscriber message.Subscriber
	recorder   ClickRecorder
	logger     *zap.Logger
	cfg        Config
}

// NewProcessor creates a new batch click processor.
func NewProcessor(subscriber message.Subscriber, recorder ClickRecorder, logger *zap.Logger, cfg Config) *Processor {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = DefaultConfig().BatchTimeout
	}
	if cfg.BatchBudget <= 0 {
		cfg.BatchBudget = DefaultConfig().BatchBudget
	}
	return &Processor{
		subscriber: subscriber,
		recorder:   recorder,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run consumes the click topic until the context is canceled or the
// subscription closes.
func (p *Processor) Run(ctx context.Context) error {
	msgs, err := p.subscriber.Subscribe(ctx, eventbus.ClickTopic)
	if err != nil {
		return err
	}

	p.logger.Info("tracker started",
		zap.Int("batch_size", p.cfg.BatchSize),
		zap.Duration("batch_timeout", p.cfg.BatchTimeout),
	)

	for {
		batch, ok := p.collectBatch(ctx, msgs)
		if len(batch) > 0 {
			p.processBatch(ctx, batch)
		}
		if !ok {
			p.logger.Info("tracker stopped")
			return nil
		}
	}
}

// collectBatch blocks for the first message, then accumulates until the
// batch is full or the batch timeout expires. The second return value is
// false once the subscription is done.
func (p *Processor) collectBatch(ctx context.Context, msgs <-chan *message.Message) ([]*message.Message, bool) {
	var batch []*message.Message

	select {
	case <-ctx.Done():
		return nil, false
	case msg, open := <-msgs:
		if !open {
			return nil, false
		}
		batch = append(batch, msg)
	}

	timer := time.NewTimer(p.cfg.BatchTimeout)
	defer timer.Stop()

	for len(batch) < p.cfg.BatchSize {
		select {
		case <-ctx.Done():
			return batch, false
		case <-timer.C:
			return batch, true
		case msg, open := <-msgs:
			if !open {
				return batch, false
			}
			batch = append(batch, msg)
		}
	}
	return batch, true
}

type recordOutcome int

const (
	outcomeProcessed recordOutcome = iota
	outcomeDropped
	outcomeFailed
)

// processBatch attempts every record independently, then decides the fate
// of the batch as a whole: zero storage failures acks everything, any
// storage failure nacks everything so the broker redelivers the entire
// batch. Dropped records never cause redelivery.
func (p *Processor) processBatch(ctx context.Context, batch []*message.Message) Result {
	bctx, cancel := context.WithTimeout(ctx, p.cfg.BatchBudget)
	defer cancel()

	outcomes := make([]recordOutcome, len(batch))
	var wg sync.WaitGroup
	for i, msg := range batch {
		wg.Add(1)
		go func(i int, msg *message.Message) {
			defer wg.Done()
			outcomes[i] = p.processRecord(bctx, msg)
		}(i, msg)
	}
	wg.Wait()

	var res Result
	for _, o := range outcomes {
		switch o {
		case outcomeProcessed:
			res.Processed++
		case outcomeDropped:
			res.Dropped++
		case outcomeFailed:
			res.Failed++
		}
	}

	if res.Failed > 0 {
		for _, msg := range batch {
			msg.Nack()
		}
		metrics.RecordBatch("redelivered")
		p.logger.Warn("click batch failed, requesting redelivery",
			zap.Int("size", len(batch)),
			zap.Int("processed", res.Processed),
			zap.Int("dropped", res.Dropped),
			zap.Int("failed", res.Failed),
		)
		return res
	}

	for _, msg := range batch {
		msg.Ack()
	}
	metrics.RecordBatch("ok")
	p.logger.Debug("click batch processed",
		zap.Int("size", len(batch)),
		zap.Int("processed", res.Processed),
		zap.Int("dropped", res.Dropped),
	)
	return res
}

// processRecord handles one delivery. Parse and shape failures will not
// become well-formed on retry, so they are dropped permanently; only
// storage failures are retryable.
func (p *Processor) processRecord(ctx context.Context, msg *message.Message) recordOutcome {
	event, err := eventbus.MessageToEvent(msg)
	if err != nil {
		metrics.RecordClickDropped()
		p.logger.Error("dropping malformed click event",
			zap.String("message_uuid", msg.UUID),
			zap.Error(err),
		)
		return outcomeDropped
	}

	if _, err := p.recorder.RecordClick(ctx, event); err != nil {
		p.logger.Error("failed to record click",
			zap.String("short_code", event.Code),
			zap.String("message_uuid", msg.UUID),
			zap.Error(err),
		)
		return outcomeFailed
	}

	metrics.RecordClickRecorded()
	return outcomeProcessed
}
