package publisher

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cenkalti/backoff/v4"
	"github.com/harvestlane/backoffice/internal/config"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/pubsub"
	"github.com/harvestlane/backoffice/internal/sentry"
	"github.com/harvestlane/backoffice/internal/types"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FeeEvent is published after a fee change commits
type FeeEvent struct {
	ID              string          `json:"id"`
	EventName       types.EventName `json:"event_name"`
	TenantID        string          `json:"tenant_id"`
	OrderID         string          `json:"order_id,omitempty"`
	EnterpriseFeeID string          `json:"enterprise_fee_id,omitempty"`
	// Created, Updated and Removed count adjustments touched by the pass
	Created   int       `json:"created,omitempty"`
	Updated   int       `json:"updated,omitempty"`
	Removed   int       `json:"removed,omitempty"`
	Total     string    `json:"total,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewFeeEvent stamps an event with an id, the tenant and the current time
func NewFeeEvent(ctx context.Context, name types.EventName) *FeeEvent {
	return &FeeEvent{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT),
		EventName: name,
		TenantID:  types.GetTenantID(ctx),
		Timestamp: time.Now().UTC(),
	}
}

// DecodeFeeEvent parses a message produced by FeeEventPublisher
func DecodeFeeEvent(msg *message.Message) (*FeeEvent, error) {
	var event FeeEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Malformed fee event").
			WithReportableDetails(map[string]any{"message_uuid": msg.UUID}).
			Mark(ierr.ErrValidation)
	}
	return &event, nil
}

// FeeEventPublisher publishes fee engine events
type FeeEventPublisher interface {
	// PublishOrderFees announces a committed synchronization pass on an order
	PublishOrderFees(ctx context.Context, event *FeeEvent) error
	// PublishFeeChange announces a saved or deleted enterprise fee
	PublishFeeChange(ctx context.Context, event *FeeEvent) error
}

type feeEventPublisher struct {
	pubsub  pubsub.Publisher
	sentry  *sentry.Service
	logger  *logger.Logger
	config  *config.FeesConfig
	backoff func() backoff.BackOff
}

func NewFeeEventPublisher(
	cfg *config.Configuration,
	pubSub pubsub.PubSub,
	sentry *sentry.Service,
	logger *logger.Logger,
) FeeEventPublisher {
	timeout := cfg.Fees.PublishTimeout
	return &feeEventPublisher{
		pubsub: pubSub,
		sentry: sentry,
		logger: logger,
		config: &cfg.Fees,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxElapsedTime = timeout
			return b
		},
	}
}

func (p *feeEventPublisher) PublishOrderFees(ctx context.Context, event *FeeEvent) error {
	return p.publish(ctx, p.config.EventTopic, event)
}

func (p *feeEventPublisher) PublishFeeChange(ctx context.Context, event *FeeEvent) error {
	return p.publish(ctx, p.config.FeeChangeTopic, event)
}

func (p *feeEventPublisher) publish(ctx context.Context, topic string, event *FeeEvent) error {
	span, ctx := p.sentry.StartPublishSpan(ctx, topic)
	defer sentry.FinishSpan(span)

	payload, err := json.Marshal(event)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode fee event").
			Mark(ierr.ErrSystem)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("tenant_id", event.TenantID)
	msg.Metadata.Set("event_name", string(event.EventName))

	operation := func() error {
		return p.pubsub.Publish(ctx, topic, msg)
	}
	notify := func(err error, wait time.Duration) {
		p.logger.Warnw("retrying fee event publish",
			"event_id", event.ID,
			"topic", topic,
			"wait", wait,
			"error", err,
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(p.backoff(), ctx), notify); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to publish %s", event.EventName).
			WithReportableDetails(map[string]any{"event_id": event.ID, "topic": topic}).
			Mark(ierr.ErrSystem)
	}

	p.logger.Debugw("published fee event",
		"event_id", event.ID,
		"event_name", event.EventName,
		"order_id", event.OrderID,
		"topic", topic,
	)
	return nil
}
