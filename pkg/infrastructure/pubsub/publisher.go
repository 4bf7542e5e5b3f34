package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"cloud.google.com/go/pubsub"
	"github.com/cloudevents/sdk-go/v2/event"

	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
)

// PubSubAdapter provides message publishing using Google Cloud Pub/Sub
type PubSubAdapter struct {
	Client *pubsub.Client
}

func (a *PubSubAdapter) PublishCloudEvent(ctx context.Context, topicID string, e event.Event) (string, error) {
	bytes, err := json.Marshal(e)
	if err != nil {
		slog.Error("Failed to marshal CloudEvent", "topic", topicID, "error", err)
		return "", apperrors.Wrap(err, apperrors.CodePubSubError, "failed to marshal cloudevent")
	}
	slog.Info("Publishing CloudEvent",
		"topic", topicID,
		"event_type", e.Type(),
		"event_id", e.ID(),
		"source", e.Source(),
		"size_bytes", len(bytes))
	return a.publishWithAttrs(ctx, topicID, bytes, ceAttributes(e))
}

func (a *PubSubAdapter) publishWithAttrs(ctx context.Context, topicID string, data []byte, attributes map[string]string) (string, error) {
	topic := a.Client.Topic(topicID)
	defer topic.Stop()

	msg := &pubsub.Message{
		Data: data,
	}
	if attributes != nil {
		msg.Attributes = attributes
	}
	res := topic.Publish(ctx, msg)
	msgID, err := res.Get(ctx)
	if err != nil {
		slog.Error("Failed to publish message", "topic", topicID, "error", err)
		return "", apperrors.WrapRetryable(err, apperrors.CodePubSubError, "failed to publish message").
			WithMetadata("topic", topicID)
	}
	slog.Info("Message published successfully", "topic", topicID, "message_id", msgID, "size_bytes", len(data))
	return msgID, nil
}

// ceAttributes mirrors the routing-relevant CloudEvent context onto
// message attributes so subscriptions can filter without decoding.
func ceAttributes(e event.Event) map[string]string {
	attrs := map[string]string{
		"ce-type":   e.Type(),
		"ce-source": e.Source(),
		"ce-id":     e.ID(),
	}
	if s := e.Subject(); s != "" {
		attrs["ce-subject"] = s
	}
	return attrs
}

// LogPublisher is a mock publisher for local development
type LogPublisher struct{}

func (p *LogPublisher) PublishCloudEvent(ctx context.Context, topicID string, e event.Event) (string, error) {
	bytes, err := json.Marshal(e)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodePubSubError, "failed to marshal cloudevent")
	}
	return p.publishWithAttrs(ctx, topicID, bytes, ceAttributes(e))
}

func (p *LogPublisher) publishWithAttrs(ctx context.Context, topicID string, data []byte, attributes map[string]string) (string, error) {
	slog.Info("MOCK PUBLISH", "topic", topicID, "data", string(data), "attributes", attributes)
	return "mock-msg-id", nil
}
