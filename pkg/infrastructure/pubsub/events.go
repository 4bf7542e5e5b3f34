package pubsub

import (
	"encoding/json"
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/google/uuid"

	"github.com/fitfuel/fitfuel-server/pkg/types"
)

// NewCloudEvent creates a standardized CloudEvent v1.0 with a fresh ID.
func NewCloudEvent(source, eventType, subject string, data interface{}) (cloudevents.Event, error) {
	e := cloudevents.NewEvent()
	e.SetSpecVersion(cloudevents.VersionV1)
	e.SetID(uuid.NewString())
	e.SetType(eventType)
	e.SetSource(source)
	e.SetTime(time.Now().UTC())
	if subject != "" {
		e.SetSubject(subject)
	}

	if err := e.SetData(cloudevents.ApplicationJSON, data); err != nil {
		return e, err
	}
	if err := e.Validate(); err != nil {
		return e, err
	}

	return e, nil
}

// UnwrapPubSubEvent returns the structured CloudEvent carried inside a
// Pub/Sub push envelope, as PubSubAdapter publishes it. ok is false when e
// is not an envelope or its message is not a CloudEvent.
func UnwrapPubSubEvent(e event.Event) (inner event.Event, ok bool) {
	data, ok := messageData(e)
	if !ok {
		return e, false
	}

	var probe struct {
		SpecVersion string `json:"specversion"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || probe.SpecVersion == "" {
		return e, false
	}

	inner = cloudevents.NewEvent()
	if err := json.Unmarshal(data, &inner); err != nil {
		return e, false
	}
	return inner, true
}

// DecodeEventData decodes the business payload of e into dst. It accepts a
// CloudEvent carrying the payload directly, a Pub/Sub envelope around a
// structured CloudEvent, or a Pub/Sub envelope around the bare JSON payload
// (as gcloud or tests publish).
func DecodeEventData(e event.Event, dst interface{}) error {
	if inner, ok := UnwrapPubSubEvent(e); ok {
		e = inner
	}

	if data, ok := messageData(e); ok {
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("json unmarshal: %w", err)
		}
		return nil
	}

	if len(e.Data()) == 0 {
		return fmt.Errorf("event %s has no data", e.ID())
	}
	if err := e.DataAs(dst); err != nil {
		return fmt.Errorf("event.DataAs: %w", err)
	}
	return nil
}

// messageData returns the message body of a Pub/Sub push envelope.
func messageData(e event.Event) ([]byte, bool) {
	if len(e.Data()) == 0 {
		return nil, false
	}
	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err != nil || len(msg.Message.Data) == 0 {
		return nil, false
	}
	return msg.Message.Data, true
}
