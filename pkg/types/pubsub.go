package types

// PubSubMessage is the envelope Pub/Sub wraps around a message when it is
// delivered to a function as a CloudEvent.
type PubSubMessage struct {
	Message struct {
		ID         string            `json:"messageId"`
		Data       []byte            `json:"data"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
