package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Pub/Sub for projectID using application default credentials.
func New(ctx context.Context, projectID string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return NewWithClient(pubSubC), nil
}

// NewWithClient wraps an existing Pub/Sub client.
func NewWithClient(c *pubsub.Client) PubSubClient {
	return &client{
		client: c,
		topics: make(map[string]*pubsub.Topic),
	}
}

func (c *client) topic(name string) *pubsub.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.topics[name]
	if !ok {
		t = c.client.Topic(name)
		c.topics[name] = t
	}
	return t
}

// SendMessage encodes data with MessagePack and blocks until the server acknowledges it.
func (c *client) SendMessage(ctx context.Context, topic string, data any) error {
	msgpackData, err := Encode(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	result := c.topic(topic).Publish(ctx, &pubsub.Message{Data: msgpackData})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "topic", topic)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

// Close flushes pending publishes and closes the connection.
func (c *client) Close() error {
	c.mu.Lock()
	for _, t := range c.topics {
		t.Stop()
	}
	c.mu.Unlock()
	return c.client.Close()
}

// Encode marshals v into a MessagePack payload.
func Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode unmarshals a MessagePack payload into the provided pointer.
func Decode(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}
