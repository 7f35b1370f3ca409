package pubsub

import (
	"sync"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client *pubsub.Client

	mu     sync.Mutex
	topics map[string]*pubsub.Topic
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventResultRecorded EventType = "result-recorded"
)

// ResultRecorded is published after a test result is stored.
// It carries the derived metrics so subscribers do not need to read the database.
type ResultRecorded struct {
	ResultID      string  `msgpack:"result_id"`
	PlayerID      string  `msgpack:"player_id"`
	PlayerName    string  `msgpack:"player_name"`
	AgeGroup      string  `msgpack:"age_group"`
	TestID        string  `msgpack:"test_id"`
	TestName      string  `msgpack:"test_name"`
	DateConducted string  `msgpack:"date_conducted"`
	TotalScore    int     `msgpack:"total_score"`
	AverageScore  float64 `msgpack:"average_score"`
	Category      string  `msgpack:"category"`
	Balanced      bool    `msgpack:"balanced"`
	RecordedAt    int64   `msgpack:"recorded_at"`
}

// PushRequest is the body Pub/Sub sends to a push subscription endpoint.
// encoding/json decodes the base64 data field into Message.Data.
type PushRequest struct {
	Message struct {
		Data       []byte            `json:"data"`
		ID         string            `json:"messageId"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
