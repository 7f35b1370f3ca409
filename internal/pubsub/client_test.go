package pubsub

import (
	"encoding/json"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func TestSendMessage_PublishesMsgpack(t *testing.T) {
	ctx := t.Context()
	srv := pstest.NewServer()
	defer srv.Close()

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	psc, err := pubsub.NewClient(ctx, "test-project", option.WithGRPCConn(conn))
	require.NoError(t, err)
	_, err = psc.CreateTopic(ctx, string(EventResultRecorded))
	require.NoError(t, err)

	c := NewWithClient(psc)
	defer c.Close()

	event := ResultRecorded{ResultID: "r1", PlayerName: "Ana", TotalScore: 30, AverageScore: 7.5, Category: "good"}
	require.NoError(t, c.SendMessage(ctx, string(EventResultRecorded), event))

	msgs := srv.Messages()
	require.Len(t, msgs, 1)

	var got ResultRecorded
	require.NoError(t, c.ProcessMessage(msgs[0].Data, &got))
	assert.Equal(t, event, got)
}

func TestPushRequestDecodesBase64Data(t *testing.T) {
	payload, err := Encode(ResultRecorded{ResultID: "r9", TestName: "Spring"})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"message":      map[string]any{"data": payload, "messageId": "m1"},
		"subscription": "projects/p/subscriptions/s",
	})
	require.NoError(t, err)

	var push PushRequest
	require.NoError(t, json.Unmarshal(body, &push))
	assert.Equal(t, "m1", push.Message.ID)

	var event ResultRecorded
	require.NoError(t, Decode(push.Message.Data, &event))
	assert.Equal(t, "r9", event.ResultID)
	assert.Equal(t, "Spring", event.TestName)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var event ResultRecorded
	assert.Error(t, Decode([]byte{0xc1}, &event))
}

func TestMockRecordsCalls(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.SendMessage(t.Context(), "topic", 1))
	require.Len(t, m.Sent(), 1)
	assert.Equal(t, "topic", m.Sent()[0].Topic)
	m.Reset()
	assert.Empty(t, m.Sent())
}
