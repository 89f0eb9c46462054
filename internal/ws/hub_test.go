package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriberInOrder(t *testing.T) {
	hub := NewHub()
	client := hub.Subscribe("location:u1")
	defer hub.Unsubscribe(client)

	for i := 0; i < 10; i++ {
		hub.Publish("location:u1", map[string]int{"seq": i})
	}

	for i := 0; i < 10; i++ {
		var got map[string]int
		require.NoError(t, json.Unmarshal(<-client.C, &got))
		assert.Equal(t, i, got["seq"])
	}
}

func TestPublishToOtherTopicIsNotDelivered(t *testing.T) {
	hub := NewHub()
	client := hub.Subscribe("location:u1")
	defer hub.Unsubscribe(client)

	hub.Publish("location:u2", "nope")

	select {
	case msg := <-client.C:
		t.Fatalf("unexpected message: %s", msg)
	default:
	}
}

func TestMultipleSubscribersAllReceive(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("division:7")
	b := hub.Subscribe("division:7")
	defer hub.Unsubscribe(a)
	defer hub.Unsubscribe(b)

	hub.Publish("division:7", map[string]string{"user_id": "u1"})

	assert.JSONEq(t, `{"user_id":"u1"}`, string(<-a.C))
	assert.JSONEq(t, `{"user_id":"u1"}`, string(<-b.C))
}

func TestUnsubscribeClosesChannelAndDropsTopic(t *testing.T) {
	hub := NewHub()
	client := hub.Subscribe("chat:a_b")
	hub.Unsubscribe(client)

	_, open := <-client.C
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers("chat:a_b"))

	// Publishing to a dead topic must not panic.
	hub.Publish("chat:a_b", "late")
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()
	client := hub.Subscribe("location:u1")
	defer hub.Unsubscribe(client)

	// Overflow the buffer without reading; Publish must stay non-blocking.
	for i := 0; i < sendBuffer*2; i++ {
		hub.Publish("location:u1", i)
	}
	assert.Len(t, client.C, sendBuffer)
}

func TestChatTopicIsSymmetric(t *testing.T) {
	assert.Equal(t, ChatTopic("a", "b"), ChatTopic("b", "a"))
	assert.Equal(t, "chat:a_b", ChatTopic("b", "a"))
}
