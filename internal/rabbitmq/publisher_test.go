package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

type testMsg struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestPublishMessage(t *testing.T) {
	t.Run("json persistent message", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("Publish", "notifications", "renewal", false, false, mock.MatchedBy(func(p amqp.Publishing) bool {
			var got testMsg
			return json.Unmarshal(p.Body, &got) == nil &&
				got == testMsg{ID: 1, Name: "Hello"} &&
				p.ContentType == "application/json" &&
				p.DeliveryMode == amqp.Persistent
		})).Return(nil).Once()

		require.NoError(t, PublishMessage(ch, "notifications", "renewal", testMsg{ID: 1, Name: "Hello"}))
		ch.AssertExpectations(t)
	})

	t.Run("marshal error", func(t *testing.T) {
		ch := new(MockChannel)
		badMsg := struct {
			Ch chan int `json:"ch"`
		}{
			Ch: make(chan int),
		}

		err := PublishMessage(ch, "", "q", badMsg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
		ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("broker error", func(t *testing.T) {
		ch := new(MockChannel)
		brokerErr := errors.New("channel closed")
		ch.On("Publish", mock.Anything, mock.Anything, false, false, mock.Anything).Return(brokerErr).Once()

		err := PublishMessage(ch, "notifications", "renewal", testMsg{})
		require.ErrorIs(t, err, brokerErr)
	})
}

func TestPublisher_Publish(t *testing.T) {
	ch := new(MockChannel)
	ch.On("Publish", NotificationsExchange, RenewalRoutingKey, false, false, mock.Anything).Return(nil).Once()
	p := NewPublisher(ch, NotificationsExchange)

	require.NoError(t, p.Publish(context.Background(), RenewalRoutingKey, testMsg{ID: 2}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Publish(ctx, RenewalRoutingKey, testMsg{ID: 3}), context.Canceled)
	ch.AssertExpectations(t)
}

func TestRenewalQueues(t *testing.T) {
	queues := RenewalQueues()

	require.Len(t, queues, 1)
	assert.Equal(t, "renewal", queues[0].QueueName)
	assert.Equal(t, RenewalRoutingKey, queues[0].RoutingKey)
}
