package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusPublishReachesSubscribers(t *testing.T) {
	b := NewBus()

	var got []string
	b.Subscribe(TopicAuthError, func(ev Event) { got = append(got, ev.Topic) })
	b.Subscribe(TopicSessionEnded, func(ev Event) { got = append(got, ev.Topic) })

	b.Publish(TopicAuthError)
	require.Equal(t, []string{TopicAuthError}, got)

	b.Publish(TopicSessionEnded)
	require.Equal(t, []string{TopicAuthError, TopicSessionEnded}, got)
}

func TestBusCancelStopsDelivery(t *testing.T) {
	b := NewBus()

	count := 0
	cancel := b.Subscribe(TopicAuthError, func(Event) { count++ })

	b.Publish(TopicAuthError)
	cancel()
	b.Publish(TopicAuthError)

	require.Equal(t, 1, count)
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	b := NewBus()
	require.NotPanics(t, func() { b.Publish(TopicSessionEnded) })
}
