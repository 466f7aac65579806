package eventbus_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/anprojects/anproyektim/pkg/eventbus"
)

type importFinished struct {
	Created int
	Updated int
}

func TestEventBus_PublishAndSubscribe(t *testing.T) {
	bus := eventbus.NewEventPublisher(logrus.New())

	var got *importFinished
	handler := func(ev *importFinished) {
		got = ev
	}
	bus.Subscribe(handler)
	assert.Equal(t, 1, bus.SubscribersCount())

	bus.Publish(&importFinished{Created: 3, Updated: 1})
	if assert.NotNil(t, got) {
		assert.Equal(t, 3, got.Created)
		assert.Equal(t, 1, got.Updated)
	}

	bus.Unsubscribe(handler)
	assert.Equal(t, 0, bus.SubscribersCount())
}

func TestEventBus_PanickingHandlerDoesNotPropagate(t *testing.T) {
	bus := eventbus.NewEventPublisher(logrus.New())
	bus.Subscribe(func(ev *importFinished) {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		bus.Publish(&importFinished{})
	})
}

func TestMatchSignature(t *testing.T) {
	t.Run("Exact_Type", func(t *testing.T) {
		assert.True(t, eventbus.MatchSignature(func(*importFinished) {}, []interface{}{&importFinished{}}))
	})

	t.Run("Arity_Mismatch", func(t *testing.T) {
		assert.False(t, eventbus.MatchSignature(func(*importFinished) {}, []interface{}{&importFinished{}, 1}))
	})

	t.Run("Not_A_Func", func(t *testing.T) {
		assert.False(t, eventbus.MatchSignature(42, []interface{}{&importFinished{}}))
	})
}
