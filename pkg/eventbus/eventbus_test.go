package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishInSubscriptionOrder(t *testing.T) {
	bus := New[string]()

	var got []string
	bus.Subscribe(func(e string) { got = append(got, "a:"+e) })
	bus.Subscribe(func(e string) { got = append(got, "b:"+e) })

	bus.Publish("x")

	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New[int]()

	calls := 0
	unsubscribe := bus.Subscribe(func(int) { calls++ })
	bus.Publish(1)

	unsubscribe()
	unsubscribe()
	bus.Publish(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestBus_HandlerMayUnsubscribeItself(t *testing.T) {
	bus := New[int]()

	calls := 0
	var unsubscribe func()
	unsubscribe = bus.Subscribe(func(int) {
		calls++
		unsubscribe()
	})

	bus.Publish(1)
	bus.Publish(2)

	assert.Equal(t, 1, calls)
}
