package event

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishInRegistrationOrder(t *testing.T) {
	bus := NewBus[int]()

	var got []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		_, err := bus.Subscribe("tick", func(n int) {
			got = append(got, name)
			assert.Equal(t, 7, n)
		})
		require.NoError(t, err)
	}

	bus.Publish("tick", 7)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestBus_PublishWithoutHandlers(t *testing.T) {
	bus := NewBus[string]()
	assert.NotPanics(t, func() { bus.Publish("nothing", "x") })
}

func TestBus_NilHandler(t *testing.T) {
	bus := NewBus[int]()

	_, err := bus.Subscribe("tick", nil)
	assert.ErrorIs(t, err, ErrNilHandler)

	_, err = bus.SubscribeOnce("tick", nil)
	assert.ErrorIs(t, err, ErrNilHandler)

	assert.Equal(t, 0, bus.Len("tick"))
}

func TestBus_SubscribeOnce(t *testing.T) {
	bus := NewBus[int]()

	var once, always int
	_, err := bus.SubscribeOnce("tick", func(int) { once++ })
	require.NoError(t, err)
	_, err = bus.Subscribe("tick", func(int) { always++ })
	require.NoError(t, err)

	bus.Publish("tick", 0)
	assert.Equal(t, 1, bus.Len("tick"))

	bus.Publish("tick", 0)
	bus.Publish("tick", 0)

	assert.Equal(t, 1, once)
	assert.Equal(t, 3, always)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus[int]()

	var a, b int
	subA, err := bus.Subscribe("tick", func(int) { a++ })
	require.NoError(t, err)
	_, err = bus.Subscribe("tick", func(int) { b++ })
	require.NoError(t, err)

	assert.Equal(t, "tick", subA.Name())
	assert.True(t, bus.Unsubscribe(subA))
	assert.False(t, bus.Unsubscribe(subA))

	bus.Publish("tick", 0)
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}

func TestBus_UnsubscribeAll(t *testing.T) {
	bus := NewBus[int]()

	for _, name := range []string{"iteration", "iteration", "end"} {
		_, err := bus.Subscribe(name, func(int) {})
		require.NoError(t, err)
	}

	bus.UnsubscribeAll("iteration")
	assert.Equal(t, 0, bus.Len("iteration"))
	assert.Equal(t, 1, bus.Len("end"))

	_, err := bus.Subscribe("iteration", func(int) {})
	require.NoError(t, err)

	bus.UnsubscribeAll(Wildcard)
	assert.Equal(t, 0, bus.Len("iteration"))
	assert.Equal(t, 0, bus.Len("end"))
}

func TestBus_HandlerMayUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus[int]()

	var sub Subscription
	calls := 0
	sub, err := bus.Subscribe("tick", func(int) {
		calls++
		bus.Unsubscribe(sub)
	})
	require.NoError(t, err)

	bus.Publish("tick", 0)
	bus.Publish("tick", 0)
	assert.Equal(t, 1, calls)
}

func TestBus_HandlerSubscribingDuringPublishRunsNextTime(t *testing.T) {
	bus := NewBus[int]()

	late := 0
	_, err := bus.SubscribeOnce("tick", func(int) {
		_, err := bus.Subscribe("tick", func(int) { late++ })
		require.NoError(t, err)
	})
	require.NoError(t, err)

	bus.Publish("tick", 0)
	assert.Equal(t, 0, late)

	bus.Publish("tick", 0)
	assert.Equal(t, 1, late)
}

func TestBus_Concurrent(t *testing.T) {
	bus := NewBus[int]()

	var mu sync.Mutex
	total := 0
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := bus.Subscribe("tick", func(n int) {
				mu.Lock()
				total += n
				mu.Unlock()
			})
			assert.NoError(t, err)
			bus.Publish("other", 1)
		}()
	}
	wg.Wait()

	bus.Publish("tick", 1)
	assert.Equal(t, 8, total)
}

func TestBus_SubscribeOnceWithConcurrentPublish(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		bus := NewBus[int]()

		var calls atomic.Int32
		gate := make(chan struct{})
		_, err := bus.SubscribeOnce("tick", func(int) {
			calls.Add(1)
			<-gate
		})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				bus.Publish("tick", 0)
			}()
		}

		time.Sleep(time.Millisecond)
		close(gate)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, 0, bus.Len("tick"))
	}
}

func TestBus_OnceRemovedBeforeHandlerRuns(t *testing.T) {
	bus := NewBus[int]()

	var during int
	_, err := bus.SubscribeOnce("tick", func(int) { during = bus.Len("tick") })
	require.NoError(t, err)
	_, err = bus.Subscribe("tick", func(int) {})
	require.NoError(t, err)

	bus.Publish("tick", 0)
	assert.Equal(t, 1, during)
	assert.Equal(t, 1, bus.Len("tick"))
}
