package inputbus

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInOrder(t *testing.T) {
	bus := New()
	bus.Send(Key{Code: KeyRune, Rune: 'a'})
	bus.Send(Key{Code: KeyEnter})
	bus.Send(Scan{Code: "a1b2"})

	ev, ok := bus.Receive(time.Second)
	require.True(t, ok)
	assert.Equal(t, Key{Code: KeyRune, Rune: 'a'}, ev)

	ev, ok = bus.Receive(time.Second)
	require.True(t, ok)
	assert.Equal(t, Key{Code: KeyEnter}, ev)

	ev, ok = bus.Receive(time.Second)
	require.True(t, ok)
	assert.Equal(t, Scan{Code: "a1b2"}, ev)
}

func TestBusTimeout(t *testing.T) {
	bus := New()

	start := time.Now()
	ev, ok := bus.Receive(20 * time.Millisecond)
	assert.False(t, ok)
	assert.Nil(t, ev)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	// A timed-out wait must not consume an event sent afterwards.
	bus.Send(Key{Code: KeyEnter})
	ev, ok = bus.Receive(time.Second)
	require.True(t, ok)
	assert.Equal(t, Key{Code: KeyEnter}, ev)
}

func TestBusPerProducerOrder(t *testing.T) {
	bus := New()
	const perProducer = 100

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				bus.Send(Scan{Code: fmt.Sprintf("%d:%d", p, i)})
			}
		}(p)
	}
	wg.Wait()

	last := map[string]int{"0": -1, "1": -1, "2": -1, "3": -1}
	for i := 0; i < 4*perProducer; i++ {
		ev, ok := bus.Receive(time.Second)
		require.True(t, ok)
		var p, n int
		_, err := fmt.Sscanf(ev.(Scan).Code, "%d:%d", &p, &n)
		require.NoError(t, err)
		key := fmt.Sprintf("%d", p)
		assert.Greater(t, n, last[key], "producer %d out of order", p)
		last[key] = n
	}
}

func TestBusQueuesWhileConsumerAway(t *testing.T) {
	bus := New()
	for i := 0; i < 10; i++ {
		bus.Send(Key{Code: KeyRune, Rune: rune('0' + i)})
	}
	for i := 0; i < 10; i++ {
		ev := bus.ReceiveBlocking()
		assert.Equal(t, Key{Code: KeyRune, Rune: rune('0' + i)}, ev)
	}
}
