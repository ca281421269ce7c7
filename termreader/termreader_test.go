package termreader

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvsnack/rvterm/inputbus"
)

func drain(t *testing.T, bus *inputbus.Bus, n int) []inputbus.Event {
	t.Helper()
	events := make([]inputbus.Event, 0, n)
	for i := 0; i < n; i++ {
		ev, ok := bus.Receive(time.Second)
		require.True(t, ok)
		events = append(events, ev)
	}
	return events
}

func TestReaderForwardsKeys(t *testing.T) {
	bus := inputbus.New()
	New(strings.NewReader("ab\r"), bus).Run()

	events := drain(t, bus, 3)
	assert.Equal(t, inputbus.Key{Code: inputbus.KeyRune, Rune: 'a'}, events[0])
	assert.Equal(t, inputbus.Key{Code: inputbus.KeyRune, Rune: 'b'}, events[1])
	assert.Equal(t, inputbus.Key{Code: inputbus.KeyEnter}, events[2])
}

func TestReaderBackspaceVariants(t *testing.T) {
	bus := inputbus.New()
	New(strings.NewReader("\x7f\x08"), bus).Run()

	events := drain(t, bus, 2)
	assert.Equal(t, inputbus.Key{Code: inputbus.KeyBackspace}, events[0])
	assert.Equal(t, inputbus.Key{Code: inputbus.KeyBackspace}, events[1])
}

func TestReaderDropsEscapeSequences(t *testing.T) {
	bus := inputbus.New()
	// Up arrow (CSI A), F1 (SS3 P), then a plain rune.
	New(strings.NewReader("\x1b[A\x1bOPx"), bus).Run()

	events := drain(t, bus, 1)
	assert.Equal(t, inputbus.Key{Code: inputbus.KeyRune, Rune: 'x'}, events[0])

	_, ok := bus.Receive(10 * time.Millisecond)
	assert.False(t, ok, "escape sequences must not produce events")
}

func TestReaderUTF8(t *testing.T) {
	bus := inputbus.New()
	New(strings.NewReader("ä"), bus).Run()

	events := drain(t, bus, 1)
	assert.Equal(t, inputbus.Key{Code: inputbus.KeyRune, Rune: 'ä'}, events[0])
}
