package scansession

import (
	"testing"
	"time"

	"github.com/kenshaw/evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvsnack/rvterm/inputbus"
)

func recvScan(t *testing.T, bus *inputbus.Bus) inputbus.Scan {
	t.Helper()
	ev, ok := bus.Receive(time.Second)
	require.True(t, ok)
	scan, ok := ev.(inputbus.Scan)
	require.True(t, ok)
	return scan
}

func TestDecodeEmitsOnEnter(t *testing.T) {
	bus := inputbus.New()
	s := &Session{bus: bus}

	for _, k := range []evdev.KeyType{evdev.KeyA, evdev.Key1, evdev.KeyB, evdev.Key2} {
		s.handleKey(k)
	}
	s.handleKey(evdev.KeyEnter)

	assert.Equal(t, "a1b2", recvScan(t, bus).Code)
	assert.Empty(t, s.buf, "buffer must reset after a terminator")
}

func TestDecodeBufferResetsBetweenScans(t *testing.T) {
	bus := inputbus.New()
	s := &Session{bus: bus}

	s.handleKey(evdev.Key4)
	s.handleKey(evdev.Key2)
	s.handleKey(evdev.KeyEnter)
	s.handleKey(evdev.Key7)
	s.handleKey(evdev.KeyEnter)

	assert.Equal(t, "42", recvScan(t, bus).Code)
	assert.Equal(t, "7", recvScan(t, bus).Code)
}

func TestDecodeIgnoresUnmappedKeys(t *testing.T) {
	bus := inputbus.New()
	s := &Session{bus: bus}

	s.handleKey(evdev.Key3)
	s.handleKey(evdev.KeyG)
	s.handleKey(evdev.KeySpace)
	s.handleKey(evdev.KeyLeftShift)
	s.handleKey(evdev.Key9)
	s.handleKey(evdev.KeyEnter)

	assert.Equal(t, "39", recvScan(t, bus).Code)
}

func TestDecodeEmptyScan(t *testing.T) {
	bus := inputbus.New()
	s := &Session{bus: bus}

	// No shape validation here: Enter with nothing buffered still emits.
	s.handleKey(evdev.KeyEnter)
	assert.Equal(t, "", recvScan(t, bus).Code)
}

func TestDecodeAlphabetComplete(t *testing.T) {
	bus := inputbus.New()
	s := &Session{bus: bus}

	for _, k := range []evdev.KeyType{
		evdev.Key0, evdev.Key1, evdev.Key2, evdev.Key3, evdev.Key4,
		evdev.Key5, evdev.Key6, evdev.Key7, evdev.Key8, evdev.Key9,
		evdev.KeyA, evdev.KeyB, evdev.KeyC, evdev.KeyD, evdev.KeyE, evdev.KeyF,
	} {
		s.handleKey(k)
	}
	s.handleKey(evdev.KeyEnter)

	assert.Equal(t, "0123456789abcdef", recvScan(t, bus).Code)
}
