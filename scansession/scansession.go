// Package scansession turns the keystroke-shaped event stream of one card
// reader device into completed credential strings on the input bus.
package scansession

import (
	"context"

	"github.com/kenshaw/evdev"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/rvsnack/rvterm/inputbus"
)

// scanRunes maps the reader's scancode alphabet to characters. Everything
// outside this map (and Enter) leaves the buffer untouched.
var scanRunes = map[evdev.KeyType]rune{
	evdev.Key0: '0',
	evdev.Key1: '1',
	evdev.Key2: '2',
	evdev.Key3: '3',
	evdev.Key4: '4',
	evdev.Key5: '5',
	evdev.Key6: '6',
	evdev.Key7: '7',
	evdev.Key8: '8',
	evdev.Key9: '9',
	evdev.KeyA: 'a',
	evdev.KeyB: 'b',
	evdev.KeyC: 'c',
	evdev.KeyD: 'd',
	evdev.KeyE: 'e',
	evdev.KeyF: 'f',
}

// Session owns one opened reader device for its whole lifetime. It holds
// the device exclusively, so the decoded keystrokes never reach the
// foreground terminal. The single exit condition is a failed read, which
// is how a detached reader manifests; reconnection is the watcher's job.
type Session struct {
	dev *evdev.Evdev
	bus *inputbus.Bus
	buf []rune
}

func New(dev *evdev.Evdev, bus *inputbus.Bus) *Session {
	return &Session{dev: dev, bus: bus}
}

// Run captures the device and decodes events until the device goes away
// or ctx is cancelled. The returned error is informational: every return
// is terminal for this session and the device handle is closed.
func (s *Session) Run(ctx context.Context) error {
	defer s.dev.Close()

	if err := s.dev.Lock(); err != nil {
		return errors.Wrapf(err, "exclusive capture of %s failed", s.dev.Name())
	}
	defer s.dev.Unlock()

	log.Info().Str("device", s.dev.Name()).Msg("scanner session started")

	ch := s.dev.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-ch:
			if event == nil {
				// Read failed, the reader is gone.
				log.Info().Str("device", s.dev.Name()).Msg("scanner session ended")
				return errors.New("device closed")
			}

			switch event.Type.(type) {
			case evdev.KeyType:
				if event.Value != 0 {
					// Presses and auto-repeats would double characters;
					// only the release transition counts.
					continue
				}
				s.handleKey(evdev.KeyType(event.Code))
			}
		}
	}
}

func (s *Session) handleKey(k evdev.KeyType) {
	if k == evdev.KeyEnter {
		s.bus.Send(inputbus.Scan{Code: string(s.buf)})
		s.buf = s.buf[:0]
		return
	}
	if r, ok := scanRunes[k]; ok {
		s.buf = append(s.buf, r)
	}
}
