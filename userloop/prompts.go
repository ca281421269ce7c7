package userloop

import (
	"strings"
	"time"

	"github.com/rvsnack/rvterm/inputbus"
)

// flowResult is the outcome every flow and prompt step funnels into: the
// step completed, its wait timed out, or (for the menus) the principal
// was logged out by a scan.
type flowResult int

const (
	flowDone flowResult = iota
	flowTimeout
	flowLogout
)

// readLine collects an edited, echoed line from the bus. The boolean is
// false exactly when timeout expired before the terminator.
func (c *Controller) readLine(timeout time.Duration) (string, bool) {
	return c.readLineInternal(true, timeout)
}

// readPassword is readLine without echo.
func (c *Controller) readPassword(timeout time.Duration) (string, bool) {
	return c.readLineInternal(false, timeout)
}

func (c *Controller) readLineInternal(echo bool, timeout time.Duration) (string, bool) {
	var buf []rune
	for {
		ev, ok := c.bus.Receive(timeout)
		if !ok {
			c.screen.Line("")
			return "", false
		}
		key, ok := ev.(inputbus.Key)
		if !ok {
			// Scans and resizes do not belong to a line prompt.
			continue
		}
		switch key.Code {
		case inputbus.KeyRune:
			buf = append(buf, key.Rune)
			if echo {
				c.screen.Echo(key.Rune)
			}
		case inputbus.KeyBackspace:
			if len(buf) > 0 {
				if echo {
					c.screen.Backspace()
				}
				buf = buf[:len(buf)-1]
			}
		case inputbus.KeyEnter:
			c.screen.Line("")
			return strings.TrimSpace(string(buf)), true
		}
	}
}

type confirmResult int

const (
	confirmYes confirmResult = iota
	confirmNo
	confirmTimeout
)

// confirm waits for a y/n answer; any other key is ignored.
func (c *Controller) confirm() confirmResult {
	for {
		ev, ok := c.bus.Receive(c.cfg.ShortTimeout)
		if !ok {
			return confirmTimeout
		}
		if key, ok := ev.(inputbus.Key); ok && key.Code == inputbus.KeyRune {
			switch key.Rune {
			case 'y', 'Y':
				return confirmYes
			case 'n', 'N':
				return confirmNo
			}
		}
	}
}

// confirmEnter blocks until Enter, so a result stays on screen until the
// user acknowledges it.
func (c *Controller) confirmEnter() {
	c.screen.Line("Press ENTER to continue")
	for {
		ev, ok := c.bus.Receive(c.cfg.ShortTimeout)
		if !ok {
			return
		}
		if key, ok := ev.(inputbus.Key); ok && key.Code == inputbus.KeyEnter {
			return
		}
	}
}

// pause keeps an abort message visible before the screen moves on.
func (c *Controller) pause() {
	time.Sleep(c.cfg.AbortPause)
}

func (c *Controller) timedOut() flowResult {
	c.screen.Line("Timed out!")
	c.pause()
	return flowTimeout
}
