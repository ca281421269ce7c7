// Package termreader forwards raw terminal input onto the input bus: one
// key event per physical keystroke, plus resize notifications. It never
// interprets input; editing and echo belong to the consumer.
package termreader

import (
	"bufio"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"github.com/rvsnack/rvterm/inputbus"
)

type Reader struct {
	in  io.Reader
	bus *inputbus.Bus
}

func New(in io.Reader, bus *inputbus.Bus) *Reader {
	return &Reader{in: in, bus: bus}
}

// Run blocks reading keystrokes for the process lifetime. It returns only
// when the input stream ends, which for a real tty it never does.
func (r *Reader) Run() {
	br := bufio.NewReader(r.in)
	for {
		ru, _, err := br.ReadRune()
		if err != nil {
			log.Debug().Err(err).Msg("terminal input closed")
			return
		}

		switch {
		case ru == '\r' || ru == '\n':
			r.bus.Send(inputbus.Key{Code: inputbus.KeyEnter})
		case ru == 0x7f || ru == 0x08:
			r.bus.Send(inputbus.Key{Code: inputbus.KeyBackspace})
		case ru == 0x1b:
			discardEscape(br)
		case ru >= 0x20:
			r.bus.Send(inputbus.Key{Code: inputbus.KeyRune, Rune: ru})
		}
	}
}

// discardEscape swallows one CSI/SS3 sequence. Arrow keys and friends are
// not part of any prompt here, so they are dropped rather than forwarded.
func discardEscape(br *bufio.Reader) {
	b, err := br.ReadByte()
	if err != nil {
		return
	}
	switch b {
	case '[':
		for {
			b, err = br.ReadByte()
			if err != nil || (b >= 0x40 && b <= 0x7e) {
				return
			}
		}
	case 'O':
		br.ReadByte()
	default:
		br.UnreadByte()
	}
}

// WatchResize forwards SIGWINCH as Resize events until ch delivery stops.
// The controller ignores them; they exist so the bus carries every raw
// terminal event the way the reader boundary promises.
func WatchResize(bus *inputbus.Bus) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	go func() {
		for range ch {
			cols, rows := 0, 0
			if ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ); err == nil {
				cols, rows = int(ws.Col), int(ws.Row)
			}
			bus.Send(inputbus.Resize{Cols: cols, Rows: rows})
		}
	}()
}
