// Package userloop is the sole consumer of the input bus: the login /
// menu / sub-flow state machine of the terminal, with per-prompt
// timeouts and scan-login preemption.
package userloop

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/rvsnack/rvterm/console"
	"github.com/rvsnack/rvterm/inputbus"
	"github.com/rvsnack/rvterm/rvapi"
)

const rvLogo = " ______     __\r\n" +
	"|  _ \\ \\   / /\r\n" +
	"| |_) \\ \\ / / \r\n" +
	"|  _ < \\ V /  \r\n" +
	"|_| \\_\\ \\_/   \r\n" +
	"\r\n"

// Backend is everything the controller needs from the commerce service.
// rvapi.Client is the production implementation; tests substitute stubs.
type Backend interface {
	Login(username, password string) (*rvapi.Credentials, error)
	LoginScan(code string) (*rvapi.Credentials, error)
	UserExists(username string) (bool, error)
	Register(username, password, fullName, email string) error
	UserInfo(creds *rvapi.Credentials) (*rvapi.UserInfo, error)
	UserByUsername(creds *rvapi.Credentials, username string) (*rvapi.UserInfo, error)
	ChangePassword(creds *rvapi.Credentials, password string) error
	ChangePasswordAdmin(creds *rvapi.Credentials, userID int, password string) error
	ChangeScanCode(creds *rvapi.Credentials, code string) error
	Deposit(creds *rvapi.Credentials, amount int, method string) error
	ProductInfo(creds *rvapi.Credentials, barcode string) (*rvapi.Product, error)
	ProductInfoAdmin(creds *rvapi.Credentials, barcode string) (*rvapi.ProductAdmin, error)
	BoxInfo(creds *rvapi.Credentials, barcode string) (*rvapi.Box, error)
	SearchProducts(creds *rvapi.Credentials, query string) ([]rvapi.Product, error)
	SearchBoxes(creds *rvapi.Credentials, query string) ([]rvapi.Box, error)
	Purchase(creds *rvapi.Credentials, barcode string, count int) error
	ReturnProduct(creds *rvapi.Credentials, barcode string) error
	AddProduct(creds *rvapi.Credentials, barcode, name string, categoryID, buyPrice, sellPrice, stock int) error
	UpdateProduct(creds *rvapi.Credentials, barcode, name string, categoryID, buyPrice, sellPrice, stock int) error
	AddBox(creds *rvapi.Credentials, boxBarcode, productBarcode string, itemsPerBox int) error
	UpdateBox(creds *rvapi.Credentials, boxBarcode string, itemsPerBox int, productBarcode string) error
	BuyInProduct(creds *rvapi.Credentials, barcode string, buyPrice, sellPrice, count int) error
	BuyInBox(creds *rvapi.Credentials, barcode string, productBuyPrice, productSellPrice, boxCount int) error
	Margin(creds *rvapi.Credentials) (float64, error)
	Categories(creds *rvapi.Credentials) ([]rvapi.Category, error)
}

var _ Backend = (*rvapi.Client)(nil)

// Config is constructed once at startup and injected; the controller
// reads nothing from the environment itself.
type Config struct {
	ShortTimeout time.Duration
	LongTimeout  time.Duration
	AbortPause   time.Duration
	Development  bool

	// Exit runs for the "exit" menu command and must not return. The
	// bootstrap supplies terminal restore + os.Exit.
	Exit func()
}

func DefaultConfig() Config {
	return Config{
		ShortTimeout: 60 * time.Second,
		LongTimeout:  5 * time.Minute,
		AbortPause:   2 * time.Second,
	}
}

type Controller struct {
	cfg     Config
	bus     *inputbus.Bus
	screen  *console.Screen
	backend Backend
	states  *stateTracker
}

func New(cfg Config, bus *inputbus.Bus, screen *console.Screen, backend Backend) *Controller {
	return &Controller{
		cfg:     cfg,
		bus:     bus,
		screen:  screen,
		backend: backend,
		states:  newStateTracker(),
	}
}

// fatal is the end of the line for transport and protocol failures; the
// flows only ever recover from *rvapi.APIError.
func (c *Controller) fatal(err error) {
	log.Fatal().Err(err).Msg("backend failure")
}

func (c *Controller) userInfo(creds *rvapi.Credentials) *rvapi.UserInfo {
	info, err := c.backend.UserInfo(creds)
	if err != nil {
		c.fatal(err)
	}
	return info
}

// Run is the top-level loop: AwaitingUsername and everything below it.
// It returns only in development mode via the "quit" username.
func (c *Controller) Run() error {
	for {
		c.screen.Clear()
		c.screen.MoveBottom()
		c.screen.Print("enter username: ")

		username, preempted := c.awaitUsername()
		if preempted {
			continue
		}

		if c.cfg.Development && username == "quit" {
			return nil
		}

		exists, err := c.backend.UserExists(username)
		if err != nil {
			c.fatal(err)
		}
		if !exists {
			c.states.fire(evRegister)
			c.register(username)
			c.states.fire(evLoggedOut)
			continue
		}

		c.states.fire(evPasswordPrompt)
		c.screen.Print("\r\nenter password: ")
		password, res := c.awaitPassword()
		switch res {
		case flowTimeout:
			c.states.fire(evLoggedOut)
			continue
		case flowLogout:
			// Scan-login already unwound the state machine.
			continue
		}

		creds, err := c.backend.Login(username, password)
		if err != nil {
			if _, ok := rvapi.IsAPIError(err); ok {
				c.screen.Line("error: invalid username or password!")
				c.pause()
				c.states.fire(evLoggedOut)
				continue
			}
			c.fatal(err)
		}
		c.states.fire(evAuthenticated)
		c.userMenu(creds)
		c.states.fire(evLoggedOut)
	}
}

// awaitUsername reads the echoed username buffer. There is no timeout
// here: an idle terminal rests in this state. A scan preempts the typed
// buffer entirely; preempted=true means the caller should restart the
// top loop regardless of what the scan led to.
func (c *Controller) awaitUsername() (username string, preempted bool) {
	var buf []rune
	for {
		switch ev := c.bus.ReceiveBlocking().(type) {
		case inputbus.Scan:
			c.scanLogin(ev.Code)
			return "", true
		case inputbus.Key:
			switch ev.Code {
			case inputbus.KeyRune:
				buf = append(buf, ev.Rune)
				c.screen.Echo(ev.Rune)
			case inputbus.KeyBackspace:
				if len(buf) > 0 {
					c.screen.Backspace()
					buf = buf[:len(buf)-1]
				}
			case inputbus.KeyEnter:
				if len(buf) > 0 {
					return string(buf), false
				}
			}
		}
	}
}

// awaitPassword mirrors awaitUsername without echo and with the short
// timeout. flowLogout reports a scan preemption here too.
func (c *Controller) awaitPassword() (password string, res flowResult) {
	var buf []rune
	for {
		ev, ok := c.bus.Receive(c.cfg.ShortTimeout)
		if !ok {
			return "", c.timedOut()
		}
		switch ev := ev.(type) {
		case inputbus.Scan:
			if !c.scanLogin(ev.Code) {
				// No session ran; leave the password state ourselves.
				c.states.fire(evLoggedOut)
			}
			return "", flowLogout
		case inputbus.Key:
			switch ev.Code {
			case inputbus.KeyRune:
				buf = append(buf, ev.Rune)
			case inputbus.KeyBackspace:
				if len(buf) > 0 {
					buf = buf[:len(buf)-1]
				}
			case inputbus.KeyEnter:
				return string(buf), flowDone
			}
		}
	}
}

// scanLogin attempts card authentication with the scanned code. Any
// partially typed buffer the caller held is gone for good; a failed scan
// never falls back to interpreting the code as typed input. It reports
// whether a session ran, in which case the state machine has already
// returned to stateAwaitingUsername.
func (c *Controller) scanLogin(code string) bool {
	creds, err := c.backend.LoginScan(code)
	switch {
	case err == nil:
		c.states.fire(evAuthenticated)
		c.userMenu(creds)
		c.states.fire(evLoggedOut)
		return true
	case errors.Is(err, rvapi.ErrNoMatch):
		c.screen.Line("No matching users found for scanned code")
		c.pause()
		return false
	default:
		c.fatal(err)
		return false
	}
}
