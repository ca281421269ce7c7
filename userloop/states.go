package userloop

import (
	"github.com/looplab/fsm"
	"github.com/rs/zerolog/log"
)

const (
	stateAwaitingUsername = "stateAwaitingUsername"
	stateRegistration     = "stateRegistration"
	stateAwaitingPassword = "stateAwaitingPassword"
	stateMenu             = "stateMenu"
	stateManagement       = "stateManagement"
)

const (
	evRegister        = "evRegister"
	evPasswordPrompt  = "evPasswordPrompt"
	evAuthenticated   = "evAuthenticated"
	evEnterManagement = "evEnterManagement"
	evLeaveManagement = "evLeaveManagement"
	evLoggedOut       = "evLoggedOut"
)

// stateTracker follows the controller through its top-level states. The
// flows themselves stay procedural; the tracker exists so every
// transition is validated and logged in one place.
type stateTracker struct {
	fsm *fsm.FSM
}

func newStateTracker() *stateTracker {
	states := fsm.NewFSM(
		stateAwaitingUsername,
		fsm.Events{
			{Name: evRegister, Src: []string{stateAwaitingUsername}, Dst: stateRegistration},
			{Name: evPasswordPrompt, Src: []string{stateAwaitingUsername}, Dst: stateAwaitingPassword},
			{Name: evAuthenticated, Src: []string{stateAwaitingUsername, stateAwaitingPassword}, Dst: stateMenu},
			{Name: evEnterManagement, Src: []string{stateMenu}, Dst: stateManagement},
			{Name: evLeaveManagement, Src: []string{stateManagement}, Dst: stateMenu},
			{Name: evLoggedOut, Src: []string{stateRegistration, stateAwaitingPassword, stateMenu, stateManagement}, Dst: stateAwaitingUsername},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				log.Debug().Str("old", e.Src).Str("event", e.Event).Str("new", e.Dst).Msg("transitioning state")
			},
		},
	)
	return &stateTracker{fsm: states}
}

func (t *stateTracker) fire(event string) {
	if err := t.fsm.Event(event); err != nil {
		log.Warn().Err(err).Str("event", event).Str("state", t.fsm.Current()).Msg("invalid state transition")
	}
}
