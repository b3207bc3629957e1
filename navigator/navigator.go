package navigator

import (
	"sync"

	"github.com/rs/zerolog/log"
	errs "github.com/sentirsebien/go-client/internal/errors"
	"github.com/sentirsebien/go-client/session"
)

// SessionState is the slice of session the navigator reads. The controller
// satisfies it.
type SessionState interface {
	IsAuthenticated() bool
	Roles() session.RoleFlags
}

// Reachable derives the screen set from the session state. It is a pure
// function: same state, same set.
func Reachable(state SessionState) ScreenSet {
	screens := ScreenSet{}
	screens.add(ScreenHome)

	if !state.IsAuthenticated() {
		screens.add(ScreenLogin, ScreenRegister)
		return screens
	}

	screens.add(ScreenQueries, ScreenAppointments, ScreenComments, ScreenAnnouncements, ScreenProfileEdit)

	roles := state.Roles()
	if roles.IsOwner {
		screens.add(ScreenClients, ScreenClientsByDay, ScreenServices)
	}
	if roles.IsOwner || roles.IsProfessional {
		screens.add(ScreenClientsByProfessional)
	}
	if roles.IsProfessional {
		screens.add(ScreenAppointmentsToRender)
	}
	if roles.IsSecretary || roles.IsOwner {
		screens.add(ScreenPaymentsList)
	}
	return screens
}

// Navigator tracks the current screen and enforces reachability centrally:
// screens never re-implement the role check. A navigation attempt to an
// unreachable screen lands on Home and reports ErrScreenNotReachable.
type Navigator struct {
	state SessionState

	mu      sync.Mutex
	current Screen
}

func New(state SessionState) *Navigator {
	return &Navigator{state: state, current: ScreenHome}
}

// Go navigates to target and returns the screen actually shown.
func (n *Navigator) Go(target Screen) (Screen, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !Reachable(n.state).Contains(target) {
		n.current = ScreenHome
		log.Debug().Str("screen", string(target)).Msg("navigation rejected")
		return ScreenHome, errs.Wrapf(errs.ErrScreenNotReachable, "%s", target)
	}
	n.current = target
	return target, nil
}

func (n *Navigator) Current() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
