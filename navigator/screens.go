package navigator

// Screen names a navigable surface of the app.
type Screen string

const (
	ScreenHome     Screen = "home"
	ScreenLogin    Screen = "login"
	ScreenRegister Screen = "register"

	// Any authenticated user
	ScreenQueries       Screen = "queries"
	ScreenAppointments  Screen = "appointments"
	ScreenComments      Screen = "comments"
	ScreenAnnouncements Screen = "announcements"
	ScreenProfileEdit   Screen = "profile-edit"

	// Owner administration
	ScreenClients      Screen = "clients"
	ScreenClientsByDay Screen = "clients-by-day"
	ScreenServices     Screen = "services"

	// Owner or professional
	ScreenClientsByProfessional Screen = "clients-by-professional"

	// Professional
	ScreenAppointmentsToRender Screen = "appointments-to-render"

	// Secretary or owner
	ScreenPaymentsList Screen = "payments-list"
)

// ScreenSet is the set of screens reachable in a given session state.
type ScreenSet map[Screen]struct{}

func (s ScreenSet) Contains(screen Screen) bool {
	_, ok := s[screen]
	return ok
}

func (s ScreenSet) add(screens ...Screen) {
	for _, screen := range screens {
		s[screen] = struct{}{}
	}
}
