package users

import "strings"

// Profile is the server's record for a user. Read-only from the client's
// perspective apart from the self-service update endpoint; the four role
// booleans drive which screens the navigator exposes.
type Profile struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	CUIT           string `json:"cuit,omitempty"`
	Email          string `json:"email"`
	IsOwner        bool   `json:"is_owner"`
	IsProfessional bool   `json:"is_professional"`
	IsSecretary    bool   `json:"is_secretary"`
	IsStaff        bool   `json:"is_staff"`
}

func (p *Profile) FullName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Username
	}
	return name
}

// Registration is the payload for creating an account. ConfirmPassword is
// checked server-side as well, but Validate catches the mismatch before a
// round trip.
type Registration struct {
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	CUIT            string `json:"cuit"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Update is the self-service profile edit payload. Password is omitted when
// empty so the server keeps the current one.
type Update struct {
	CUIT      string `json:"cuit"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
}
