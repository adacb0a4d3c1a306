package domain

// Identity is the persisted part of a session that names who is logged in.
// Its JSON form is the second of the two stored session entries.
type Identity struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Session is the client's record of the currently authenticated identity and
// bearer credential. A session is either fully present or fully absent; no
// partial session is ever handed to a page.
type Session struct {
	Identity
	Token string `json:"-"`
}

// Anonymous is the zero session used whenever no valid session exists.
var Anonymous = Session{}

// Authenticated reports whether the session is fully present: identity and
// token populated, role one of the known roles.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.UserID != 0 && s.Username != "" && s.Role.Valid()
}
