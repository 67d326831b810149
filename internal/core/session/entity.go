package session

import "encoding/json"

// StorageKey is the fixed key the session record is persisted under
const StorageKey = "user-storage"

// Session actions reported to metrics
const (
	ActionSetUser        = "set_user"
	ActionClearUser      = "clear_user"
	ActionUpdateUsername = "update_username"
	ActionUpdateJWT      = "update_jwt"
	ActionLoad           = "load"
)

// Session is the locally persisted record of who is logged in.
// Username and JWT are nil when unset so the stored JSON keeps its nulls.
type Session struct {
	Username        *string `json:"username"`
	JWT             *string `json:"jwt"`
	IsAuthenticated bool    `json:"isAuthenticated"`
}

// Default returns the unauthenticated session
func Default() Session {
	return Session{}
}

// UsernameValue returns the username or "" when unset
func (s Session) UsernameValue() string {
	if s.Username == nil {
		return ""
	}
	return *s.Username
}

// JWTValue returns the token or "" when unset
func (s Session) JWTValue() string {
	if s.JWT == nil {
		return ""
	}
	return *s.JWT
}

// IsConsistent reports whether an authenticated session carries a token
func (s Session) IsConsistent() bool {
	return !s.IsAuthenticated || s.JWTValue() != ""
}

func (s Session) clone() Session {
	out := Session{IsAuthenticated: s.IsAuthenticated}
	if s.Username != nil {
		out.Username = stringPtr(*s.Username)
	}
	if s.JWT != nil {
		out.JWT = stringPtr(*s.JWT)
	}
	return out
}

func encode(s Session) ([]byte, error) {
	return json.Marshal(s)
}

func decode(data []byte) (Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func stringPtr(v string) *string {
	return &v
}
