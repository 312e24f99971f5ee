package domain

import "time"

// SessionSnapshot is the durable record of an authenticated session: the
// opaque token and the serialized user are written together on login and
// removed together on logout. A user exists in memory if and only if a
// snapshot exists for its token.
type SessionSnapshot struct {
	Token    string    `json:"token"`
	User     User      `json:"user"`
	IssuedAt time.Time `json:"issued_at"`
}
