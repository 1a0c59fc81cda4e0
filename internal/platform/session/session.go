// Package session implements server-side sessions backed by Redis.
//
// The browser cookie carries only an opaque UUID; the session record itself
// lives under "session:<id>" with a TTL, so logout and expiry are enforced
// server side.
package session

import "time"

// CookieName is the name of the session cookie.
const CookieName = "session_id"

// Flash is a one-shot message queued in the session and drained on the next
// page render.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the server-side session record.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Flashes   []Flash   `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AddFlash queues a one-shot message.
func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// TakeFlashes drains and returns the queued messages.
func (s *Session) TakeFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}
