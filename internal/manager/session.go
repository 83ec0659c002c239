package manager

import (
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
)

const sessionKey = "manager_session"

// Session is the shared-PIN manager authentication with a short validity
// window. The window expires passively through the cache TTL; nothing has to
// be cancelled.
type Session struct {
	pinHash  []byte
	validity time.Duration
	sessions *cache.Cache
}

// NewSession creates a Session. pinHash is a bcrypt hash of the shared
// manager PIN.
func NewSession(pinHash string, validity time.Duration) *Session {
	return &Session{
		pinHash:  []byte(pinHash),
		validity: validity,
		sessions: cache.New(validity, time.Minute),
	}
}

// Authenticate checks the PIN and, on success, opens a validity window.
func (s *Session) Authenticate(pin string) bool {
	if bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)) != nil {
		return false
	}
	s.sessions.Set(sessionKey, time.Now(), s.validity)
	return true
}

// IsValid reports whether a non-expired authentication window exists.
func (s *Session) IsValid() bool {
	_, ok := s.sessions.Get(sessionKey)
	return ok
}

// Remaining returns how long the current window stays valid, zero when none.
func (s *Session) Remaining() time.Duration {
	_, expiry, ok := s.sessions.GetWithExpiration(sessionKey)
	if !ok {
		return 0
	}
	remaining := time.Until(expiry)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Invalidate closes the window early, e.g. when the manager dialog is
// dismissed.
func (s *Session) Invalidate() {
	s.sessions.Delete(sessionKey)
}
