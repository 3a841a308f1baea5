package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kekambas-blog/internal/pkg/jwtutil"
)

// Manager binds browser cookies to server-side session records. The cookie
// carries only a signed token with the session ID; tampering with it just
// yields a fresh anonymous session.
type Manager struct {
	store      Store
	secret     string
	cookieName string
	ttl        time.Duration
}

func NewManager(store Store, secret, cookieName string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Manager{
		store:      store,
		secret:     secret,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

// Current is the per-request view of one session. Mutations are buffered
// and written back once by Commit at the end of the request.
type Current struct {
	manager *Manager
	sid     string
	data    *Data
	dirty   bool
}

// Load resolves the request's session, creating a fresh anonymous one (and
// setting its cookie) when the cookie is missing, invalid, or expired.
func (m *Manager) Load(c *gin.Context) *Current {
	if token, err := c.Cookie(m.cookieName); err == nil {
		if claims, err := jwtutil.ParseToken(m.secret, token); err == nil {
			data, err := m.store.Get(c.Request.Context(), claims.SessionID)
			if err == nil && data != nil {
				return &Current{manager: m, sid: claims.SessionID, data: data}
			}
		}
	}
	return m.create(c)
}

func (m *Manager) create(c *gin.Context) *Current {
	sid := uuid.NewString()
	current := &Current{manager: m, sid: sid, data: &Data{}, dirty: true}

	token, err := jwtutil.GenerateToken(m.secret, m.ttl, sid)
	if err != nil {
		// Without a signed cookie the session cannot outlive the request;
		// it still serves the current one.
		return current
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.ttl.Seconds()), "/", "", false, true)
	return current
}

func (s *Current) UserID() uint {
	return s.data.UserID
}

func (s *Current) Username() string {
	return s.data.Username
}

func (s *Current) LoggedIn() bool {
	return s.data.LoggedIn()
}

// SetIdentity binds a user to the session on login.
func (s *Current) SetIdentity(userID uint, username string) {
	s.data.UserID = userID
	s.data.Username = username
	s.dirty = true
}

// ClearIdentity unbinds the user on logout. The session record stays alive
// so the logout flash survives the redirect; Redis TTL reaps it later.
func (s *Current) ClearIdentity() {
	s.data.UserID = 0
	s.data.Username = ""
	s.dirty = true
}

func (s *Current) Flash(category, message string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Category: category, Message: message})
	s.dirty = true
}

// PopFlashes returns pending flashes and clears them.
func (s *Current) PopFlashes() []Flash {
	if len(s.data.Flashes) == 0 {
		return nil
	}
	flashes := s.data.Flashes
	s.data.Flashes = nil
	s.dirty = true
	return flashes
}

// Commit writes buffered mutations back to the store.
func (s *Current) Commit(c *gin.Context) error {
	if !s.dirty {
		return nil
	}
	if err := s.manager.store.Save(c.Request.Context(), s.sid, s.data); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
