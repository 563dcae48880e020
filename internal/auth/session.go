package auth

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"socialfeed/internal/config"
)

const (
	sessionName   = "socialfeed_session"
	sessionUserID = "user_id"
)

func NewSessionStore(cfg config.SecurityConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.SessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	return store
}

// StartSession records userID in the session cookie.
func StartSession(store sessions.Store, w http.ResponseWriter, r *http.Request, userID uint) error {
	session, _ := store.Get(r, sessionName)
	session.Values[sessionUserID] = userID
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// EndSession expires the session cookie.
func EndSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, _ := store.Get(r, sessionName)
	delete(session.Values, sessionUserID)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func sessionUser(store sessions.Store, r *http.Request) (uint, bool) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return 0, false
	}
	id, ok := session.Values[sessionUserID].(uint)
	return id, ok && id != 0
}
