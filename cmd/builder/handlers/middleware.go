package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/hairizuan-noorazman/scenario-builder/editor"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/session"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// SessionKey is the context key for the editor session.
const SessionKey ContextKey = "session"

// SessionMiddleware attaches an editor session to every request. Requests
// without a valid signed cookie get a fresh session and a new cookie.
type SessionMiddleware struct {
	manager      *session.Manager
	secureCookie *securecookie.SecureCookie
	cookieName   string
	cookieSecure bool
	logger       logger.Logger
}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware(manager *session.Manager, cookieSecret, cookieName string, cookieSecure bool, log logger.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		manager:      manager,
		secureCookie: securecookie.New([]byte(cookieSecret), nil),
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
		logger:       log,
	}
}

// Handler wraps an HTTP handler with session resolution.
func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.existing(r)
		if sess == nil {
			sess = m.manager.Create(r.Context())
			if err := m.setCookie(w, sess.ID); err != nil {
				m.logger.Error(r.Context(), "failed to encode session cookie", map[string]interface{}{
					"error": err.Error(),
				})
				respondError(w, http.StatusInternalServerError, "failed to create session")
				return
			}
		}

		ctx := context.WithValue(r.Context(), SessionKey, sess)
		ctx = logger.ContextWithFields(ctx, map[string]interface{}{
			"session_id": sess.ID,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionMiddleware) existing(r *http.Request) *session.Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil
	}

	var sessionID string
	if err := m.secureCookie.Decode(m.cookieName, cookie.Value, &sessionID); err != nil {
		m.logger.Warn(r.Context(), "invalid session cookie", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	sess, err := m.manager.Get(sessionID)
	if err != nil {
		m.logger.Info(r.Context(), "session not usable, starting a new one", map[string]interface{}{
			"error":      err.Error(),
			"session_id": sessionID,
		})
		return nil
	}
	return sess
}

func (m *SessionMiddleware) setCookie(w http.ResponseWriter, sessionID string) error {
	encoded, err := m.secureCookie.Encode(m.cookieName, sessionID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// GetSession extracts the editor session from the request context.
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*session.Session)
	return sess, ok
}

// editorOrRespond returns the session's editor, or writes an error when the
// request did not pass through the session middleware.
func editorOrRespond(w http.ResponseWriter, r *http.Request) (*editor.Editor, bool) {
	sess, ok := GetSession(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "no editor session")
		return nil, false
	}
	return sess.Editor, true
}
