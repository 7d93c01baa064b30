package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/Simplici0/quote.works/internal/quote"
)

const sessionCookieName = "quote_session"

type ctxKey int

const sessionCtxKey ctxKey = iota

// sessionCookies signs and verifies the cookie that binds a browser to a quote session.
type sessionCookies struct {
	secret []byte
}

func newSessionCookies(secret string) *sessionCookies {
	return &sessionCookies{secret: []byte(secret)}
}

func (c *sessionCookies) sign(payload string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(payload))
	return mac.Sum(nil)
}

func (c *sessionCookies) encode(sessionID string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(sessionID))
	return payload + "." + hex.EncodeToString(c.sign(payload))
}

func (c *sessionCookies) decode(value string) (string, bool) {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok || strings.Contains(signature, ".") {
		return "", false
	}

	provided, err := hex.DecodeString(signature)
	if err != nil || !hmac.Equal(provided, c.sign(payload)) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil || len(decoded) == 0 {
		return "", false
	}
	return string(decoded), true
}

func (c *sessionCookies) set(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    c.encode(sessionID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *sessionCookies) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionID returns the verified session id carried by r, if any.
func (c *sessionCookies) sessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}
	return c.decode(cookie.Value)
}

// sessionMiddleware resolves the quote session for the request or answers 401.
func (s *server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.cookies.sessionID(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "no quote session; POST /quote to start one")
			return
		}

		session, ok := s.store.Get(id)
		if !ok {
			s.cookies.clear(w)
			writeError(w, http.StatusUnauthorized, "quote session expired")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionCtxKey, session)))
	})
}

func sessionFrom(r *http.Request) *quote.Session {
	session, _ := r.Context().Value(sessionCtxKey).(*quote.Session)
	return session
}
