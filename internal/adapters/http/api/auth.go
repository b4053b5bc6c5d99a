package api

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/tgoode/weekendcup/pkg/logger"
)

// sessionCookie is the cookie carrying the signed admin session token.
const sessionCookie = "auth_token"

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// rateLimited throttles a handler per client IP using the configured rate.
// Exceeding the rate yields 429 without touching the wrapped handler.
func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(s.loginRate)
	if err != nil {
		rate = limiter.Rate{Period: time.Minute, Limit: 10}
	}
	lim := limiter.New(memory.NewStore(), rate, limiter.WithTrustForwardHeader(false))

	return func(w http.ResponseWriter, r *http.Request) {
		lctx, err := lim.Get(r.Context(), lim.GetIPKey(r))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal", nil)
			return
		}
		if lctx.Reached {
			writeError(w, http.StatusTooManyRequests, "rate_limited", nil)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// handleLogin handles POST /login. A successful login sets the session
// cookie; the token itself never appears in the response body.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if len(s.jwtKey) == 0 {
		writeError(w, http.StatusServiceUnavailable, "no_signing_key", ErrNoSigningKey)
		return
	}

	var req loginRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if err := s.deps.Authenticate(r.Context(), req.Username, req.Password); err != nil {
		s.logger.Warn(r.Context(), "login rejected", logger.String("username", req.Username))
		writeError(w, http.StatusUnauthorized, "unauthorized", ErrUnauthorized)
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   req.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogout handles POST /logout by expiring the session cookie.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireAdmin rejects requests without a valid session token.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(s.jwtKey) == 0 {
			writeError(w, http.StatusServiceUnavailable, "no_signing_key", ErrNoSigningKey)
			return
		}
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", ErrUnauthorized)
			return
		}
		token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.jwtKey, nil
		})
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "unauthorized", ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
