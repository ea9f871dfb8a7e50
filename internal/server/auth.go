package server

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"

	"github.com/docuveil/docuveil/internal/faults"
)

// requireAuth validates a bearer JWT signed with the configured secret.
// With no secret configured the API is open.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	secret := s.cfg.Server.AuthToken
	if secret == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.unauthorized(w, "missing bearer token")
			return
		}
		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, faults.New(faults.InvalidInput, "unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid {
			s.unauthorized(w, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) unauthorized(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnauthorized, errorEnvelope{
		ErrorKind: faults.InvalidInput,
		Message:   message,
	})
}
