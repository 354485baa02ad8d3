package web

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/streammon/control/auth"
)

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "login required")
			return
		}

		claims := auth.SessionClaims{}
		if err := auth.DecodeJwt(&claims, s.jwtKey, cookie.Value); err != nil {
			writeError(w, http.StatusUnauthorized, "session invalid")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
