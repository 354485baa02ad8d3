package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
	"github.com/streammon/control/auth"
	"github.com/streammon/control/errors"
	"github.com/streammon/control/forms"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	user, err := s.verifier.Verify(r.Context(), username, password)
	if err == errors.ErrInvalidCredentials {
		writeError(w, http.StatusUnauthorized, "the authentication info you specified was invalid")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "store unreachable")
		return
	}

	token, err := auth.EncodeJwt(auth.SessionClaims{
		Username: user.Username,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}, s.jwtKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not establish session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	logrus.WithField("username", user.Username).Info("login success")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reader.Dashboard(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "store unreachable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"streams": rows})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.ParseInt(v, 10, 64)
	}

	alerts, err := s.reader.AlertHistory(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, "store unreachable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"alerts": alerts})
}

func (s *Server) handleListStreams(w http.ResponseWriter, r *http.Request) {
	streams, err := s.streams.List(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "store unreachable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"streams": streams})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "store unreachable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (s *Server) handleModifyStreams(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}

	rows := forms.StreamRows(r.PostForm)

	result, err := s.streams.Reconcile(r.Context(), rows)
	if err != nil {
		writeError(w, http.StatusBadGateway, "store unreachable")
		return
	}

	s.refresh(w)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleModifyUsers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}

	rows := forms.UserRows(r.PostForm)

	result, err := s.users.Reconcile(r.Context(), rows)
	if err != nil {
		writeError(w, http.StatusBadGateway, "store unreachable")
		return
	}

	s.refresh(w)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	for name, p := range s.pingers {
		if err := p.Ping(r.Context()); err != nil {
			logrus.WithError(err).WithField("service", name).Error("health check failed")
			writeError(w, http.StatusBadGateway, name+" unreachable")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// refresh instructs the client to reload the dashboard after the fixed
// delay, once workers have had a window to react to the restart signal.
func (s *Server) refresh(w http.ResponseWriter) {
	w.Header().Set("Refresh", fmt.Sprintf("%d; url=/", RefreshSeconds))
}
