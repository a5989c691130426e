package adapthttp

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nearbyconnect/internal/app"
	"nearbyconnect/internal/domain"
)

const sessionCookieName = "token"

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// setSessionCookie delivers the signed token. SameSite=None permits
// cross-site delivery, which the Secure flag then restricts to HTTPS.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(app.SessionTTL.Seconds()),
	})
}

// clearSessionCookie must repeat the exact name, path and flags used at
// issuance; a mismatch leaves the cookie set in the browser.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   -1,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email and password required"})
		return
	}

	err := s.creds.Register(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Email already registered."})
	case err != nil:
		s.logger.Error().Err(err).Msg("register failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error"})
	default:
		writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	acct, err := s.creds.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, app.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("login failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		return
	}

	token, err := s.gate.Issue(strconv.FormatInt(acct.ID, 10))
	if err != nil {
		s.logger.Error().Err(err).Msg("token issue failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	subject, err := s.gate.Verify(cookie.Value)
	if err != nil {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Invalid token"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "userId": subject})
}

// handleLogout clears the cookie client-side. The token itself stays
// cryptographically valid until expiry; see SessionGate.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
