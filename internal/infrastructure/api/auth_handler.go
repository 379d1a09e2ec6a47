package api

import (
	"embed"
	"html/template"
	"net/http"

	"boardgame-catalog-api/internal/application"
	"boardgame-catalog-api/internal/domain"
	"boardgame-catalog-api/internal/infrastructure/middleware"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StateCookie carries the OAuth state token between /login and the callback
const StateCookie = "oauth_state"

const stateMaxAge = 600

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// AuthHandler serves the login handshake and the session pages
type AuthHandler struct {
	auth        *application.AuthService
	cookie      middleware.SessionCookie
	landingPath string
	failurePath string
	logger      zerolog.Logger
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(
	auth *application.AuthService,
	cookie middleware.SessionCookie,
	landingPath string,
	failurePath string,
	logger zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		cookie:      cookie,
		landingPath: landingPath,
		failurePath: failurePath,
		logger:      logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Login redirects to the identity provider
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     StateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   stateMaxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.auth.LoginURL(state), http.StatusFound)
}

// Callback completes the handshake. Every failure lands on the failure page.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	h.clearState(w)

	if providerErr := query.Get("error"); providerErr != "" {
		h.logger.Warn().Str("error", providerErr).Msg("Provider denied login")
		h.fail(w, r)
		return
	}

	stateCookie, err := r.Cookie(StateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != query.Get("state") {
		h.logger.Warn().Msg("OAuth state mismatch")
		h.fail(w, r)
		return
	}

	code := query.Get("code")
	if code == "" {
		h.logger.Warn().Msg("Callback without authorization code")
		h.fail(w, r)
		return
	}

	session, err := h.auth.CompleteLogin(r.Context(), code)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Login failed")
		h.fail(w, r)
		return
	}

	h.cookie.Write(w, session.ID)
	http.Redirect(w, r, h.landingPath, http.StatusFound)
}

// Logout destroys the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := h.cookie.Read(r)
	if err := h.auth.Logout(r.Context(), sessionID); err != nil {
		h.logger.Error().Err(err).Msg("Failed to destroy session")
	}

	h.cookie.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Status reports whether the caller is logged in
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if identity := domain.IdentityFromContext(r.Context()); identity != nil {
		w.Write([]byte("Logged in as " + identity.DisplayName))
		return
	}
	w.Write([]byte("Logged Out"))
}

// Secrets renders the protected page. It must sit behind the auth gate.
func (h *AuthHandler) Secrets(w http.ResponseWriter, r *http.Request) {
	identity := domain.IdentityFromContext(r.Context())
	if identity == nil {
		writeMessage(w, http.StatusUnauthorized, "You must be logged in to access this resource.")
		return
	}

	h.render(w, "secrets.html", map[string]string{
		"DisplayName": identity.DisplayName,
		"Email":       identity.PrimaryEmail(),
	})
}

// Failure renders the login failure page
func (h *AuthHandler) Failure(w http.ResponseWriter, r *http.Request) {
	h.render(w, "failure.html", nil)
}

func (h *AuthHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("Failed to render page")
	}
}

func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.failurePath, http.StatusFound)
}

func (h *AuthHandler) clearState(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
