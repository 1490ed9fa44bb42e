// Package server exposes the form endpoints of the workshop application.
package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"glassworks/internal/app"
	"glassworks/internal/ratelimit"
	"glassworks/internal/util"
	"glassworks/pkg/domain"
)

const sessionCookieName = "session"

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App

	// Renderer is the rendering collaborator; defaults to JSONRenderer.
	Renderer Renderer

	// LoginLimiter throttles login attempts per client IP; nil disables
	// throttling.
	LoginLimiter *ratelimit.FixedWindowLimiter
}

// Server handles login and the single-page workshop forms.
type Server struct {
	app          *app.App
	renderer     Renderer
	loginLimiter *ratelimit.FixedWindowLimiter
	mux          *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = JSONRenderer{}
	}
	s := &Server{
		app:          cfg.App,
		renderer:     renderer,
		loginLimiter: cfg.LoginLimiter,
		mux:          http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler wrapped in the shared middleware.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(util.WithSecurityHeaders(s.mux)))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.Handle("/logout", s.authenticated(s.handleLogout))
	s.mux.Handle("/index", s.authenticated(s.handleIndex))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// auth wrappers
type authHandler func(http.ResponseWriter, *http.Request, domain.User)

// authenticated resolves the session cookie and redirects to the login
// page instead of executing the protected handler when it is invalid.
func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.app.RequireAuth(sessionToken(r))
		if err != nil {
			s.audit(r, "session.verify", "fail")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r, user)
	})
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// login page
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.renderer.RenderLogin(w, LoginView{Notices: popFlashes(w, r)})
	case http.MethodPost:
		s.handleLogin(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.Allow(clientIP(r)) {
		s.audit(r, "login", "fail", "reason", "rate_limited")
		setFlash(w, "Too many login attempts, try again later")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		setFlash(w, "Invalid Credentials")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	user, token, err := s.app.Login(r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			s.audit(r, "login", "fail", "reason", "invalid_credentials")
			setFlash(w, "Invalid Credentials")
		} else {
			s.audit(r, "login", "fail", "reason", err.Error())
			setFlash(w, "Login is unavailable right now")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.audit(r, "login", "success", "user_id", user.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if err := s.app.Logout(sessionToken(r)); err != nil {
		util.LoggerFromContext(r.Context()).Error("logout failed", "err", err, "user_id", user.ID)
	}
	s.audit(r, "logout", "success", "user_id", user.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// the single workshop page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		s.renderIndex(w, r, user)
	case http.MethodPost:
		s.handleIndexForm(w, r, user)
	default:
		methodNotAllowed(w)
	}
}

// handleIndexForm dispatches on which form fields are present: a job
// card submission carries "length", an item carries "rate", a party
// carries only "name".
func (s *Server) handleIndexForm(w http.ResponseWriter, r *http.Request, user domain.User) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "Invalid form submission")
		http.Redirect(w, r, "/index", http.StatusSeeOther)
		return
	}
	form := r.PostForm
	switch {
	case form.Has("length"):
		s.createJobCard(w, r, form)
	case form.Has("rate"):
		s.createItem(w, r, form)
	case form.Has("name"):
		s.createParty(w, r, form)
	default:
		s.renderIndex(w, r, user)
	}
}

func (s *Server) createParty(w http.ResponseWriter, r *http.Request, form url.Values) {
	_, err := s.app.CreateParty(form.Get("name"), form.Get("contact"))
	s.finishCreate(w, r, err, "Party added successfully")
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request, form url.Values) {
	rate, err := floatField(form, "rate", true, 0)
	if err == nil {
		_, err = s.app.CreateItem(form.Get("name"), rate)
	}
	s.finishCreate(w, r, err, "Item added successfully")
}

func (s *Server) createJobCard(w http.ResponseWriter, r *http.Request, form url.Values) {
	in, err := jobCardInput(form)
	if err == nil {
		_, err = s.app.CreateJobCard(in)
	}
	s.finishCreate(w, r, err, "Job Card Created")
}

// finishCreate flashes either the success notice or the failure reason
// and sends the browser back to the index page.
func (s *Server) finishCreate(w http.ResponseWriter, r *http.Request, err error, successNotice string) {
	switch {
	case err == nil:
		setFlash(w, successNotice)
	case isValidationError(err):
		setFlash(w, err.Error())
	default:
		util.LoggerFromContext(r.Context()).Error("create failed", "err", err)
		setFlash(w, "Could not save the record, please retry")
	}
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, user domain.User) {
	overview, err := s.app.Overview()
	if err != nil {
		util.LoggerFromContext(r.Context()).Error("overview failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.renderer.RenderIndex(w, IndexView{
		User:     user,
		Notices:  popFlashes(w, r),
		Parties:  overview.Parties,
		Items:    overview.Items,
		JobCards: overview.JobCards,
	})
}

// form field parsing

func jobCardInput(form url.Values) (app.JobCardInput, error) {
	partyID, err := idField(form, "party")
	if err != nil {
		return app.JobCardInput{}, err
	}
	itemID, err := idField(form, "item")
	if err != nil {
		return app.JobCardInput{}, err
	}
	length, err := floatField(form, "length", true, 0)
	if err != nil {
		return app.JobCardInput{}, err
	}
	width, err := floatField(form, "width", true, 0)
	if err != nil {
		return app.JobCardInput{}, err
	}
	holes, err := intField(form, "holes", 0)
	if err != nil {
		return app.JobCardInput{}, err
	}
	bigHoles, err := intField(form, "big_holes", 0)
	if err != nil {
		return app.JobCardInput{}, err
	}
	addCharges, err := floatField(form, "add_charges", false, 0)
	if err != nil {
		return app.JobCardInput{}, err
	}
	return app.JobCardInput{
		PartyID:    partyID,
		ItemID:     itemID,
		Length:     length,
		Width:      width,
		Holes:      holes,
		BigHoles:   bigHoles,
		AddCharges: addCharges,
	}, nil
}

func idField(form url.Values, field string) (int64, error) {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		return 0, &app.ValidationError{Reason: field + " is required"}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &app.ValidationError{Reason: fmt.Sprintf("%s must be a record id, got %q", field, raw)}
	}
	return id, nil
}

func floatField(form url.Values, field string, required bool, def float64) (float64, error) {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		if required {
			return 0, &app.ValidationError{Reason: field + " is required"}
		}
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &app.ValidationError{Reason: fmt.Sprintf("%s must be a number, got %q", field, raw)}
	}
	return v, nil
}

func intField(form url.Values, field string, def int) (int, error) {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &app.ValidationError{Reason: fmt.Sprintf("%s must be a whole number, got %q", field, raw)}
	}
	return v, nil
}

func isValidationError(err error) bool {
	var vErr *app.ValidationError
	return errors.As(err, &vErr)
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

func (s *Server) audit(r *http.Request, event, outcome string, attrs ...any) {
	logger := util.LoggerFromContext(r.Context())
	logAttrs := []any{
		"event", event,
		"outcome", outcome,
		"path", r.URL.Path,
		"method", r.Method,
		"ip", clientIP(r),
	}
	logAttrs = append(logAttrs, attrs...)
	if outcome == "success" {
		logger.Info("security_event", logAttrs...)
		return
	}
	logger.Warn("security_event", logAttrs...)
}

func clientIP(r *http.Request) string {
	if xfwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xfwd != "" {
		parts := strings.Split(xfwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
