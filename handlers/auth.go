package handlers

import (
	"context"
	"errors"
	"net/http"

	"kalma/auth"
	"kalma/models"
	"kalma/store"

	"go.uber.org/zap"
)

// AccountHandler serves registration, login, logout and the dashboard
type AccountHandler struct {
	store    *store.Store
	sessions *auth.Sessions
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(st *store.Store, sessions *auth.Sessions) *AccountHandler {
	return &AccountHandler{
		store:    st,
		sessions: sessions,
	}
}

// RegisterForm handles GET /register
func (h *AccountHandler) RegisterForm(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	render(ctx, w, r, "register", "Register", nil)
}

// Register handles POST /register - validates, stores a hashed password, sends to /login
func (h *AccountHandler) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logRequest(ctx, "error", "Invalid register form", zap.Error(err))
		redirectWithFlash(w, r, "Please fill all required fields.", "/register")
		return
	}

	req := models.RegisterRequest{
		Fullname: r.PostFormValue("fullname"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Confirm:  r.PostFormValue("confirm"),
	}
	logRequest(ctx, "info", "Register request", zap.String("email", store.NormalizeEmail(req.Email)))

	user, err := h.store.Register(ctx, req)
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		logRequest(ctx, "info", "Registration rejected", zap.String("reason", verr.Msg))
		redirectWithFlash(w, r, verr.Msg, "/register")
		return
	case errors.Is(err, store.ErrConflict):
		logRequest(ctx, "info", "Email already registered", zap.String("email", store.NormalizeEmail(req.Email)))
		redirectWithFlash(w, r, "Email already registered. Please login.", "/login")
		return
	case err != nil:
		serverError(ctx, w, "Failed to register user", err)
		return
	}

	logRequest(ctx, "info", "User registered", zap.Int64("user_id", user.ID))
	redirectWithFlash(w, r, "Registration successful. Please login.", "/login")
}

// LoginForm handles GET /login
func (h *AccountHandler) LoginForm(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	render(ctx, w, r, "login", "Login", nil)
}

// Login handles POST /login - verifies the password and sets the session cookie
func (h *AccountHandler) Login(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logRequest(ctx, "error", "Invalid login form", zap.Error(err))
		redirectWithFlash(w, r, "Invalid email or password.", "/login")
		return
	}

	req := models.LoginRequest{
		Email:    store.NormalizeEmail(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	logRequest(ctx, "info", "Login request", zap.String("email", req.Email))

	ok, err := h.store.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		serverError(ctx, w, "Failed to check credentials", err)
		return
	}
	if !ok {
		logRequest(ctx, "info", "Invalid credentials", zap.String("email", req.Email))
		redirectWithFlash(w, r, "Invalid email or password.", "/login")
		return
	}

	if err := h.sessions.Issue(w, req.Email); err != nil {
		serverError(ctx, w, "Failed to issue session", err)
		return
	}

	logRequest(ctx, "info", "Login successful", zap.String("email", req.Email))
	redirectWithFlash(w, r, "Login successful!", "/dashboard")
}

// Logout handles GET /logout - revokes the session and goes home
func (h *AccountHandler) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w, r)
	logRequest(ctx, "info", "Logged out")
	redirectWithFlash(w, r, "Logged out successfully!", "/")
}

// Dashboard handles GET /dashboard - greets the user by full name
func (h *AccountHandler) Dashboard(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	email, _ := Identity(ctx)

	name := email
	user, err := h.store.UserByEmail(ctx, email)
	switch {
	case err == nil:
		name = user.DisplayName()
	case errors.Is(err, store.ErrNotFound):
		// valid cookie for an account that is gone (e.g. after a reset)
		logRequest(ctx, "debug", "Session user not in store")
	default:
		serverError(ctx, w, "Failed to load user", err)
		return
	}

	render(ctx, w, r, "dashboard", "Dashboard", struct{ Name string }{Name: name})
}
