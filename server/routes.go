package server

import (
	"context"
	"net/http"

	"kalma/auth"
	"kalma/handlers"
	"kalma/store"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// HandlerFunc is the handler shape every route uses
type HandlerFunc func(ctx context.Context, w http.ResponseWriter, r *http.Request)

// Route describes one endpoint. AuthType "session" sends anonymous
// visitors to /login; "none" serves everyone.
type Route struct {
	Name      string
	Method    string
	Path      string
	AuthType  string
	RateLimit bool
}

const (
	authNone    = "none"
	authSession = "session"
)

// Deps are the collaborators the router wires into handlers
type Deps struct {
	Store    *store.Store
	Events   *store.EventFile
	Sessions *auth.Sessions
	Limiter  *RateLimiter // nil disables rate limiting
}

type routeEntry struct {
	route   Route
	handler HandlerFunc
}

func routeTable(d Deps) []routeEntry {
	accounts := handlers.NewAccountHandler(d.Store, d.Sessions)
	tasks := handlers.NewTaskHandler(d.Store)
	calendar := handlers.NewCalendarHandler(d.Events)

	return []routeEntry{
		{Route{Name: "HealthCheck", Method: http.MethodGet, Path: "/health", AuthType: authNone}, handlers.Health},
		{Route{Name: "Index", Method: http.MethodGet, Path: "/", AuthType: authNone}, handlers.Index},

		{Route{Name: "RegisterForm", Method: http.MethodGet, Path: "/register", AuthType: authNone}, accounts.RegisterForm},
		{Route{Name: "Register", Method: http.MethodPost, Path: "/register", AuthType: authNone, RateLimit: true}, accounts.Register},
		{Route{Name: "LoginForm", Method: http.MethodGet, Path: "/login", AuthType: authNone}, accounts.LoginForm},
		{Route{Name: "Login", Method: http.MethodPost, Path: "/login", AuthType: authNone, RateLimit: true}, accounts.Login},
		{Route{Name: "Logout", Method: http.MethodGet, Path: "/logout", AuthType: authNone}, accounts.Logout},
		{Route{Name: "Dashboard", Method: http.MethodGet, Path: "/dashboard", AuthType: authSession}, accounts.Dashboard},

		{Route{Name: "Profile", Method: http.MethodGet, Path: "/profile", AuthType: authSession}, tasks.Profile},
		{Route{Name: "AddTask", Method: http.MethodPost, Path: "/profile", AuthType: authSession}, tasks.AddTask},
		{Route{Name: "CompleteTask", Method: http.MethodGet, Path: "/complete_task/{id:[0-9]+}", AuthType: authSession}, tasks.CompleteTask},
		{Route{Name: "DeleteTask", Method: http.MethodGet, Path: "/delete_task/{id:[0-9]+}", AuthType: authSession}, tasks.DeleteTask},

		{Route{Name: "Calendar", Method: http.MethodGet, Path: "/calendar", AuthType: authNone}, calendar.Calendar},
		{Route{Name: "AddEvent", Method: http.MethodPost, Path: "/add_event", AuthType: authNone}, calendar.AddEvent},
		{Route{Name: "DeleteEvent", Method: http.MethodPost, Path: "/delete_event/{date}/{index}", AuthType: authNone}, calendar.DeleteEvent},
		{Route{Name: "ListEvents", Method: http.MethodGet, Path: "/api/events", AuthType: authNone}, calendar.EventsAPI},

		{Route{Name: "Wellness", Method: http.MethodGet, Path: "/wellness", AuthType: authNone}, handlers.Wellness},
		{Route{Name: "SimpleGame", Method: http.MethodGet, Path: "/simplegame", AuthType: authNone}, handlers.SimpleGame},
	}
}

// NewRouter registers every route on a gorilla/mux router
func NewRouter(d Deps) *mux.Router {
	// match on the escaped path so an event date containing "/" stays one segment
	router := mux.NewRouter().UseEncodedPath()
	for _, e := range routeTable(d) {
		router.Handle(e.route.Path, wrap(e.route, e.handler, d)).Methods(e.route.Method)
	}
	return router
}

// wrap puts route info, a request id and the session identity on the
// context, then applies the route's rate limit and auth requirement.
func wrap(route Route, h HandlerFunc, d Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := handlers.WithRoute(r.Context(), handlers.RouteInfo{
			Name:   route.Name,
			Method: r.Method,
			Path:   r.URL.Path,
		})
		ctx = handlers.WithRequestID(ctx, uuid.New().String())
		if email, ok := d.Sessions.Identity(r); ok {
			ctx = handlers.WithIdentity(ctx, email)
		}
		r = r.WithContext(ctx)

		if route.RateLimit && d.Limiter != nil && !d.Limiter.Allow(clientIP(r)) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		if route.AuthType == authSession {
			if _, ok := handlers.Identity(ctx); !ok {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
		}

		h(ctx, w, r)
	})
}
