package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/umakantv/go-utils/httpserver"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

type ctxKey string

const (
	identityKey  ctxKey = "identity"
	requestIDKey ctxKey = "request_id"
)

// RouteInfo describes the matched route for logging
type RouteInfo struct {
	Name   string
	Method string
	Path   string
}

// WithRoute stores the matched route under the go-utils httpserver keys
func WithRoute(ctx context.Context, route RouteInfo) context.Context {
	ctx = context.WithValue(ctx, httpserver.RouteNameKey, route.Name)
	ctx = context.WithValue(ctx, httpserver.RouteMethodKey, route.Method)
	return context.WithValue(ctx, httpserver.RoutePathKey, route.Path)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithIdentity records the logged-in user's email on the request context
func WithIdentity(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, identityKey, email)
}

// Identity returns the logged-in user's email, if the request has one
func Identity(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(identityKey).(string)
	return email, ok && email != ""
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// logRequest logs with the route, request id and acting user attached.
// Shared by every handler in the package.
func logRequest(ctx context.Context, level string, message string, fields ...zap.Field) {
	routeName := httpserver.GetRouteName(ctx)
	method := httpserver.GetRouteMethod(ctx)
	path := httpserver.GetRoutePath(ctx)

	// timestamp - route - method - path [- user] - message
	logMsg := time.Now().Format("2006-01-02 15:04:05") + " - " + routeName + " - " + method + " - " + path
	user, loggedIn := Identity(ctx)
	if loggedIn {
		logMsg += " - user:" + user
	}
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("route", routeName),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestIDFrom(ctx)),
	}, fields...)

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
