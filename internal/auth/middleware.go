package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const principalKey ctxKey = "auth_principal"

// AccessTokenParam is the query parameter accepted on websocket upgrades
const AccessTokenParam = "access_token"

var tracer = otel.Tracer("github.com/WailSalutem-Health-Care/clinic-service/auth")

// MetricsRecorder interface for recording auth metrics
type MetricsRecorder interface {
	RecordAuthFailure(ctx context.Context, reason string)
}

// PermissionMetricsRecorder interface for recording permission check metrics
type PermissionMetricsRecorder interface {
	RecordPermissionCheck(ctx context.Context, permission string, durationMs float64, allowed bool)
}

// Middleware validates token, injects Principal into request context.
// verifier should be created with NewVerifier.
func Middleware(ver *Verifier) func(http.Handler) http.Handler {
	return MiddlewareWithMetrics(ver, nil)
}

// MiddlewareWithMetrics validates the bearer token and records every
// rejection reason on metrics (which may be nil)
func MiddlewareWithMetrics(ver *Verifier, metrics MetricsRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), "auth.Middleware",
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			reject := func(reason, message string) {
				span.SetStatus(codes.Error, message)
				span.SetAttributes(attribute.String("error.type", reason))
				if metrics != nil {
					metrics.RecordAuthFailure(ctx, reason)
				}
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", message)
			}

			token, reason := requestToken(r)
			if reason != "" {
				reject(reason, strings.ReplaceAll(reason, "_", " "))
				return
			}

			pr, err := ver.ParseAndVerifyToken(token)
			if err != nil {
				log.Printf("[ERROR] Token validation failed on %s %s: %v", r.Method, r.URL.Path, err)
				span.SetAttributes(attribute.String("error.message", err.Error()))
				reject("invalid_token", "invalid token")
				return
			}

			span.SetAttributes(
				attribute.String("user.id", pr.UserID),
				attribute.StringSlice("user.roles", pr.Roles),
			)
			span.SetStatus(codes.Ok, "authenticated")

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, principalKey, pr)))
		})
	}
}

// requestToken reads the bearer token of r. A websocket upgrade without an
// Authorization header may carry it in the access_token query parameter.
func requestToken(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" && websocket.IsWebSocketUpgrade(r) {
		if tok := strings.TrimSpace(r.URL.Query().Get(AccessTokenParam)); tok != "" {
			return tok, ""
		}
	}
	return bearerToken(header)
}

// bearerToken extracts the token of an "Authorization: Bearer" header. The
// second result names the failure, empty on success.
func bearerToken(header string) (string, string) {
	if header == "" {
		return "", "missing_authorization"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", "invalid_header_format"
	}
	return strings.TrimSpace(token), ""
}

// RequirePermission returns middleware that ensures the principal has permission.
func RequirePermission(per string, perms Permissions) func(http.Handler) http.Handler {
	return RequirePermissionWithMetrics(per, perms, nil)
}

// RequirePermissionWithMetrics returns middleware with metrics recording
func RequirePermissionWithMetrics(per string, perms Permissions, metrics PermissionMetricsRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx, span := tracer.Start(r.Context(), "auth.RequirePermission",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attribute.String("permission.required", per)),
			)
			defer span.End()

			pr, ok := FromContext(ctx)
			allowed := ok && HasPermission(pr, per, perms)

			if metrics != nil {
				metrics.RecordPermissionCheck(ctx, per, float64(time.Since(start).Microseconds())/1000, allowed)
			}
			span.SetAttributes(attribute.Bool("permission.allowed", allowed))

			switch {
			case !ok:
				span.SetStatus(codes.Error, "unauthenticated")
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "unauthenticated")
				return
			case !allowed:
				log.Printf("[PERMISSION DENIED] User: %s, Roles: %v, Required Permission: %s",
					pr.UserID, pr.Roles, per)
				span.SetStatus(codes.Error, "forbidden")
				writeAuthError(w, http.StatusForbidden, "forbidden", "missing permission "+per)
				return
			}

			span.SetStatus(codes.Ok, "permission granted")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError answers with the same {"error","message"} body the API
// handlers use
func writeAuthError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errorType,
		"message": message,
	})
}

// FromContext extracts Principal from context.
func FromContext(ctx context.Context) (*Principal, bool) {
	pr, ok := ctx.Value(principalKey).(*Principal)
	return pr, ok
}

// HasPermission checks roles -> permissions mapping.
// Realm roles are matched as-is first, then upper-cased ("doctor" -> "DOCTOR").
func HasPermission(pr *Principal, permission string, perms Permissions) bool {
	for _, role := range pr.Roles {
		granted, ok := perms[role]
		if !ok {
			granted = perms[strings.ToUpper(role)]
		}
		for _, p := range granted {
			if p == permission {
				return true
			}
		}
	}
	return false
}
