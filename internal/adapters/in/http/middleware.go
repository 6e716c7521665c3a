package http

import (
	"strconv"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const actorContextKey = "authenticated_actor"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parceltrack_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parceltrack_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware records request counts and latencies per route.
// Labels use the echo route template, not the raw path, so parcel ids do not
// blow up metric cardinality.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()

			err := next(ctx)

			path := ctx.Path()
			if path == "" {
				path = ctx.Request().URL.Path
			}
			method := ctx.Request().Method
			status := strconv.Itoa(ctx.Response().Status)

			httpRequestsTotal.WithLabelValues(method, path, status).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// AuthMiddleware resolves the Bearer token into an actor and stores it in
// the request context. Requests without a valid token are rejected with 401.
func AuthMiddleware(identities ports.IdentityProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			credential, err := bearerToken(ctx)
			if err != nil {
				return writeError(ctx, err)
			}

			resolved, err := identities.Resolve(ctx.Request().Context(), credential)
			if err != nil {
				return writeError(ctx, err)
			}

			ctx.Set(actorContextKey, resolved)
			return next(ctx)
		}
	}
}

// RequireAdmin rejects requests from non-admin actors with 403.
// Must run after AuthMiddleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			requester, err := actorFromContext(ctx)
			if err != nil {
				return writeError(ctx, err)
			}
			if !requester.IsAdmin() {
				return writeError(ctx,
					errs.NewNotAuthorizedError(requester.Role().String(), "access admin resources"))
			}
			return next(ctx)
		}
	}
}

func bearerToken(ctx echo.Context) (string, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", errs.NewUnauthenticatedError()
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errs.NewUnauthenticatedError()
	}
	return parts[1], nil
}

func actorFromContext(ctx echo.Context) (actor.Actor, error) {
	requester, ok := ctx.Get(actorContextKey).(actor.Actor)
	if !ok {
		return actor.Actor{}, errs.NewUnauthenticatedError()
	}
	return requester, nil
}
