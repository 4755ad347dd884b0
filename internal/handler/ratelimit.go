package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter counts requests per client within a window
type RateLimiter interface {
	RateLimit(ctx context.Context, client string, limit int, window time.Duration) (bool, error)
}

// RateLimit rejects clients that exceed limit requests per window with 429.
// Requests are let through when the limiter itself fails.
func RateLimit(limiter RateLimiter, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limited, err := limiter.RateLimit(c.Request().Context(), c.RealIP(), limit, window)
			if err != nil {
				c.Logger().Warnf("rate limiter unavailable: %v", err)
				return next(c)
			}
			if limited {
				return echo.NewHTTPError(http.StatusTooManyRequests)
			}
			return next(c)
		}
	}
}
