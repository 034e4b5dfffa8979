package middleware

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"nutritrack/internal/logging"
)

// Logger logs each HTTP request through the default slog logger.
// Fields: request_id, method, path, route, status, latency_ms, ip, and
// trace_id when the request carries a span.
func Logger() fiber.Handler {
	return requestLogger(slog.Default())
}

// LoggerWithWriter writes the request log as JSON lines to w, timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return requestLogger(slog.New(logging.NewJSONHandler(w, slog.LevelInfo, loc)))
}

func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := statusOf(c, err)
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		route := c.Route().Path

		// 5xx are already reported at ERROR by the error handler.
		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("request_id", rid),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Float64("latency_ms", float64(time.Since(start).Microseconds())/1000),
			slog.String("ip", c.IP()),
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.IsValid() {
			attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
		}

		log.LogAttrs(c.UserContext(), level, "request", attrs...)

		return err
	}
}

// statusOf returns the status the error handler will answer with when the
// chain returned an error, otherwise the status already set.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
