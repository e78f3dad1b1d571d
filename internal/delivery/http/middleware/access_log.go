package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestIDKey = "request_id"
)

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if appErr, ok := err.(*AppError); ok && appErr.StatusCode > 0 {
				status = appErr.StatusCode
			}
		}

		user := SessionFrom(c).UserID
		if user == "" {
			user = "-"
		}

		if m != nil && m.logger != nil {
			m.logger.Printf(
				"[HTTP] rid=%s ip=%s method=%s path=%s status=%d latency=%s user=%s resp_bytes=%d ua=%q",
				rid, c.IP(), c.Method(), c.OriginalURL(), status, time.Since(start), user,
				c.Response().Header.ContentLength(), c.Get("User-Agent"),
			)
		}

		return err
	}
}

// RequestID returns the id assigned by AccessLogMiddleware.
func RequestID(c fiber.Ctx) string {
	if v, ok := c.Locals(CtxRequestIDKey).(string); ok {
		return v
	}
	return ""
}
