package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"hire-portal/internal/access"
	"hire-portal/internal/audit"
	"hire-portal/internal/delivery/http/dto"
	"hire-portal/internal/delivery/http/middleware"
	"hire-portal/internal/infrastructure/backend"
	"hire-portal/internal/pkg/response"
	"hire-portal/internal/usecase"
	"hire-portal/internal/validation"

	"github.com/gofiber/fiber/v3"
)

// requestContext carries the caller's token to the gateway and the request id
// to audit events.
func requestContext(c fiber.Ctx, s access.Session) context.Context {
	ctx := backend.WithToken(c.Context(), s.Token)
	return audit.WithCorrelationID(ctx, middleware.RequestID(c))
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// parsePage reads the zero-based page index and the page size.
func parsePage(c fiber.Ctx, defaultSize int) (page, size int, err error) {
	page, err = parseQueryIntStrict(c, "page", 0)
	if err != nil {
		return 0, 0, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	size, err = parseQueryIntStrict(c, "size", defaultSize)
	if err != nil {
		return 0, 0, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return page, size, nil
}

func confirmed(c fiber.Ctx) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query("confirm"))) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// reasonFrom reads an optional {"reason": ...} body, falling back to the
// reason query parameter.
func reasonFrom(c fiber.Ctx) (string, error) {
	if len(c.Body()) > 0 {
		var req dto.ReasonRequest
		if err := c.Bind().Body(&req); err != nil {
			return "", middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
		if strings.TrimSpace(req.Reason) != "" {
			return req.Reason, nil
		}
	}
	return c.Query("reason"), nil
}

type fieldErrorData struct {
	Field  string   `json:"field"`
	Fields []string `json:"fields"`
}

func mapUsecaseError(err error, op usecase.Op) error {
	if err == nil {
		return nil
	}

	var ve *validation.Error
	if errors.As(err, &ve) {
		return middleware.NewAppError(fiber.StatusBadRequest, ve.Message, fieldErrorData{Field: ve.Field, Fields: ve.Fields}, err)
	}

	var re *usecase.RemoteError
	if errors.As(err, &re) {
		return middleware.NewAppError(re.Status(), re.Message(), nil, err)
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrConfirmationRequired):
		return middleware.NewAppError(fiber.StatusPreconditionRequired, usecase.UserMessage(err, op), nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, usecase.UserMessage(err, op), nil, err)
	case errors.Is(err, usecase.ErrNotEditable):
		return middleware.NewAppError(fiber.StatusConflict, usecase.UserMessage(err, op), nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, usecase.UserMessage(err, op), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
