package response

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
)

type SemanticResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const (
	MessageOK                   = "ok"
	MessageCreated              = "created"
	MessageBadRequest           = "bad request"
	MessageUnauthorized         = "unauthorized"
	MessageForbidden            = "forbidden"
	MessageNotFound             = "not found"
	MessageConflict             = "conflict"
	MessageUnprocessableEntity  = "unprocessable entity"
	MessagePreconditionRequired = "confirmation required"
	MessageInternalServerError  = "internal server error"
	MessageBadGateway           = "bad gateway"
	MessageServiceUnavailable   = "service unavailable"
	MessageError                = "error"
)

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	st := normalizeStatus(status)
	msg := normalizeMessage(message, st)
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: msg, Data: data})
}

func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	st := normalizeStatus(status)
	msg := normalizeMessage(message, st)
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: msg, Data: data})
}

// Attachment writes a binary download.
func Attachment(c fiber.Ctx, fileName, contentType string, data []byte) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(fileName))
	return c.Status(fiber.StatusOK).Send(data)
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func normalizeMessage(message string, status int) string {
	if message != "" {
		return message
	}
	return DefaultMessageForStatus(status)
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusOK:
		return MessageOK
	case fiber.StatusCreated:
		return MessageCreated
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	case fiber.StatusPreconditionRequired:
		return MessagePreconditionRequired
	case fiber.StatusBadGateway:
		return MessageBadGateway
	case fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
