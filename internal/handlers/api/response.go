package api

import (
	"github.com/gofiber/fiber/v3"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Envelope wraps every JSON API body. Exactly one of Data or Error is set.
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(Envelope{Status: statusOK, Data: data})
}

func jsonError(c fiber.Ctx, status int, message string) error {
	return Error(c, status, message)
}

// Error writes an error envelope with the given status. The server's error
// handler and rate limiter use it so /api clients always get the same shape.
func Error(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Status: statusError, Error: message})
}
