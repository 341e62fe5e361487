package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Message: message})
}

// SendServerError sends a 500 response carrying a generic message plus the
// error string, mirroring the {message, error} server-failure envelope.
func SendServerError(c *fiber.Ctx, message string, err error) error {
	body := ErrorResponse{Message: message}
	if err != nil {
		body.Error = err.Error()
	}

	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
