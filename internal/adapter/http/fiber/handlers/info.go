package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// InfoHandler answers the health probe.
type InfoHandler struct{}

func NewInfoHandler() *InfoHandler {
	return &InfoHandler{}
}

func (h *InfoHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
