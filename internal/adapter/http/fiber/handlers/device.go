package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
)

type DeviceHandler struct {
	service ports.DeviceService
	log     *zap.Logger
}

func NewDeviceHandler(service ports.DeviceService, log *zap.Logger) *DeviceHandler {
	return &DeviceHandler{
		service: service,
		log:     log,
	}
}

type registerDeviceRequest struct {
	Brand *string `json:"brand"`
	Model *string `json:"model"`
}

func (r *registerDeviceRequest) validate() error {
	if r.Brand == nil || *r.Brand == "" {
		return fmt.Errorf("%w: brand is required", domain.ErrValidation)
	}
	if r.Model == nil || *r.Model == "" {
		return fmt.Errorf("%w: model is required", domain.ErrValidation)
	}
	return nil
}

// Register declares a new device under the identifier in the path.
func (h *DeviceHandler) Register(c *fiber.Ctx) error {
	var req registerDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	device, err := h.service.Register(c.Context(), c.Params("deviceId"), *req.Brand, *req.Model)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(device.AsResource())
}
