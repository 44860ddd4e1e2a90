package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
)

type StatsHandler struct {
	service ports.StatService
	log     *zap.Logger
}

func NewStatsHandler(service ports.StatService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		log:     log,
	}
}

// dailyStatRequest is the camelCase wire form of a daily report. All
// five fields are required; pointers distinguish absent from zero.
type dailyStatRequest struct {
	TimeOnOrange              *int64 `json:"timeOnOrange"`
	TimeOnFreeMobile          *int64 `json:"timeOnFreeMobile"`
	TimeOnFreeMobile3G        *int64 `json:"timeOnFreeMobile3g"`
	TimeOnFreeMobile4G        *int64 `json:"timeOnFreeMobile4g"`
	TimeOnFreeMobileFemtocell *int64 `json:"timeOnFreeMobileFemtocell"`
}

func (r *dailyStatRequest) validate() error {
	fields := []struct {
		name  string
		value *int64
	}{
		{"timeOnOrange", r.TimeOnOrange},
		{"timeOnFreeMobile", r.TimeOnFreeMobile},
		{"timeOnFreeMobile3g", r.TimeOnFreeMobile3G},
		{"timeOnFreeMobile4g", r.TimeOnFreeMobile4G},
		{"timeOnFreeMobileFemtocell", r.TimeOnFreeMobileFemtocell},
	}
	for _, f := range fields {
		if f.value == nil {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
		if *f.value < 0 || *f.value > domain.MillisecondsPerDay {
			return fmt.Errorf("%w: %s out of range", domain.ErrValidation, f.name)
		}
	}
	return nil
}

func (r *dailyStatRequest) toReport() domain.StatReport {
	return domain.StatReport{
		TimeOnOrange:              *r.TimeOnOrange,
		TimeOnFreeMobile:          *r.TimeOnFreeMobile,
		TimeOnFreeMobile3G:        *r.TimeOnFreeMobile3G,
		TimeOnFreeMobile4G:        *r.TimeOnFreeMobile4G,
		TimeOnFreeMobileFemtocell: *r.TimeOnFreeMobileFemtocell,
	}
}

// Post records one daily report for the device and date in the path.
// The soft outcomes answer 200 so reporting clients stop retrying.
func (h *StatsHandler) Post(c *fiber.Ctx) error {
	var req dailyStatRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	result, err := h.service.RecordDailyStat(c.Context(), c.Params("deviceId"), c.Params("date"), req.toReport())
	if err != nil {
		return err
	}

	switch result.Outcome {
	case domain.OutcomeTooOld:
		return c.JSON(fiber.Map{
			"status": "Ignored.",
			"reason": "too_old_statistics",
		})
	case domain.OutcomeAlreadyUploaded:
		return c.JSON(fiber.Map{
			"status": "Statistics already uploaded.",
		})
	default:
		return c.Status(fiber.StatusCreated).JSON(result.Stat.AsResource())
	}
}
