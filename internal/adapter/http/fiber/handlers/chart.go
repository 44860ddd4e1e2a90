package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
	"github.com/free-mobile-netstat/fmns-api/pkg/dateutil"
)

type ChartHandler struct {
	service ports.ChartService
	loc     *time.Location
	log     *zap.Logger
}

func NewChartHandler(service ports.ChartService, loc *time.Location, log *zap.Logger) *ChartHandler {
	return &ChartHandler{
		service: service,
		loc:     loc,
		log:     log,
	}
}

// window extracts the requested date range, defaulting to the trailing
// week ending today.
func (h *ChartHandler) window(c *fiber.Ctx) (string, string) {
	now := time.Now().In(h.loc)
	startDate := c.Query("start_date", dateutil.Format(now.AddDate(0, 0, -domain.DefaultChartSpanDays)))
	endDate := c.Query("end_date", dateutil.Format(now))
	return startDate, endDate
}

// Usage answers the cached two-bucket aggregate over the window.
func (h *ChartHandler) Usage(c *fiber.Ctx) error {
	startDate, endDate := h.window(c)

	usage, err := h.service.GetUsage(c.Context(), startDate, endDate)
	if err != nil {
		return err
	}
	return c.JSON(usage)
}

// DailyUsage answers the per-day summary series over the window.
func (h *ChartHandler) DailyUsage(c *fiber.Ctx) error {
	startDate, endDate := h.window(c)

	series, err := h.service.GetDailyUsage(c.Context(), startDate, endDate)
	if err != nil {
		return err
	}
	return c.JSON(series)
}
