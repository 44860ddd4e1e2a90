// Package registry tracks known physical devices.
package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/observability/telemetry"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
)

type Service struct {
	repo ports.DeviceRepository
	log  *zap.Logger
}

func NewService(repo ports.DeviceRepository, log *zap.Logger) ports.DeviceService {
	return &Service{
		repo: repo,
		log:  log,
	}
}

func (s *Service) Register(ctx context.Context, identifier, brand, model string) (*domain.Device, error) {
	device := &domain.Device{
		DeviceIdentifier: identifier,
		Brand:            brand,
		Model:            model,
	}

	if err := s.repo.Create(ctx, device); err != nil {
		return nil, err
	}

	telemetry.DevicesRegisteredTotal.Inc()
	s.log.Info("Device registered",
		zap.String("device_identifier", identifier),
		zap.String("brand", brand),
		zap.String("model", model),
	)
	return device, nil
}

func (s *Service) Get(ctx context.Context, identifier string) (*domain.Device, error) {
	return s.repo.FindByIdentifier(ctx, identifier)
}
