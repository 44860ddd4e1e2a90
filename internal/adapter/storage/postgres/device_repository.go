package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
)

type DeviceRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewDeviceRepository(db *gorm.DB, log *zap.Logger) ports.DeviceRepository {
	return &DeviceRepository{
		db:  db,
		log: log,
	}
}

func (r *DeviceRepository) Create(ctx context.Context, device *domain.Device) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_identifier"}},
			DoNothing: true,
		}).
		Create(device)
	if result.Error != nil {
		r.log.Error("Failed to create device", zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDeviceExists
	}
	return nil
}

func (r *DeviceRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.Device, error) {
	var device domain.Device
	result := r.db.WithContext(ctx).First(&device, "device_identifier = ?", identifier)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDeviceNotFound
		}
		return nil, result.Error
	}
	return &device, nil
}
