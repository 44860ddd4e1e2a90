package registry

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestRegister_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	var created *domain.Device

	mockRepo := &mocks.MockDeviceRepository{
		CreateFunc: func(ctx context.Context, device *domain.Device) error {
			created = device
			return nil
		},
	}
	service := NewService(mockRepo, newTestLogger())

	// Act
	device, err := service.Register(ctx, "d-1", "Acme", "X1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if device == nil {
		t.Fatal("expected device, got nil")
	}
	if created == nil {
		t.Fatal("expected repository Create to be called")
	}
	if created.DeviceIdentifier != "d-1" || created.Brand != "Acme" || created.Model != "X1" {
		t.Errorf("unexpected device persisted: %+v", created)
	}
}

func TestRegister_Conflict(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := &mocks.MockDeviceRepository{
		CreateFunc: func(ctx context.Context, device *domain.Device) error {
			return domain.ErrDeviceExists
		},
	}
	service := NewService(mockRepo, newTestLogger())

	// Act
	_, err := service.Register(ctx, "d-1", "Acme", "X1")

	// Assert
	if !errors.Is(err, domain.ErrDeviceExists) {
		t.Fatalf("expected ErrDeviceExists, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := &mocks.MockDeviceRepository{
		FindByIdentifierFunc: func(ctx context.Context, identifier string) (*domain.Device, error) {
			return nil, domain.ErrDeviceNotFound
		},
	}
	service := NewService(mockRepo, newTestLogger())

	// Act
	_, err := service.Get(ctx, "unknown")

	// Assert
	if !errors.Is(err, domain.ErrDeviceNotFound) {
		t.Fatalf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestGet_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := &mocks.MockDeviceRepository{
		FindByIdentifierFunc: func(ctx context.Context, identifier string) (*domain.Device, error) {
			return &domain.Device{DeviceIdentifier: identifier, Brand: "Acme", Model: "X1"}, nil
		},
	}
	service := NewService(mockRepo, newTestLogger())

	// Act
	device, err := service.Get(ctx, "d-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if device.Brand != "Acme" {
		t.Errorf("unexpected device: %+v", device)
	}
}
