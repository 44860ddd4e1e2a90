package mocks

import (
	"context"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
)

// MockDeviceRepository is a mock implementation of DeviceRepository
type MockDeviceRepository struct {
	CreateFunc           func(ctx context.Context, device *domain.Device) error
	FindByIdentifierFunc func(ctx context.Context, identifier string) (*domain.Device, error)
}

func (m *MockDeviceRepository) Create(ctx context.Context, device *domain.Device) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, device)
	}
	return nil
}

func (m *MockDeviceRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.Device, error) {
	if m.FindByIdentifierFunc != nil {
		return m.FindByIdentifierFunc(ctx, identifier)
	}
	return nil, domain.ErrDeviceNotFound
}

// MockDailyStatRepository is a mock implementation of DailyStatRepository
type MockDailyStatRepository struct {
	CreateFunc               func(ctx context.Context, stat *domain.DailyDeviceStat) error
	ExistsFunc               func(ctx context.Context, deviceIdentifier, date string) (bool, error)
	SumCohort4GTimeFunc      func(ctx context.Context, brand, model string) (int64, error)
	CountDistinctDevicesFunc func(ctx context.Context, startDate, endDate string, only4G bool) (int64, error)
	SumRawFieldFunc          func(ctx context.Context, field, startDate, endDate string, only4G bool) (int64, error)
}

func (m *MockDailyStatRepository) Create(ctx context.Context, stat *domain.DailyDeviceStat) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, stat)
	}
	return nil
}

func (m *MockDailyStatRepository) Exists(ctx context.Context, deviceIdentifier, date string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, deviceIdentifier, date)
	}
	return false, nil
}

func (m *MockDailyStatRepository) SumCohort4GTime(ctx context.Context, brand, model string) (int64, error) {
	if m.SumCohort4GTimeFunc != nil {
		return m.SumCohort4GTimeFunc(ctx, brand, model)
	}
	return 0, nil
}

func (m *MockDailyStatRepository) CountDistinctDevices(ctx context.Context, startDate, endDate string, only4G bool) (int64, error) {
	if m.CountDistinctDevicesFunc != nil {
		return m.CountDistinctDevicesFunc(ctx, startDate, endDate, only4G)
	}
	return 0, nil
}

func (m *MockDailyStatRepository) SumRawField(ctx context.Context, field, startDate, endDate string, only4G bool) (int64, error) {
	if m.SumRawFieldFunc != nil {
		return m.SumRawFieldFunc(ctx, field, startDate, endDate, only4G)
	}
	return 0, nil
}

// MockSummaryRepository is a mock implementation of SummaryRepository
type MockSummaryRepository struct {
	EnsureRowFunc       func(ctx context.Context, date string) error
	IncrementGlobalFunc func(ctx context.Context, date string, orange, freeMobile, femtocell int64) error
	Increment4GFunc     func(ctx context.Context, date string, orange, fm3g, fm4g, femtocell int64) error
	SumFieldFunc        func(ctx context.Context, field, startDate, endDate string, fourG bool) (int64, error)
	ListRangeFunc       func(ctx context.Context, startDate, endDate string) ([]domain.DailyStatSummary, error)
}

func (m *MockSummaryRepository) EnsureRow(ctx context.Context, date string) error {
	if m.EnsureRowFunc != nil {
		return m.EnsureRowFunc(ctx, date)
	}
	return nil
}

func (m *MockSummaryRepository) IncrementGlobal(ctx context.Context, date string, orange, freeMobile, femtocell int64) error {
	if m.IncrementGlobalFunc != nil {
		return m.IncrementGlobalFunc(ctx, date, orange, freeMobile, femtocell)
	}
	return nil
}

func (m *MockSummaryRepository) Increment4G(ctx context.Context, date string, orange, fm3g, fm4g, femtocell int64) error {
	if m.Increment4GFunc != nil {
		return m.Increment4GFunc(ctx, date, orange, fm3g, fm4g, femtocell)
	}
	return nil
}

func (m *MockSummaryRepository) SumField(ctx context.Context, field, startDate, endDate string, fourG bool) (int64, error) {
	if m.SumFieldFunc != nil {
		return m.SumFieldFunc(ctx, field, startDate, endDate, fourG)
	}
	return 0, nil
}

func (m *MockSummaryRepository) ListRange(ctx context.Context, startDate, endDate string) ([]domain.DailyStatSummary, error) {
	if m.ListRangeFunc != nil {
		return m.ListRangeFunc(ctx, startDate, endDate)
	}
	return nil, nil
}
