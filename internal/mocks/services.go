package mocks

import (
	"context"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
)

// MockClassifier is a mock implementation of Classifier
type MockClassifier struct {
	IsFourGFunc func(ctx context.Context, brand, model string) (bool, error)
}

func (m *MockClassifier) IsFourG(ctx context.Context, brand, model string) (bool, error) {
	if m.IsFourGFunc != nil {
		return m.IsFourGFunc(ctx, brand, model)
	}
	return false, nil
}

// MockSummaryMaintainer is a mock implementation of SummaryMaintainer
type MockSummaryMaintainer struct {
	FoldFunc func(ctx context.Context, date string, report domain.StatReport, fourG bool) error
}

func (m *MockSummaryMaintainer) Fold(ctx context.Context, date string, report domain.StatReport, fourG bool) error {
	if m.FoldFunc != nil {
		return m.FoldFunc(ctx, date, report, fourG)
	}
	return nil
}

// MockStatService is a mock implementation of StatService
type MockStatService struct {
	RecordDailyStatFunc func(ctx context.Context, deviceIdentifier, date string, report domain.StatReport) (*domain.RecordResult, error)
}

func (m *MockStatService) RecordDailyStat(ctx context.Context, deviceIdentifier, date string, report domain.StatReport) (*domain.RecordResult, error) {
	if m.RecordDailyStatFunc != nil {
		return m.RecordDailyStatFunc(ctx, deviceIdentifier, date, report)
	}
	return nil, nil
}

// MockDeviceService is a mock implementation of DeviceService
type MockDeviceService struct {
	RegisterFunc func(ctx context.Context, identifier, brand, model string) (*domain.Device, error)
	GetFunc      func(ctx context.Context, identifier string) (*domain.Device, error)
}

func (m *MockDeviceService) Register(ctx context.Context, identifier, brand, model string) (*domain.Device, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, identifier, brand, model)
	}
	return nil, nil
}

func (m *MockDeviceService) Get(ctx context.Context, identifier string) (*domain.Device, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, identifier)
	}
	return nil, domain.ErrDeviceNotFound
}

// MockChartService is a mock implementation of ChartService
type MockChartService struct {
	GetUsageFunc      func(ctx context.Context, startDate, endDate string) (*domain.UsageAggregate, error)
	GetDailyUsageFunc func(ctx context.Context, startDate, endDate string) (*domain.DailySeries, error)
}

func (m *MockChartService) GetUsage(ctx context.Context, startDate, endDate string) (*domain.UsageAggregate, error) {
	if m.GetUsageFunc != nil {
		return m.GetUsageFunc(ctx, startDate, endDate)
	}
	return &domain.UsageAggregate{}, nil
}

func (m *MockChartService) GetDailyUsage(ctx context.Context, startDate, endDate string) (*domain.DailySeries, error) {
	if m.GetDailyUsageFunc != nil {
		return m.GetDailyUsageFunc(ctx, startDate, endDate)
	}
	return &domain.DailySeries{}, nil
}
