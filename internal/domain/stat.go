package domain

import (
	"time"
)

const (
	// MillisecondsPerDay bounds every duration field of a report.
	MillisecondsPerDay int64 = 24 * 60 * 60 * 1000

	// DefaultIs4GThreshold is the cohort 4G classification threshold:
	// 24 hours of accumulated 4G time, in milliseconds.
	DefaultIs4GThreshold int64 = 24 * 60 * 60 * 1000

	// MaxReportAgeDays is the trailing window during which a daily
	// report is still accepted.
	MaxReportAgeDays = 7

	// MaxChartRangeDays caps the span of a cached usage query.
	MaxChartRangeDays = 31

	// DefaultChartSpanDays is the default chart window (today-6..today).
	DefaultChartSpanDays = 6
)

// StatReport is a single device's daily duration breakdown, in
// milliseconds. Femtocell is a network type already counted inside
// TimeOnFreeMobile, not a disjoint category.
type StatReport struct {
	TimeOnOrange              int64
	TimeOnFreeMobile          int64
	TimeOnFreeMobile3G        int64
	TimeOnFreeMobile4G        int64
	TimeOnFreeMobileFemtocell int64
}

// DailyDeviceStat is one accepted report: one row per (device, date),
// immutable once written. Brand, model and the 4G flag are captured at
// write time and never re-evaluated.
type DailyDeviceStat struct {
	ID               uint   `json:"-" gorm:"primaryKey"`
	DeviceIdentifier string `json:"device_identifier" gorm:"uniqueIndex:idx_device_date;not null"`
	Date             string `json:"date" gorm:"uniqueIndex:idx_device_date;index:idx_date_4g;not null"`
	DeviceBrand      string `json:"device_brand" gorm:"index:idx_cohort"`
	DeviceModel      string `json:"device_model" gorm:"index:idx_cohort"`
	Is4G             bool   `json:"is_4g" gorm:"index:idx_date_4g"`

	TimeOnOrange              int64 `json:"time_on_orange"`
	TimeOnFreeMobile          int64 `json:"time_on_free_mobile"`
	TimeOnFreeMobile3G        int64 `json:"time_on_free_mobile_3g" gorm:"column:time_on_free_mobile_3g"`
	TimeOnFreeMobile4G        int64 `json:"time_on_free_mobile_4g" gorm:"column:time_on_free_mobile_4g"`
	TimeOnFreeMobileFemtocell int64 `json:"time_on_free_mobile_femtocell"`

	Added    time.Time `json:"added" gorm:"autoCreateTime"`
	Modified time.Time `json:"modified" gorm:"autoUpdateTime"`
}

// AsResource returns the wire representation of the stat row.
func (s *DailyDeviceStat) AsResource() map[string]interface{} {
	return map[string]interface{}{
		"type":                          "DailyDeviceStat",
		"device_identifier":             s.DeviceIdentifier,
		"device_brand":                  s.DeviceBrand,
		"device_model":                  s.DeviceModel,
		"is_4g":                         s.Is4G,
		"time_on_orange":                s.TimeOnOrange,
		"time_on_free_mobile":           s.TimeOnFreeMobile,
		"time_on_free_mobile_3g":        s.TimeOnFreeMobile3G,
		"time_on_free_mobile_4g":        s.TimeOnFreeMobile4G,
		"time_on_free_mobile_femtocell": s.TimeOnFreeMobileFemtocell,
		"date":                          s.Date,
		"added":                         s.Added.Format(ResourceTimeFormat),
		"modified":                      s.Modified.Format(ResourceTimeFormat),
	}
}

// GlobalStats is the all-devices half of a daily summary. Femtocell
// time is subtracted from TimeOnFreeMobile at fold time, so the two
// fields are disjoint here even though they overlap in reports.
type GlobalStats struct {
	TimeOnOrange              int64 `json:"time_on_orange"`
	TimeOnFreeMobile          int64 `json:"time_on_free_mobile"`
	TimeOnFreeMobileFemtocell int64 `json:"time_on_free_mobile_femtocell"`
}

// FourGStats is the 4G-flagged-devices half of a daily summary.
type FourGStats struct {
	TimeOnOrange              int64 `json:"time_on_orange"`
	TimeOnFreeMobile3G        int64 `json:"time_on_free_mobile_3g" gorm:"column:time_on_free_mobile_3g"`
	TimeOnFreeMobile4G        int64 `json:"time_on_free_mobile_4g" gorm:"column:time_on_free_mobile_4g"`
	TimeOnFreeMobileFemtocell int64 `json:"time_on_free_mobile_femtocell"`
}

// DailyStatSummary is the per-date materialized aggregate. Exactly one
// logical row exists per date; it is created lazily on the first report
// for that date and mutated only through atomic per-field increments.
type DailyStatSummary struct {
	ID          uint        `json:"-" gorm:"primaryKey"`
	Date        string      `json:"date" gorm:"uniqueIndex;not null"`
	StatsGlobal GlobalStats `json:"stats_global" gorm:"embedded;embeddedPrefix:global_"`
	Stats4G     FourGStats  `json:"stats_4g" gorm:"embedded;embeddedPrefix:fourg_"`
	Added       time.Time   `json:"added" gorm:"autoCreateTime"`
	Modified    time.Time   `json:"modified" gorm:"autoUpdateTime"`
}

// RecordOutcome is the result class of an ingestion call.
type RecordOutcome string

const (
	// OutcomeStored means the report was persisted and folded.
	OutcomeStored RecordOutcome = "stored"
	// OutcomeAlreadyUploaded means a row already existed for the
	// (device, date) pair; nothing was written.
	OutcomeAlreadyUploaded RecordOutcome = "already_uploaded"
	// OutcomeTooOld means the report date fell outside the trailing
	// acceptance window; nothing was written.
	OutcomeTooOld RecordOutcome = "too_old"
)

// RecordResult is the outcome of recording a daily report. Stat is set
// only when Outcome is OutcomeStored.
type RecordResult struct {
	Outcome RecordOutcome
	Stat    *DailyDeviceStat
}

// GlobalAggregate is the all-devices bucket of a windowed usage
// aggregate, plus the distinct count of devices reporting in the
// window.
type GlobalAggregate struct {
	TimeOnOrange              int64 `json:"time_on_orange"`
	TimeOnFreeMobile          int64 `json:"time_on_free_mobile"`
	TimeOnFreeMobileFemtocell int64 `json:"time_on_free_mobile_femtocell"`
	Users                     int64 `json:"users"`
}

// FourGAggregate is the 4G-only bucket of a windowed usage aggregate.
type FourGAggregate struct {
	TimeOnOrange              int64 `json:"time_on_orange"`
	TimeOnFreeMobile3G        int64 `json:"time_on_free_mobile_3g"`
	TimeOnFreeMobile4G        int64 `json:"time_on_free_mobile_4g"`
	TimeOnFreeMobileFemtocell int64 `json:"time_on_free_mobile_femtocell"`
	Users                     int64 `json:"users"`
}

// UsageAggregate is the two-bucket answer to a usage window query.
type UsageAggregate struct {
	StatsGlobal GlobalAggregate `json:"stats_global"`
	Stats4G     FourGAggregate  `json:"stats_4g"`
}

// DailySeries is the per-day chart variant: one entry per summary row
// in the window, in date order.
type DailySeries struct {
	StatsGlobal []GlobalStats `json:"stats_global"`
	Stats4G     []FourGStats  `json:"stats_4g"`
}
