package domain

import (
	"time"
)

// Device represents a physical device that reports daily statistics.
// The identifier is chosen by the device and is immutable after
// registration.
type Device struct {
	ID               uint      `json:"-" gorm:"primaryKey"`
	DeviceIdentifier string    `json:"device_identifier" gorm:"uniqueIndex;not null"`
	Brand            string    `json:"brand" gorm:"not null"`
	Model            string    `json:"model" gorm:"not null"`
	Added            time.Time `json:"added" gorm:"autoCreateTime"`
	Modified         time.Time `json:"modified" gorm:"autoUpdateTime"`
}

// AsResource returns the wire representation of the device: stored
// fields plus a type tag, timestamps rendered as strings, identity
// fields dropped.
func (d *Device) AsResource() map[string]interface{} {
	return map[string]interface{}{
		"type":              "Device",
		"device_identifier": d.DeviceIdentifier,
		"brand":             d.Brand,
		"model":             d.Model,
		"added":             d.Added.Format(ResourceTimeFormat),
		"modified":          d.Modified.Format(ResourceTimeFormat),
	}
}

// ResourceTimeFormat is how timestamps are rendered in resources.
const ResourceTimeFormat = "2006-01-02 15:04:05"
