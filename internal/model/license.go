package model

import "time"

// LicenseRowID is the fixed primary key of the single license row.
const LicenseRowID = 1

// License is the single-row activation record. DeviceID is minted once
// at activation so support can tell installations apart.
type License struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Key         string     `gorm:"column:license_key;type:varchar(64);not null" json:"key"`
	DeviceID    string     `gorm:"type:varchar(36)" json:"device_id"`
	ActivatedAt time.Time  `json:"activated_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
