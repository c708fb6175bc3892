package models

import "time"

// BackupPolicy is a per-user backup configuration record.
type BackupPolicy struct {
	UserID            string
	AutoBackup        bool
	Frequency         string
	ReplicationFactor int
	RetentionPeriod   string
	UpdatedAt         time.Time
}
