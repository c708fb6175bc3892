package models

import "time"

// NetworkStats is a snapshot aggregate describing global network health,
// replaced wholesale on each fetch.
type NetworkStats struct {
	ID                 string
	TotalNodes         int64
	ActiveDeals        int64
	TotalStorageUsedGB float64
	NetworkHealthScore float64
	AvgResponseTimeMs  float64
	RecordedAt         time.Time
}
