package models

// StorageProvider is a node offering storage capacity. Read-only from the
// client's perspective; available capacity is informational and never
// decremented by deal creation.
type StorageProvider struct {
	ID                 string
	Name               string
	Location           string
	ReputationScore    float64
	TotalStorageGB     float64
	AvailableStorageGB float64
	PricePerGB         float64
	UptimePercentage   float64
}
