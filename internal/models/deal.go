// Package models defines the persistent data shapes of the marketplace:
// storage deals, providers, wallets, network stats, retrieval events, and
// the feature-local share link and backup policy records.
package models

import "time"

// DealStatus is the persisted lifecycle state of a storage deal.
type DealStatus string

const (
	DealStatusPending   DealStatus = "pending"
	DealStatusActive    DealStatus = "active"
	DealStatusCompleted DealStatus = "completed"
	DealStatusFailed    DealStatus = "failed"
	DealStatusExpired   DealStatus = "expired"
)

// StorageDeal is an agreement to store one file for a fixed duration at a
// fixed cost. Created in "pending" by a client action and flipped to "active"
// by the activation sequencer; "failed"/"completed" come from external
// processes not modeled here.
type StorageDeal struct {
	ID         string
	UserID     string
	FileCID    string
	FileName   string
	FileSize   int64
	FileType   string
	TotalCost  float64
	Status     DealStatus
	CreatedAt  time.Time
	ExpiresAt  time.Time
	ProviderID string
}

// DerivedStatus returns the status the UI layer must act on. A deal whose
// stored status is not "failed" but whose expiry has passed is treated as
// expired. This is a computed override, never written back: every read site
// that restricts actions must go through here.
func (d *StorageDeal) DerivedStatus(now time.Time) DealStatus {
	if d.Status == DealStatusFailed {
		return DealStatusFailed
	}
	if d.ExpiresAt.Before(now) {
		return DealStatusExpired
	}
	return d.Status
}

// Retrievable reports whether the deal's content can be fetched: the derived
// status must be active or completed.
func (d *StorageDeal) Retrievable(now time.Time) bool {
	s := d.DerivedStatus(now)
	return s == DealStatusActive || s == DealStatusCompleted
}
