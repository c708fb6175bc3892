package models

import "time"

// FileRetrieval records one paid retrieval of a deal's content.
type FileRetrieval struct {
	ID            string
	UserID        string
	DealID        string
	RetrievalCost float64
	Status        string
	StartedAt     time.Time
	CompletedAt   time.Time
}
