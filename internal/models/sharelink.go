package models

import "time"

// ShareLink is a client-side sharing handle for a stored file. It is never
// persisted to the remote store; revocation is removal from the in-memory
// list.
type ShareLink struct {
	ID            string
	DealID        string
	FileName      string
	URL           string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	AccessCount   int
	MaxAccess     int // 0 means unlimited
	PasswordHash  []byte
	PasswordSalt  []byte
	AllowDownload bool
}
