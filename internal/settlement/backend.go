// Package settlement talks to the network side that seals storage deals.
// The marketplace only needs a deal reference and a verification verdict
// back; everything else stays on the network.
package settlement

import (
	"context"
	"time"
)

// DealRequest describes the deal to seal on the network.
type DealRequest struct {
	CID               string        `json:"cid"`
	Size              int64         `json:"size"`
	Duration          time.Duration `json:"duration"`
	ProviderID        string        `json:"provider_id,omitempty"`
	ReplicationFactor int           `json:"replication_factor"`
	Cost              float64       `json:"cost"`
}

// DealResult is the network's answer for a sealed deal.
type DealResult struct {
	DealID            string  `json:"deal_id"`
	Verified          bool    `json:"verified"`
	Collateral        float64 `json:"collateral"`
	RetrievalPrice    float64 `json:"retrieval_price"`
	ReplicationFactor int     `json:"replication_factor"`
}

// Backend seals deals on the storage network.
type Backend interface {
	CreateDeal(ctx context.Context, req DealRequest) (*DealResult, error)
}
