package settlement

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/stormarket/stormarket/internal/common"
)

// Rate of deals the mock reports as verified.
const mockVerifyRate = 0.8

// MockBackend simulates network sealing without a real storage network.
// It waits Delay (interruptible through ctx), then fabricates a deal
// reference. Roughly 20% of deals come back unverified so downstream
// handling of failed verification gets exercised.
type MockBackend struct {
	Delay time.Duration

	// randFloat is a seam for deterministic tests.
	randFloat func() float64
}

func NewMockBackend(delay time.Duration) *MockBackend {
	return &MockBackend{Delay: delay, randFloat: rand.Float64}
}

func (b *MockBackend) CreateDeal(ctx context.Context, req DealRequest) (*DealResult, error) {
	if b.Delay > 0 {
		timer := time.NewTimer(b.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	suffix, err := common.MakeRandHexString(4)
	if err != nil {
		return nil, err
	}

	replication := req.ReplicationFactor
	if replication <= 0 {
		replication = 3
	}

	return &DealResult{
		DealID:            fmt.Sprintf("deal-%d-%s", time.Now().UnixMilli(), suffix),
		Verified:          b.randFloat() < mockVerifyRate,
		Collateral:        req.Cost * 0.1,
		RetrievalPrice:    req.Cost * 0.01,
		ReplicationFactor: replication,
	}, nil
}
