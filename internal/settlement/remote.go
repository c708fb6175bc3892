package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stormarket/stormarket/internal/common"
)

// RemoteBackend seals deals through an HTTP settlement service. Failures are
// wrapped in common.ErrRemoteWriteFailure so callers can classify them
// without knowing transport details.
type RemoteBackend struct {
	endpoint string
	client   *http.Client
}

func NewRemoteBackend(endpoint string, timeout time.Duration) *RemoteBackend {
	return &RemoteBackend{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (b *RemoteBackend) CreateDeal(ctx context.Context, req DealRequest) (*DealResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"/deals", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRemoteWriteFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: settlement returned status %d", common.ErrRemoteWriteFailure, resp.StatusCode)
	}

	var result DealResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRemoteWriteFailure, err)
	}
	return &result, nil
}
