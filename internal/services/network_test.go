package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stormarket/stormarket/internal/common"
	"github.com/stormarket/stormarket/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNetworkService(t *testing.T) (*NetworkService, *fakeRM) {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rm := newFakeRM()
	return NewNetworkService(db, rm, testLogger()), rm
}

func TestProviders_Passthrough(t *testing.T) {
	svc, rm := newTestNetworkService(t)
	rm.providers.all = []*models.StorageProvider{
		{ID: "p1", ReputationScore: 99},
		{ID: "p2", ReputationScore: 80},
	}

	got, err := svc.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
}

func TestStats_Latest(t *testing.T) {
	svc, rm := newTestNetworkService(t)
	rm.stats.snapshot = &models.NetworkStats{ID: "s1", TotalNodes: 1200}

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1200), got.TotalNodes)
}

func TestStats_Empty(t *testing.T) {
	svc, _ := newTestNetworkService(t)

	_, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRefreshDealStatuses_Passthrough(t *testing.T) {
	svc, rm := newTestNetworkService(t)
	rm.deals.activated = 3
	rm.deals.expired = 1

	activated, expired, err := svc.RefreshDealStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), activated)
	assert.Equal(t, int64(1), expired)
}
