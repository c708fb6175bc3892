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

func TestWalletGet_EnsuresRowOnFirstAccess(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rm := newFakeRM()
	rm.wallets.wallet = models.UserWallet{ID: "w1", Balance: 10}

	svc := NewWalletService(db, rm)
	got, err := svc.Get(userCtx("u1"))
	require.NoError(t, err)

	assert.Equal(t, []string{"u1"}, rm.wallets.ensured)
	assert.Equal(t, 10.0, got.Balance)
	assert.Equal(t, "u1", got.UserID)
}

func TestWalletGet_NotAuthenticated(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewWalletService(db, newFakeRM())
	_, err = svc.Get(context.Background())
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
}
