package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stormarket/stormarket/internal/common"
	"github.com/stormarket/stormarket/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackupService(t *testing.T) (*BackupService, *fakeRM) {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rm := newFakeRM()
	return NewBackupService(db, rm), rm
}

func TestBackupGet_DefaultsWhenUnset(t *testing.T) {
	svc, _ := newTestBackupService(t)

	got, err := svc.Get(userCtx("u1"))
	require.NoError(t, err)
	assert.True(t, got.AutoBackup)
	assert.Equal(t, "daily", got.Frequency)
	assert.Equal(t, 3, got.ReplicationFactor)
	assert.Equal(t, "1year", got.RetentionPeriod)
}

func TestBackupSaveAndGet_RoundTrip(t *testing.T) {
	svc, _ := newTestBackupService(t)

	saved, err := svc.Save(userCtx("u1"), &models.BackupPolicy{
		AutoBackup: false, Frequency: "weekly", ReplicationFactor: 5, RetentionPeriod: "6months",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.UserID)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := svc.Get(userCtx("u1"))
	require.NoError(t, err)
	assert.Equal(t, "weekly", got.Frequency)
	assert.Equal(t, 5, got.ReplicationFactor)
}

func TestBackupSave_Validation(t *testing.T) {
	svc, _ := newTestBackupService(t)

	_, err := svc.Save(userCtx("u1"), &models.BackupPolicy{Frequency: "yearly", ReplicationFactor: 3})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Save(userCtx("u1"), &models.BackupPolicy{Frequency: "daily", ReplicationFactor: 0})
	assert.ErrorIs(t, err, common.ErrValidation)
}
