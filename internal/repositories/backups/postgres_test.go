package backups

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stormarket/stormarket/internal/common"
	"github.com/stormarket/stormarket/internal/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGet_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM backup_policies\s+WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{
			"user_id", "auto_backup", "frequency", "replication_factor", "retention_period", "updated_at",
		}).AddRow("u1", true, "daily", 3, "1year", time.Now()))

	got, err := repo.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.AutoBackup || got.ReplicationFactor != 3 {
		t.Fatalf("unexpected policy: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM backup_policies`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUpsert_ReplacesExisting(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	updated := time.Now()
	mock.ExpectQuery(`INSERT INTO backup_policies .* ON CONFLICT \(user_id\) DO UPDATE .* RETURNING updated_at`).
		WithArgs("u1", false, "weekly", 5, "6months").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

	got, err := repo.Upsert(context.Background(), &models.BackupPolicy{
		UserID: "u1", AutoBackup: false, Frequency: "weekly",
		ReplicationFactor: 5, RetentionPeriod: "6months",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.UpdatedAt.Equal(updated) {
		t.Fatalf("updated_at not filled: %+v", got)
	}
}
