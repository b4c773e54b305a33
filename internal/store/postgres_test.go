// internal/store/postgres_test.go
package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trucking-site/internal/common/database"
)

func newMockPostgres(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgres(&database.PostgresClient{DB: db}), mock
}

func TestPostgresStore_Set(t *testing.T) {
	pg, mock := newMockPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents")).
		WithArgs("contact_submissions", "CS-1-a", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := pg.Set(context.Background(), "contact_submissions", "CS-1-a", Document{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AddAssignsID(t *testing.T) {
	pg, mock := newMockPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents")).
		WithArgs("applicants", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := pg.Add(context.Background(), "applicants", Document{"firstName": "John"})

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueryRecent(t *testing.T) {
	pg, mock := newMockPostgres(t)
	since := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{"email":"john@example.com","firstName":"John"}`))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM documents")).
		WithArgs("applicants", "email", "john@example.com", since, 1).
		WillReturnRows(rows)

	docs, err := pg.QueryRecent(context.Background(), "applicants", "email", "john@example.com", since, 1)

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "John", docs[0]["firstName"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueryRecentEmpty(t *testing.T) {
	pg, mock := newMockPostgres(t)
	since := time.Now().Add(-24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM documents")).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	docs, err := pg.QueryRecent(context.Background(), "applicants", "email", "none@example.com", since, 1)

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestPostgresStore_SetPropagatesWriteError(t *testing.T) {
	pg, mock := newMockPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents")).
		WillReturnError(assert.AnError)

	err := pg.Set(context.Background(), "applicants", "id-1", Document{"firstName": "John"})

	assert.Error(t, err)
}
