package cart

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "booking_cart:s1")
	assert.ErrorIs(t, err, ErrNotFound)

	value := []byte(`{"items":[]}`)
	require.NoError(t, store.Set(ctx, "booking_cart:s1", value))
	value[0] = 'X'

	got, err := store.Get(ctx, "booking_cart:s1")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(got))

	require.NoError(t, store.Set(ctx, "booking_cart:s1", []byte(`{"items":[{"id":"a"}]}`)))
	got, err = store.Get(ctx, "booking_cart:s1")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[{"id":"a"}]}`, string(got))

	require.NoError(t, store.Delete(ctx, "booking_cart:s1"))
	require.NoError(t, store.Delete(ctx, "booking_cart:s1"))
	_, err = store.Get(ctx, "booking_cart:s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM client_state WHERE key = $1")).
		WithArgs("booking_cart:s1").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"items":[]}`)))

	got, err := repo.Get(context.Background(), "booking_cart:s1")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM client_state")).
		WithArgs("last_booking_order:s1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "last_booking_order:s1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetDBError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM client_state")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Get(context.Background(), "booking_cart:s1")
	assert.ErrorIs(t, err, ErrScanRow)
}

func TestRepository_SetUpserts(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO client_state (key,value,updated_at) VALUES ($1,$2,NOW()) ON CONFLICT (key) DO UPDATE")).
		WithArgs("booking_cart:s1", `{"items":[]}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(context.Background(), "booking_cart:s1", []byte(`{"items":[]}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO client_state")).
		WillReturnError(errors.New("disk full"))

	err := repo.Set(context.Background(), "booking_cart:s1", []byte(`{}`))
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM client_state WHERE key = $1")).
		WithArgs("booking_cart:s1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "booking_cart:s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "petcafe:", time.Hour)

	_, err := store.Get(context.Background(), "booking_cart:s1")
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrNotFound)

	err = store.Set(context.Background(), "booking_cart:s1", []byte(`{}`))
	assert.ErrorIs(t, err, ErrExecQuery)
}
