package cache

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_Find(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM cache_entries WHERE cache_key = $1`)).
		WithArgs("detail:p1").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":"p1"}`)))

	s := NewPostgresStore(mockPool)
	v, ok, err := s.Find(context.Background(), "detail:p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":"p1"}`, string(v))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresStore_FindMiss(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM cache_entries`)).
		WithArgs("detail:none").
		WillReturnError(pgx.ErrNoRows)

	v, ok, err := NewPostgresStore(mockPool).Find(context.Background(), "detail:none")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresStore_FindError(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM cache_entries`)).
		WithArgs("k").
		WillReturnError(errors.New("conn reset"))

	_, ok, err := NewPostgresStore(mockPool).Find(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestPostgresStore_InsertIgnoresConflicts(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (cache_key) DO NOTHING`)).
		WithArgs(pgxmock.AnyArg(), "search:transit:x", []byte(`[]`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err = NewPostgresStore(mockPool).Insert(context.Background(), "search:transit:x", []byte(`[]`))
	require.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRedisStore_FirstWriteWins(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s := NewRedisStore(client, "test")
	ctx := context.Background()

	_, ok, err := s.Find(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Insert(ctx, "k", []byte("one")))
	require.NoError(t, s.Insert(ctx, "k", []byte("two")))

	v, ok, err := s.Find(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("one"), v)

	raw, err := mr.Get("test:k")
	require.NoError(t, err)
	assert.Equal(t, "one", raw)
	assert.Zero(t, mr.TTL("test:k"))
}

func TestNewRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
