package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/martijn/todolist/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client, err := NewClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSessionRepository_CreateFindDelete(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewSessionRepository(client)
	ctx := context.Background()

	session := domain.NewSession(42, time.Hour)
	require.NoError(t, repo.Create(ctx, session))
	assert.True(t, mr.Exists("session:"+session.ID))

	found, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), found.UserID)
	assert.WithinDuration(t, session.ExpiresAt, found.ExpiresAt, time.Second)

	require.NoError(t, repo.Delete(ctx, session.ID))
	_, err = repo.FindByID(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, repo.Delete(ctx, session.ID))
}

func TestSessionRepository_ExpiresWithTTL(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewSessionRepository(client)
	ctx := context.Background()

	session := domain.NewSession(7, time.Minute)
	require.NoError(t, repo.Create(ctx, session))

	mr.FastForward(2 * time.Minute)

	_, err := repo.FindByID(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, repo.DeleteExpired(ctx))
}

func TestSessionRepository_RejectsExpiredSession(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewSessionRepository(client)

	err := repo.Create(context.Background(), domain.NewSession(1, -time.Second))
	assert.Error(t, err)
}

func TestNewClient_URL(t *testing.T) {
	mr, _ := setupRedis(t)

	client, err := NewClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer client.Close()

	_, err = NewClient(context.Background(), "redis://%zz")
	assert.Error(t, err)
}
