package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/skylift/skybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheWithClient(client, time.Minute), mr
}

func TestFlightsCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	flights := []domain.Flight{
		{ID: 1, FlightNumber: "SKY-101", Type: domain.FlightTypePlane, SeatsAvailable: 100},
	}

	require.NoError(t, c.SetFlights(ctx, "1:2::plane", flights))

	got, err := c.GetFlights(ctx, "1:2::plane")
	assert.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "SKY-101", got[0].FlightNumber)
}

func TestFlightsCache_MissReturnsNil(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.GetFlights(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFlightsCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetFlights(ctx, "a", []domain.Flight{{ID: 1}}))
	require.NoError(t, c.SetFlights(ctx, "b", []domain.Flight{{ID: 2}}))

	require.NoError(t, c.InvalidateFlights(ctx))

	got, err := c.GetFlights(ctx, "a")
	assert.NoError(t, err)
	assert.Nil(t, got)
	got, err = c.GetFlights(ctx, "b")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestTokenBlacklist(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	revoked, err := c.IsTokenBlacklisted(ctx, "jti-1")
	assert.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, c.BlacklistToken(ctx, "jti-1", time.Minute))

	revoked, err = c.IsTokenBlacklisted(ctx, "jti-1")
	assert.NoError(t, err)
	assert.True(t, revoked)

	// Entry drops out when the token would have expired anyway.
	mr.FastForward(2 * time.Minute)
	revoked, err = c.IsTokenBlacklisted(ctx, "jti-1")
	assert.NoError(t, err)
	assert.False(t, revoked)
}
