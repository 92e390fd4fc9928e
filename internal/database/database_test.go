package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"terminal-terrace/discussion-board/config"
	"terminal-terrace/discussion-board/internal/flash"
	"terminal-terrace/discussion-board/internal/testutils"
)

func TestInit_UnsupportedDriver(t *testing.T) {
	conf := &config.AppConfig{Database: config.DatabaseConfig{Driver: "sqlite"}}

	_, err := Init(context.Background(), conf, zap.NewNop())
	assert.ErrorContains(t, err, "sqlite")
}

func TestStores_FlashStore(t *testing.T) {
	stores := &Stores{}
	_, ok := stores.FlashStore(time.Minute).(*flash.MemoryStore)
	assert.True(t, ok)

	client := testutils.SetupTestRedis(t)
	if client == nil {
		t.Skip("Redis not available")
	}
	stores.Redis = client
	_, ok = stores.FlashStore(time.Minute).(*flash.RedisStore)
	assert.True(t, ok)
	assert.NoError(t, stores.Ping(context.Background()))
}

func TestStores_EmptyIsHealthy(t *testing.T) {
	stores := &Stores{}

	assert.NoError(t, stores.Ping(context.Background()))
	stores.Close(context.Background())
}

func TestStores_MongoRepository(t *testing.T) {
	client := testutils.SetupTestMongo(t)
	stores := &Stores{Mongo: client}

	require.NotNil(t, stores.DiscussionRepository())
	assert.NoError(t, stores.Ping(context.Background()))
}
