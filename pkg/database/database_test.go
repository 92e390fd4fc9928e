package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetDefaults(t *testing.T) {
	c := &PostgresConfig{}
	setDefaults(c)

	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 5432, c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 10, c.MaxIdleConns)
	assert.Equal(t, 100, c.MaxOpenConns)
	assert.Equal(t, time.Hour, c.ConnMaxLifetime)
	assert.NotNil(t, c.Logger)
}

func TestBuildDSN(t *testing.T) {
	c := &PostgresConfig{
		Host:     "db",
		Port:     5433,
		Username: "board",
		Password: "secret",
		Database: "discussions",
	}
	assert.Equal(t, "host=db user=board password=secret dbname=discussions port=5433 sslmode=disable", BuildDSN(c))

	c.SSLMode = true
	assert.Contains(t, BuildDSN(c), "sslmode=require")
}

func TestRedisAndMongoDefaults(t *testing.T) {
	r := &RedisConfig{}
	setRedisDefaults(r)
	assert.Equal(t, 6379, r.Port)
	assert.Equal(t, 10, r.PoolSize)
	assert.Equal(t, 5, r.MinIdleConns)

	m := &MongoConfig{}
	setMongoDefaults(m)
	assert.Equal(t, "mongodb://localhost:27017", m.URI)
	assert.Equal(t, "discussion_board", m.Database)
	assert.Equal(t, 10*time.Second, m.Timeout)
	assert.Equal(t, uint64(100), m.MaxPoolSize)

	sized := &MongoConfig{MaxPoolSize: 25}
	setMongoDefaults(sized)
	assert.Equal(t, uint64(25), sized.MaxPoolSize)
}

func TestInitRejectsNilConfig(t *testing.T) {
	_, err := InitPostgres(nil)
	assert.Error(t, err)
	_, err = InitRedis(nil)
	assert.Error(t, err)
	_, err = InitMongo(nil)
	assert.Error(t, err)
}
