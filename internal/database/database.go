// Package database 按配置初始化讨论区使用的存储
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"terminal-terrace/discussion-board/config"
	"terminal-terrace/discussion-board/internal/discussion"
	"terminal-terrace/discussion-board/internal/flash"
	"terminal-terrace/discussion-board/internal/model"
	"terminal-terrace/discussion-board/pkg/database"
)

const serviceName = "discussion-board"

// Stores 运行时使用的存储连接
// Postgres 与 Mongo 二选一，Redis 仅在 flash 使用 redis 时连接
type Stores struct {
	Postgres *gorm.DB
	Mongo    *database.MongoClient
	Redis    *database.RedisClient
}

// Init 按配置连接存储并完成迁移
func Init(ctx context.Context, conf *config.AppConfig, logger *zap.Logger) (*Stores, error) {
	stores := &Stores{}

	switch conf.Database.Driver {
	case config.DriverPostgres:
		db, err := initPostgres(conf.Database, logger)
		if err != nil {
			return nil, err
		}
		stores.Postgres = db
	case config.DriverMongo:
		client, err := initMongo(ctx, conf.Mongo, logger)
		if err != nil {
			return nil, err
		}
		stores.Mongo = client
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", conf.Database.Driver)
	}

	if conf.Flash.Store == config.FlashStoreRedis {
		client, err := database.InitRedis(&database.RedisConfig{
			ServiceName: serviceName,
			Host:        conf.Redis.Host,
			Port:        conf.Redis.Port,
			Password:    conf.Redis.Password,
			DB:          conf.Redis.DB,
			PoolSize:    conf.Redis.PoolSize,
			Logger:      logger,
		})
		if err != nil {
			stores.Close(ctx)
			return nil, err
		}
		stores.Redis = client
	}

	return stores, nil
}

func initPostgres(conf config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	// 设置默认日志级别
	logLevel := conf.LogLevel
	if logLevel == "" {
		logLevel = "warn"
	}

	db, err := database.InitPostgres(&database.PostgresConfig{
		ServiceName:     serviceName,
		Username:        conf.Username,
		Password:        conf.Password,
		Host:            conf.Host,
		Port:            conf.Port,
		Database:        conf.Database,
		SSLMode:         conf.SSLMode,
		LogLevel:        logLevel,
		MaxIdleConns:    conf.MaxIdleConns,
		MaxOpenConns:    conf.MaxOpenConns,
		ConnMaxLifetime: time.Duration(conf.MaxLifetime) * time.Second,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	// 初始化数据库表
	if err := model.InitTable(db); err != nil {
		return nil, fmt.Errorf("初始化数据库表失败: %w", err)
	}
	return db, nil
}

func initMongo(ctx context.Context, conf config.MongoConfig, logger *zap.Logger) (*database.MongoClient, error) {
	client, err := database.InitMongo(&database.MongoConfig{
		ServiceName: serviceName,
		URI:         conf.URI,
		Database:    conf.Database,
		Timeout:     time.Duration(conf.Timeout) * time.Second,
		MaxPoolSize: conf.MaxPoolSize,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	if err := discussion.MigrateMongo(ctx, client.DB); err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("创建 MongoDB 索引失败: %w", err)
	}
	return client, nil
}

// DiscussionRepository 当前后端对应的讨论帖存储
func (s *Stores) DiscussionRepository() discussion.DiscussionRepository {
	if s.Mongo != nil {
		return discussion.NewMongoRepository(s.Mongo.DB)
	}
	return discussion.NewDiscussionRepository(s.Postgres)
}

// FlashStore 有 Redis 时使用 Redis，否则退回进程内存储
func (s *Stores) FlashStore(ttl time.Duration) flash.Store {
	if s.Redis != nil {
		return flash.NewRedisStore(s.Redis.Client, ttl)
	}
	return flash.NewMemoryStore()
}

// Ping 健康检查
func (s *Stores) Ping(ctx context.Context) error {
	var errs []error
	if s.Postgres != nil {
		if sqlDB, err := s.Postgres.DB(); err != nil {
			errs = append(errs, err)
		} else if err := sqlDB.PingContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}
	if s.Mongo != nil {
		if err := s.Mongo.Ping(ctx, nil); err != nil {
			errs = append(errs, fmt.Errorf("mongodb: %w", err))
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close 关闭全部连接
func (s *Stores) Close(ctx context.Context) {
	if s.Postgres != nil {
		if sqlDB, err := s.Postgres.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if s.Mongo != nil {
		_ = s.Mongo.Close(ctx)
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
}
