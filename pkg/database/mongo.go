package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoConfig MongoDB 配置
type MongoConfig struct {
	ServiceName string        // 服务名称，用于日志标识
	URI         string        // 连接串，例如 mongodb://localhost:27017
	Database    string        // 数据库名称
	Timeout     time.Duration // 连接与 ping 超时
	MaxPoolSize uint64
	Logger      *zap.Logger
}

// MongoClient 持有客户端与默认数据库
type MongoClient struct {
	*mongo.Client
	DB *mongo.Database
}

// InitMongo 初始化 MongoDB 连接
func InitMongo(config *MongoConfig) (*MongoClient, error) {
	if config == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	setMongoDefaults(config)

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.URI).
		SetMaxPoolSize(config.MaxPoolSize).
		SetAppName(config.ServiceName)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("连接 MongoDB 失败: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB ping 失败: %w", err)
	}

	config.Logger.Info("MongoDB连接成功",
		zap.String("service", config.ServiceName),
		zap.String("database", config.Database),
	)

	return &MongoClient{Client: client, DB: client.Database(config.Database)}, nil
}

// Close 断开连接
func (c *MongoClient) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}

func setMongoDefaults(c *MongoConfig) {
	if c.ServiceName == "" {
		c.ServiceName = "unknown-service"
	}
	if c.URI == "" {
		c.URI = "mongodb://localhost:27017"
	}
	if c.Database == "" {
		c.Database = "discussion_board"
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = 100
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}
