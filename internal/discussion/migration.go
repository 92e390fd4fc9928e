package discussion

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MigrateMongo 创建 MongoDB 索引
// 关系库的表结构由 model.InitTable 维护
func MigrateMongo(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionDiscussions).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(CollectionComments).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "discussion_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
