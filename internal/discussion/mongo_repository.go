package discussion

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"

	discussionModel "terminal-terrace/discussion-board/internal/model/discussion"
	"terminal-terrace/discussion-board/internal/model/user"
)

// MongoDB 集合名
const (
	CollectionDiscussions = "discussions"
	CollectionComments    = "comments"
	CollectionUsers       = "users"
	CollectionCounters    = "counters"
)

const maxUpdateAttempts = 3

// mongoRepository MongoDB 实现
// ID 由 counters 集合分配，保持与关系库一致的自增整数
type mongoRepository struct {
	discussions *mongo.Collection
	comments    *mongo.Collection
	users       *mongo.Collection
	counters    *mongo.Collection
}

// NewMongoRepository 创建 MongoDB Repository 实例
func NewMongoRepository(db *mongo.Database) DiscussionRepository {
	return &mongoRepository{
		discussions: db.Collection(CollectionDiscussions),
		comments:    db.Collection(CollectionComments),
		users:       db.Collection(CollectionUsers),
		counters:    db.Collection(CollectionCounters),
	}
}

func (r *mongoRepository) Create(ctx context.Context, discussion *discussionModel.Discussion) error {
	if err := discussion.Validate(); err != nil {
		return err
	}

	id, err := r.nextID(ctx)
	if err != nil {
		return storeError(err, "allocate discussion id")
	}
	now := time.Now().UTC()
	discussion.ID = id
	discussion.CreatedAt = now
	discussion.UpdatedAt = now

	_, err = r.discussions.InsertOne(ctx, discussion)
	return storeError(err, "create discussion %d", id)
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]discussionModel.Discussion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.discussions.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, storeError(err, "list discussions")
	}

	var discussions []discussionModel.Discussion
	if err := cursor.All(ctx, &discussions); err != nil {
		return nil, storeError(err, "list discussions")
	}
	if err := r.attachAuthors(ctx, discussions); err != nil {
		return nil, storeError(err, "list discussions")
	}
	return discussions, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id uint) (*discussionModel.Discussion, error) {
	var discussion discussionModel.Discussion
	err := r.discussions.FindOne(ctx, bson.M{"_id": id}).Decode(&discussion)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDiscussionNotFound
	}
	if err != nil {
		return nil, storeError(err, "find discussion %d", id)
	}
	if err := r.populate(ctx, &discussion); err != nil {
		return nil, storeError(err, "find discussion %d", id)
	}
	return &discussion, nil
}

func (r *mongoRepository) UpdateByID(ctx context.Context, id uint, fields map[string]any) (*discussionModel.Discussion, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	// 读取、校验、条件写入；期间被他人修改则重读重试
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		current, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := applyFields(current, fields).Validate(); err != nil {
			return nil, err
		}

		updated, ok, err := r.compareAndSet(ctx, id, current.UpdatedAt, fields)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if err := r.populate(ctx, updated); err != nil {
			return nil, storeError(err, "update discussion %d", id)
		}
		return updated, nil
	}
	return nil, fmt.Errorf("update discussion %d: %w", id, ErrUpdateConflict)
}

// compareAndSet 仅当 updated_at 仍为 readAt 时写入
// ok 为 false 表示读取后记录已被修改或删除
func (r *mongoRepository) compareAndSet(ctx context.Context, id uint, readAt time.Time, fields map[string]any) (*discussionModel.Discussion, bool, error) {
	set := maps.Clone(fields)
	set["updated_at"] = time.Now().UTC()

	var updated discussionModel.Discussion
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.discussions.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "updated_at": readAt},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeError(err, "update discussion %d", id)
	}
	return &updated, true, nil
}

func (r *mongoRepository) IncrementViews(ctx context.Context, id uint) error {
	res, err := r.discussions.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{discussionModel.FieldViews: 1}},
	)
	if err != nil {
		return storeError(err, "increment views of discussion %d", id)
	}
	if res.MatchedCount == 0 {
		return ErrDiscussionNotFound
	}
	return nil
}

func (r *mongoRepository) DeleteByID(ctx context.Context, id uint) error {
	_, err := r.discussions.DeleteOne(ctx, bson.M{"_id": id})
	return storeError(err, "delete discussion %d", id)
}

func (r *mongoRepository) nextID(ctx context.Context) (uint, error) {
	var counter struct {
		Seq uint `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": CollectionDiscussions},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// populate 填充作者与评论
func (r *mongoRepository) populate(ctx context.Context, discussion *discussionModel.Discussion) error {
	author, err := r.findUser(ctx, discussion.AuthorID)
	if err != nil {
		return err
	}
	discussion.Author = author

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.comments.Find(ctx, bson.M{"discussion_id": discussion.ID}, opts)
	if err != nil {
		return err
	}
	var comments []discussionModel.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return err
	}
	discussion.Comments = comments
	return nil
}

// findUser 作者不存在时返回 nil
func (r *mongoRepository) findUser(ctx context.Context, id uint) (*user.User, error) {
	var u user.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoRepository) attachAuthors(ctx context.Context, discussions []discussionModel.Discussion) error {
	if len(discussions) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(discussions))
	seen := make(map[uint]struct{}, len(discussions))
	for _, d := range discussions {
		if _, ok := seen[d.AuthorID]; ok {
			continue
		}
		seen[d.AuthorID] = struct{}{}
		ids = append(ids, d.AuthorID)
	}

	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	var users []user.User
	if err := cursor.All(ctx, &users); err != nil {
		return err
	}

	byID := make(map[uint]*user.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range discussions {
		discussions[i].Author = byID[discussions[i].AuthorID]
	}
	return nil
}

// applyFields 把更新字段套到副本上，用于写入前校验
func applyFields(d *discussionModel.Discussion, fields map[string]any) *discussionModel.Discussion {
	cp := *d
	for k, v := range fields {
		switch k {
		case discussionModel.FieldTitle:
			cp.Title, _ = v.(string)
		case discussionModel.FieldDescription:
			cp.Description, _ = v.(string)
		case discussionModel.FieldCategory:
			cp.Category, _ = v.(string)
		case discussionModel.FieldTags:
			switch tags := v.(type) {
			case datatypes.JSONSlice[string]:
				cp.Tags = tags
			case []string:
				cp.Tags = tags
			}
		}
	}
	return &cp
}
