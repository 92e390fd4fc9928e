package discussion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	discussionModel "terminal-terrace/discussion-board/internal/model/discussion"
	"terminal-terrace/discussion-board/internal/model/user"
	"terminal-terrace/discussion-board/internal/testutils"
)

func setupMongoRepository(t *testing.T) (DiscussionRepository, *mongo.Database) {
	t.Helper()

	client := testutils.SetupTestMongo(t)
	require.NoError(t, MigrateMongo(context.Background(), client.DB))
	return NewMongoRepository(client.DB), client.DB
}

func TestMongoRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo, _ := setupMongoRepository(t)
	ctx := context.Background()

	first := Draft{Title: strPtr("one")}.NewDiscussion()
	second := Draft{Title: strPtr("two")}.NewDiscussion()
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	err := repo.Create(ctx, Draft{}.NewDiscussion())
	assert.ErrorIs(t, err, discussionModel.ErrInvalidDiscussion)
}

func TestMongoRepository_FindPopulatesAuthorAndComments(t *testing.T) {
	repo, db := setupMongoRepository(t)
	ctx := context.Background()

	_, err := db.Collection(CollectionUsers).InsertOne(ctx, user.User{ID: 7, Username: "U7"})
	require.NoError(t, err)
	authorID := uint(7)
	d := Draft{Title: strPtr("Hello"), Author: &authorID, Tags: []string{"go"}}.NewDiscussion()
	require.NoError(t, repo.Create(ctx, d))
	_, err = db.Collection(CollectionComments).InsertOne(ctx, discussionModel.Comment{
		ID:           1,
		DiscussionID: d.ID,
		AuthorID:     7,
		Content:      "nice",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "U7", found.AuthorName())
	assert.Equal(t, []string{"go"}, []string(found.Tags))
	require.Len(t, found.Comments, 1)
	assert.Equal(t, "nice", found.Comments[0].Content)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "U7", all[0].AuthorName())

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrDiscussionNotFound)
}

func TestMongoRepository_UpdateIncrementDelete(t *testing.T) {
	repo, _ := setupMongoRepository(t)
	ctx := context.Background()

	authorID := uint(7)
	d := Draft{Title: strPtr("Old"), Description: strPtr("Desc"), Author: &authorID}.NewDiscussion()
	require.NoError(t, repo.Create(ctx, d))

	updated, err := repo.UpdateByID(ctx, d.ID, Draft{Title: strPtr("New"), Tags: []string{"a"}}.UpdateFields())
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "Desc", updated.Description)
	assert.Equal(t, uint(7), updated.AuthorID)
	assert.Equal(t, []string{"a"}, []string(updated.Tags))

	_, err = repo.UpdateByID(ctx, d.ID, Draft{Title: strPtr("")}.UpdateFields())
	assert.ErrorIs(t, err, discussionModel.ErrInvalidDiscussion)

	_, err = repo.UpdateByID(ctx, 999, Draft{Title: strPtr("x")}.UpdateFields())
	assert.ErrorIs(t, err, ErrDiscussionNotFound)

	require.NoError(t, repo.IncrementViews(ctx, d.ID))
	require.NoError(t, repo.IncrementViews(ctx, d.ID))
	found, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), found.Views)
	assert.ErrorIs(t, repo.IncrementViews(ctx, 999), ErrDiscussionNotFound)

	require.NoError(t, repo.DeleteByID(ctx, d.ID))
	require.NoError(t, repo.DeleteByID(ctx, d.ID))
	_, err = repo.FindByID(ctx, d.ID)
	assert.ErrorIs(t, err, ErrDiscussionNotFound)
}

func TestMongoRepository_UpdateSkipsStaleRead(t *testing.T) {
	repo, _ := setupMongoRepository(t)
	ctx := context.Background()

	d := Draft{Title: strPtr("Old")}.NewDiscussion()
	require.NoError(t, repo.Create(ctx, d))
	current, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)

	mongoRepo := repo.(*mongoRepository)
	fields := Draft{Title: strPtr("Stale")}.UpdateFields()
	_, ok, err := mongoRepo.compareAndSet(ctx, d.ID, current.UpdatedAt.Add(-time.Hour), fields)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old", found.Title)

	updated, ok, err := mongoRepo.compareAndSet(ctx, d.ID, current.UpdatedAt, Draft{Title: strPtr("Fresh")}.UpdateFields())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Fresh", updated.Title)
	assert.False(t, updated.UpdatedAt.Before(current.UpdatedAt))
}
