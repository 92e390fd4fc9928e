package discussion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	discussionModel "terminal-terrace/discussion-board/internal/model/discussion"
	"terminal-terrace/discussion-board/internal/testutils"
)

func TestDiscussionRepository_CreateAndFind(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	author := testutils.CreateTestUser(db, testutils.WithUsername("alice"))
	d := Draft{Title: strPtr("Hello"), Author: &author.ID, Tags: []string{"go"}}.NewDiscussion()
	require.NoError(t, repo.Create(ctx, d))
	require.NotZero(t, d.ID)
	testutils.CreateTestComment(db, d.ID, author.ID, "nice")

	found, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", found.Title)
	assert.Equal(t, []string{"go"}, []string(found.Tags))
	assert.Equal(t, "alice", found.AuthorName())
	require.Len(t, found.Comments, 1)
	assert.Equal(t, "nice", found.Comments[0].Content)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)
	assert.NotNil(t, all[0].Author)
}

func TestDiscussionRepository_CreateInvalid(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewDiscussionRepository(db)

	err := repo.Create(context.Background(), Draft{}.NewDiscussion())
	assert.ErrorIs(t, err, discussionModel.ErrInvalidDiscussion)
}

func TestDiscussionRepository_UpdateByID(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	author := testutils.CreateTestUser(db)
	existing := testutils.CreateTestDiscussion(db, author.ID, testutils.WithTitle("Old"))

	updated, err := repo.UpdateByID(ctx, existing.ID, Draft{Title: strPtr("New")}.UpdateFields())
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, existing.Description, updated.Description)
	assert.Equal(t, author.ID, updated.AuthorID)

	_, err = repo.UpdateByID(ctx, existing.ID+1000, Draft{Title: strPtr("New")}.UpdateFields())
	assert.ErrorIs(t, err, ErrDiscussionNotFound)
}

func TestDiscussionRepository_IncrementViews(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	author := testutils.CreateTestUser(db)
	existing := testutils.CreateTestDiscussion(db, author.ID, testutils.WithViews(5))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementViews(ctx, existing.ID))
	}

	found, err := repo.FindByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(8), found.Views)

	assert.ErrorIs(t, repo.IncrementViews(ctx, existing.ID+1000), ErrDiscussionNotFound)
}

func TestDiscussionRepository_DeleteByID(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	author := testutils.CreateTestUser(db)
	existing := testutils.CreateTestDiscussion(db, author.ID)

	require.NoError(t, repo.DeleteByID(ctx, existing.ID))
	require.NoError(t, repo.DeleteByID(ctx, existing.ID))

	_, err := repo.FindByID(ctx, existing.ID)
	assert.ErrorIs(t, err, ErrDiscussionNotFound)
}
