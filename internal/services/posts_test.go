package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/petsocial/backend/internal/repositories/memory"
	"github.com/anonto42/petsocial/backend/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestFeed(t *testing.T) *PostFeed {
	t.Helper()
	return NewPostFeed(memory.NewPostRepo())
}

func TestPostFeed_CreateRequiresText(t *testing.T) {
	feed := newTestFeed(t)

	_, err := feed.Create(context.Background(), 1, "Ana", "   ")

	var verr *validators.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []validators.FieldError{{Param: "text", Msg: "Text is required"}}, verr.Errors)
}

func TestPostFeed_DatesUseMillisecondPrecision(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)
	feed.now = func() time.Time { return at }
	want := time.Date(2024, 5, 1, 12, 0, 0, 123000000, time.UTC)

	post, err := feed.Create(ctx, 1, "Ana", "hello")
	require.NoError(t, err)
	assert.Equal(t, want, post.Date)

	stored, err := feed.GetByID(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, post.Date, stored.Date)

	likes, err := feed.Like(ctx, post.ID.Hex(), 2)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, want, likes[0].Date)
}

func TestPostFeed_CreateStoresAuthorAndEmptyLikes(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()

	post, err := feed.Create(ctx, 7, "Ana", "hello")
	require.NoError(t, err)
	assert.False(t, post.ID.IsZero())
	assert.Equal(t, uint(7), post.UserID)
	assert.Equal(t, "Ana", post.Name)
	assert.NotNil(t, post.Likes)
	assert.Empty(t, post.Likes)

	got, err := feed.GetByID(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
}

func TestPostFeed_ListNewestFirstRegardlessOfInsertionOrder(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// Inserted middle, oldest, newest
	for _, offset := range []time.Duration{time.Hour, 0, 2 * time.Hour} {
		at := base.Add(offset)
		feed.now = func() time.Time { return at }
		_, err := feed.Create(ctx, 1, "Ana", at.Format(time.RFC3339))
		require.NoError(t, err)
	}

	posts, err := feed.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, base.Add(2*time.Hour), posts[0].Date)
	assert.Equal(t, base.Add(time.Hour), posts[1].Date)
	assert.Equal(t, base, posts[2].Date)

	paged, err := feed.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, base.Add(time.Hour), paged[0].Date)
}

func TestPostFeed_ListByUser(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()

	_, err := feed.Create(ctx, 1, "Ana", "mine")
	require.NoError(t, err)
	_, err = feed.Create(ctx, 2, "Bo", "theirs")
	require.NoError(t, err)

	posts, err := feed.ListByUser(ctx, 2, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "theirs", posts[0].Text)
}

func TestPostFeed_GetByIDUnknownOrMalformed(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()

	_, err := feed.GetByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = feed.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostFeed_DeleteOwnerOnly(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()

	post, err := feed.Create(ctx, 1, "Ana", "hello")
	require.NoError(t, err)
	id := post.ID.Hex()

	assert.ErrorIs(t, feed.Delete(ctx, id, 2), ErrForbidden)

	_, err = feed.GetByID(ctx, id)
	require.NoError(t, err, "post must survive a forbidden delete")

	require.NoError(t, feed.Delete(ctx, id, 1))

	_, err = feed.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, feed.Delete(ctx, id, 1), ErrNotFound)
}

func TestPostFeed_LikeUnlike(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()

	post, err := feed.Create(ctx, 1, "Ana", "hello")
	require.NoError(t, err)
	id := post.ID.Hex()

	likes, err := feed.Like(ctx, id, 2)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, uint(2), likes[0].User)

	_, err = feed.Like(ctx, id, 2)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	likes, err = feed.Unlike(ctx, id, 2)
	require.NoError(t, err)
	assert.Empty(t, likes)

	likes, err = feed.Like(ctx, id, 2)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestPostFeed_LikesAreMostRecentFirst(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()

	post, err := feed.Create(ctx, 1, "Ana", "hello")
	require.NoError(t, err)
	id := post.ID.Hex()

	for _, u := range []uint{2, 3, 4} {
		_, err := feed.Like(ctx, id, u)
		require.NoError(t, err)
	}

	likes, err := feed.Unlike(ctx, id, 3)
	require.NoError(t, err)
	require.Len(t, likes, 2)
	assert.Equal(t, uint(4), likes[0].User)
	assert.Equal(t, uint(2), likes[1].User)
}

func TestPostFeed_UnlikeWithoutLike(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()

	post, err := feed.Create(ctx, 1, "Ana", "hello")
	require.NoError(t, err)

	_, err = feed.Unlike(ctx, post.ID.Hex(), 5)
	assert.ErrorIs(t, err, ErrNotLiked)
}

func TestPostFeed_LikeMissingPost(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()

	_, err := feed.Like(ctx, primitive.NewObjectID().Hex(), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = feed.Unlike(ctx, primitive.NewObjectID().Hex(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
