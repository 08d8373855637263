package persistent

import (
	"context"
	"testing"
	"time"

	"media-feed/internal/entity"
	"media-feed/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive for the whole test
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.PostModel{}))
	return db
}

func TestPostRepository_Create(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))

	post := &entity.Post{
		Caption:  "hello",
		URL:      "https://cdn/x.jpg",
		FileType: entity.FileTypeImage,
		FileName: "x.jpg",
	}
	require.NoError(t, repo.Create(context.Background(), post))

	_, err := uuid.Parse(post.ID)
	assert.NoError(t, err)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, "hello", post.Caption)

	stored, err := repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.URL, stored.URL)
	assert.Equal(t, post.FileType, stored.FileType)
	assert.Equal(t, post.FileName, stored.FileName)
}

func TestPostRepository_CreateEmptyCaption(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))

	post := &entity.Post{URL: "https://cdn/v.mp4", FileType: entity.FileTypeVideo, FileName: "v.mp4"}
	require.NoError(t, repo.Create(context.Background(), post))

	stored, err := repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "", stored.Caption)
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, caption := range []string{"first", "second", "third"} {
		post := &entity.Post{
			Caption:   caption,
			URL:       "https://cdn/" + caption,
			FileType:  entity.FileTypeImage,
			FileName:  caption + ".jpg",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, post))
	}

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Caption)
	assert.Equal(t, "second", posts[1].Caption)
	assert.Equal(t, "first", posts[2].Caption)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt))
	}
}

func TestPostRepository_ListEmpty(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))

	post, err := repo.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, entity.ErrPostNotFound)
	assert.Nil(t, post)
}

func TestPostRepository_Delete(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))
	ctx := context.Background()

	post := &entity.Post{URL: "https://cdn/x.jpg", FileType: entity.FileTypeImage, FileName: "x.jpg"}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, entity.ErrPostNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, post.ID), entity.ErrPostNotFound)
}

func TestMapper_RoundTrip(t *testing.T) {
	now := time.Now().UTC()
	post := &entity.Post{
		ID:        uuid.New().String(),
		Caption:   "c",
		URL:       "u",
		FileType:  entity.FileTypePhoto,
		FileName:  "f",
		CreatedAt: now,
	}

	assert.Equal(t, post, ToPostEntity(ToPostModel(post)))
	assert.Nil(t, ToPostEntity(nil))
	assert.Nil(t, ToPostModel(nil))
}
