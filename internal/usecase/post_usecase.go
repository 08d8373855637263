package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"media-feed/internal/entity"
	"media-feed/internal/repo/persistent"
	"media-feed/pkg/logger"
	"media-feed/pkg/queue"
	"media-feed/pkg/storage"

	"github.com/google/uuid"
)

type PostUseCase interface {
	CreatePost(ctx context.Context, file *multipart.FileHeader, caption string) (*entity.Post, error)
	ListPosts(ctx context.Context) ([]*entity.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

// EventPublisher is notified after posts are committed or removed.
type EventPublisher interface {
	PublishPostEvent(ctx context.Context, event queue.PostEvent) error
}

type Options struct {
	// StagingDir holds uploads while they are forwarded to the gateway.
	// Empty means the OS temp dir.
	StagingDir string
	UploadTags []string
}

type postUseCase struct {
	postRepo  persistent.PostRepository
	gateway   storage.Gateway
	publisher EventPublisher
	opts      Options
	logger    *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	gateway storage.Gateway,
	publisher EventPublisher,
	opts Options,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:  postRepo,
		gateway:   gateway,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
	}
}

func (uc *postUseCase) CreatePost(ctx context.Context, file *multipart.FileHeader, caption string) (*entity.Post, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	staged, err := os.CreateTemp(uc.opts.StagingDir, "upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}
	defer func() {
		staged.Close()
		if err := os.Remove(staged.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			uc.logger.Warn("Failed to remove staging file %s: %v", staged.Name(), err)
		}
	}()

	size, err := io.Copy(staged, src)
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	if _, err := staged.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind staging file: %w", err)
	}

	contentType := file.Header.Get("Content-Type")
	result, err := uc.gateway.Upload(ctx, staged, size, file.Filename, storage.UploadOptions{
		UseUniqueFileName: true,
		Tags:              uc.opts.UploadTags,
		ContentType:       contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}
	if result.HTTPStatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gateway returned status %d", entity.ErrUploadRejected, result.HTTPStatusCode)
	}

	post := &entity.Post{
		Caption:  caption,
		URL:      result.URL,
		FileType: entity.FileTypeFromContentType(contentType),
		FileName: result.Name,
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		uc.discardUpload(result.FileID)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.publish(ctx, queue.PostEvent{
		Type:     queue.EventPostCreated,
		PostID:   post.ID,
		URL:      post.URL,
		FileType: string(post.FileType),
		FileName: post.FileName,
	})

	return post, nil
}

func (uc *postUseCase) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	return uc.postRepo.List(ctx)
}

func (uc *postUseCase) DeletePost(ctx context.Context, postID string) error {
	id, err := uuid.Parse(postID)
	if err != nil {
		return fmt.Errorf("%w: %q", entity.ErrInvalidPostID, postID)
	}

	post, err := uc.postRepo.GetByID(ctx, id.String())
	if err != nil {
		return err
	}

	if err := uc.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	uc.publish(ctx, queue.PostEvent{Type: queue.EventPostDeleted, PostID: post.ID})
	return nil
}

// discardUpload removes an object whose metadata could not be persisted.
// It runs detached from the request context, which may already be done.
func (uc *postUseCase) discardUpload(fileID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := uc.gateway.Delete(ctx, fileID); err != nil {
		uc.logger.Error("Failed to discard orphaned upload %s: %v", fileID, err)
	}
}

func (uc *postUseCase) publish(ctx context.Context, event queue.PostEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishPostEvent(ctx, event); err != nil {
		uc.logger.Error("Failed to publish %s event for post %s: %v", event.Type, event.PostID, err)
	}
}
