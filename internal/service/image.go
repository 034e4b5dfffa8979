package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutritrack/internal/model"
	"nutritrack/internal/repository"
	"nutritrack/internal/storage"
)

// ImageListResult is the service-level DTO for paginated images.
type ImageListResult struct {
	Items []model.Image `json:"data"`
	Total int64         `json:"total"`
}

// ImageService defines the use cases for handling uploaded images.
type ImageService interface {
	// Upload uploads the content to object storage, saves metadata, and rolls back storage if the save fails.
	// - originalFilename is used only to extract extension; stored filename will be UUID + original extension.
	// - userID is optional.
	Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64, userID string) (*model.Image, error)

	// List returns images using limit/offset and a total count, optionally for one user.
	List(ctx context.Context, userID string, limit, offset int) (*ImageListResult, error)

	Get(ctx context.Context, id string) (*model.Image, error)

	// Open streams the stored bytes. The caller closes the reader.
	Open(ctx context.Context, id string) (io.ReadCloser, *model.Image, error)

	// Delete removes an image from both storage and repository.
	Delete(ctx context.Context, id string) error
}

type imageService struct {
	store storage.Storage
	repo  repository.ImageRepository
	now   func() time.Time
}

// NewImageService constructs a new ImageService.
func NewImageService(store storage.Storage, repo repository.ImageRepository) ImageService {
	return &imageService{store: store, repo: repo, now: time.Now}
}

func optionalID(s string) (*primitive.ObjectID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := parseID(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *imageService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64, userID string) (*model.Image, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	owner, err := optionalID(userID)
	if err != nil {
		return nil, err
	}

	key := storage.NewObjectKey(storage.PrefixUpload, originalFilename)
	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url, err := s.store.PublicURL(ctx, key)
	if err != nil {
		// the image stays reachable through GET /upload/:id
		slog.WarnContext(ctx, "image url unavailable", "key", key, "error", err)
		url = ""
	}

	img := &model.Image{
		UserID:      owner,
		Filename:    path.Base(key),
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		URL:         url,
		CreatedAt:   s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, img)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *imageService) List(ctx context.Context, userID string, limit, offset int) (*ImageListResult, error) {
	owner, err := optionalID(userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, owner, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ImageListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *imageService) Get(ctx context.Context, id string) (*model.Image, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	img, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return img, nil
}

func (s *imageService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Image, error) {
	img, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, img.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return rc, img, nil
}

// Delete removes the object first, then its record.
func (s *imageService) Delete(ctx context.Context, id string) error {
	img, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// keep the record when storage fails so the object can still be found
	if err := s.store.Delete(ctx, img.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, img.ID)
}
