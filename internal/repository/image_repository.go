package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"aigallery/internal/models"
)

var ErrImageNotFound = errors.New("image not found")

// ImageRepository holds the generated image collection in memory. Images are
// never deleted; only their counters and comments change.
type ImageRepository struct {
	mu     sync.RWMutex
	images map[int]*models.Image
}

func NewImageRepository() *ImageRepository {
	return &ImageRepository{images: make(map[int]*models.Image)}
}

func (r *ImageRepository) Create(ctx context.Context, image models.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.images[image.ID]; exists {
		return errors.New("image already exists")
	}
	stored := image.Clone()
	r.images[image.ID] = &stored
	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id int) (models.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	image, ok := r.images[id]
	if !ok {
		return models.Image{}, ErrImageNotFound
	}
	return image.Clone(), nil
}

// List returns every image in generation (id) order.
func (r *ImageRepository) List(ctx context.Context) ([]models.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	images := make([]models.Image, 0, len(r.images))
	for _, image := range r.images {
		images = append(images, image.Clone())
	}
	sort.Slice(images, func(i, j int) bool { return images[i].ID < images[j].ID })
	return images, nil
}

// Update applies fn to the stored image under the write lock and returns the
// updated copy. If fn fails the image is left untouched.
func (r *ImageRepository) Update(ctx context.Context, id int, fn func(*models.Image) error) (models.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	image, ok := r.images[id]
	if !ok {
		return models.Image{}, ErrImageNotFound
	}

	draft := image.Clone()
	if err := fn(&draft); err != nil {
		return models.Image{}, err
	}
	*image = draft
	return draft.Clone(), nil
}

func (r *ImageRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.images)
}
