package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"holoframe-backend/internal/model"
	"holoframe-backend/internal/repository"
	"holoframe-backend/internal/storage"
)

const DemoUsername = "demo"

var ErrUserNotInitialized = errors.New("user not initialized")

// StaticRoutePrefix is where uploaded files are served from.
const StaticRoutePrefix = "/api/static/"

type GalleryCache interface {
	GetGallery(ctx context.Context, link string) ([]model.Photo, bool, error)
	SetGallery(ctx context.Context, link string, photos []model.Photo) error
	DeleteGallery(ctx context.Context, link string) error
}

type PhotoEventPublisher interface {
	Publish(ctx context.Context, event model.PhotoUploaded) error
}

type GalleryService struct {
	userRepo      *repository.UserRepository
	photoRepo     *repository.PhotoRepository
	files         *storage.LocalStore
	cache         GalleryCache
	publisher     PhotoEventPublisher
	publicBaseURL string
	now           func() time.Time
}

// BootstrapResult is the payload of a bootstrap call. User is nil on the
// public path.
type BootstrapResult struct {
	User   *model.User   `json:"user"`
	Photos []model.Photo `json:"photos"`
}

type UploadInput struct {
	Filename string
	Content  []byte
	Caption  string
	IsPublic bool
}

// NewGalleryService wires the gallery use cases. cache and publisher are
// optional and may be nil.
func NewGalleryService(
	userRepo *repository.UserRepository,
	photoRepo *repository.PhotoRepository,
	files *storage.LocalStore,
	cache GalleryCache,
	publisher PhotoEventPublisher,
	publicBaseURL string,
) *GalleryService {
	return &GalleryService{
		userRepo:      userRepo,
		photoRepo:     photoRepo,
		files:         files,
		cache:         cache,
		publisher:     publisher,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

// Bootstrap serves the public gallery of link, or the demo session when link
// is empty.
func (s *GalleryService) Bootstrap(ctx context.Context, link string) (*BootstrapResult, error) {
	if link != "" {
		photos, err := s.PublicGallery(ctx, link)
		if err != nil {
			return nil, err
		}
		return &BootstrapResult{User: nil, Photos: photos}, nil
	}

	demo, err := s.EnsureDemoUser(ctx)
	if err != nil {
		return nil, err
	}
	photos, err := s.photoRepo.ListByUser(ctx, demo.ID, false)
	if err != nil {
		return nil, err
	}
	return &BootstrapResult{User: demo, Photos: photos}, nil
}

// EnsureDemoUser returns the demo user, seeding it on first use.
func (s *GalleryService) EnsureDemoUser(ctx context.Context) (*model.User, error) {
	demo, err := s.userRepo.GetByUsername(ctx, DemoUsername)
	if err != nil || demo != nil {
		return demo, err
	}

	seed, err := model.NewUser(model.UserFields{
		Name:     "Demo User",
		Username: DemoUsername,
		Email:    "demo@example.com",
		Bio:      "Holographic curator",
		Link:     "demo",
	})
	if err != nil {
		return nil, err
	}
	return s.userRepo.CreateIfAbsent(ctx, seed)
}

// PublicGallery lists the public photos of the user owning link, newest
// first. An unknown link yields an empty list.
func (s *GalleryService) PublicGallery(ctx context.Context, link string) ([]model.Photo, error) {
	if s.cache != nil {
		photos, ok, err := s.cache.GetGallery(ctx, link)
		if err != nil {
			log.Printf("read gallery cache for %q failed: %v", link, err)
		} else if ok {
			return photos, nil
		}
	}

	photos, found, err := s.loadPublicGallery(ctx, link)
	if err != nil {
		return nil, err
	}
	if found && s.cache != nil {
		if err := s.cache.SetGallery(ctx, link, photos); err != nil {
			log.Printf("write gallery cache for %q failed: %v", link, err)
		}
	}
	return photos, nil
}

// WarmGallery reloads the public gallery of link into the cache.
func (s *GalleryService) WarmGallery(ctx context.Context, link string) error {
	if s.cache == nil {
		return nil
	}
	photos, found, err := s.loadPublicGallery(ctx, link)
	if err != nil || !found {
		return err
	}
	return s.cache.SetGallery(ctx, link, photos)
}

func (s *GalleryService) loadPublicGallery(ctx context.Context, link string) ([]model.Photo, bool, error) {
	user, err := s.userRepo.GetByLink(ctx, link)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return []model.Photo{}, false, nil
	}
	photos, err := s.photoRepo.ListByUser(ctx, user.ID, true)
	if err != nil {
		return nil, false, err
	}
	return photos, true, nil
}

// UploadPhoto stores the file and records it as a photo of the demo user.
// The file is written before the owner lookup, so a failed lookup leaves it
// on disk.
func (s *GalleryService) UploadPhoto(ctx context.Context, in UploadInput) (*model.Photo, error) {
	uploadedAt := s.now().UTC()
	name := storage.GenerateName(uploadedAt, in.Filename)
	if err := s.files.Save(name, in.Content); err != nil {
		return nil, err
	}

	demo, err := s.userRepo.GetByUsername(ctx, DemoUsername)
	if err != nil {
		return nil, err
	}
	if demo == nil {
		return nil, ErrUserNotInitialized
	}

	isPublic := in.IsPublic
	photo, err := model.NewPhoto(model.PhotoFields{
		ImageURL: s.imageURL(name),
		Caption:  in.Caption,
		UserID:   demo.ID,
		IsPublic: &isPublic,
		Date:     uploadedAt,
	})
	if err != nil {
		return nil, err
	}

	id, err := s.photoRepo.Create(ctx, photo)
	if err != nil {
		return nil, err
	}
	stored, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("photo %s missing after insert", id)
	}

	s.notifyUpload(ctx, demo, stored)
	return stored, nil
}

func (s *GalleryService) notifyUpload(ctx context.Context, owner *model.User, photo *model.Photo) {
	if s.cache != nil {
		if err := s.cache.DeleteGallery(ctx, owner.Link); err != nil {
			log.Printf("invalidate gallery cache for %q failed: %v", owner.Link, err)
		}
	}
	if s.publisher != nil {
		event := model.PhotoUploaded{
			PhotoID:  photo.ID,
			UserID:   owner.ID,
			Link:     owner.Link,
			IsPublic: photo.IsPublic,
			Date:     photo.Date,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.Printf("publish photo event %s failed: %v", photo.ID, err)
		}
	}
}

func (s *GalleryService) imageURL(name string) string {
	return s.publicBaseURL + StaticRoutePrefix + url.PathEscape(name)
}
