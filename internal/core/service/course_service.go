package service

import (
	"context"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/coursemarket/course-api/internal/core/domain"
	"github.com/coursemarket/course-api/internal/core/ports"
)

// CatalogCache abstracts the course listing cache (Redis).
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Course, bool, error)
	Set(ctx context.Context, courses []domain.Course) error
	Invalidate(ctx context.Context) error
}

type noopCache struct{}

func (noopCache) Get(context.Context) ([]domain.Course, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, []domain.Course) error        { return nil }
func (noopCache) Invalidate(context.Context) error                  { return nil }

type CourseService struct {
	repo   ports.CourseRepository
	cache  CatalogCache
	logger zerolog.Logger
}

// NewCourseService wires the catalog. A nil cache disables caching.
func NewCourseService(repo ports.CourseRepository, cache CatalogCache, logger zerolog.Logger) *CourseService {
	if cache == nil {
		cache = noopCache{}
	}
	return &CourseService{repo: repo, cache: cache, logger: logger}
}

// CreateCourse stores the payload as given and returns the stored course.
func (s *CourseService) CreateCourse(ctx context.Context, input ports.CreateCourseInput) (*domain.Course, error) {
	now := time.Now().UTC()
	course := &domain.Course{
		Title:       input.Title,
		Slug:        slug.Make(input.Title),
		Description: input.Description,
		Price:       input.Price,
		ImageLink:   input.ImageLink,
		Published:   input.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, course)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create course")
		return nil, err
	}
	s.invalidate(ctx)

	s.logger.Info().Str("course_id", created.ID).Str("slug", created.Slug).Msg("course created")
	return created, nil
}

// UpdateCourse applies a partial update. The slug follows the title.
// An update carrying no fields writes nothing and returns the stored course.
func (s *CourseService) UpdateCourse(ctx context.Context, id string, changes domain.CourseChanges) (*domain.Course, error) {
	if changes.Empty() {
		return s.repo.FindByID(ctx, id)
	}

	var newSlug *string
	if changes.Title != nil {
		v := slug.Make(*changes.Title)
		newSlug = &v
	}

	updated, err := s.repo.Update(ctx, id, changes, newSlug)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.logger.Info().Str("course_id", updated.ID).Msg("course updated")
	return updated, nil
}

// ListCourses returns the full catalog, never nil.
func (s *CourseService) ListCourses(ctx context.Context) ([]domain.Course, error) {
	cached, hit, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache read failed, falling back to store")
	} else if hit {
		return cached, nil
	}

	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []domain.Course{}
	}

	if err := s.cache.Set(ctx, courses); err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache write failed")
	}
	return courses, nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
