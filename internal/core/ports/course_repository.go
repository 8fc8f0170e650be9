package ports

import (
	"context"

	"github.com/coursemarket/course-api/internal/core/domain"
)

// CourseRepository persists the catalog.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	// Update applies changes and returns the stored record after the update.
	// A missing or malformed id yields domain.ErrCourseNotFound.
	Update(ctx context.Context, id string, changes domain.CourseChanges, slug *string) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
}

// LedgerRepository manages the per-user set of purchased course ids.
type LedgerRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	// AddCourse adds courseID to the user's ledger if it is not already there.
	// added is false when the course was already present. The check and the
	// write happen in a single atomic store operation.
	AddCourse(ctx context.Context, username, courseID string) (added bool, err error)
}
