package ports

import (
	"context"

	"github.com/coursemarket/course-api/internal/core/domain"
)

// CreateCourseInput is the payload accepted for a new course.
type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	ImageLink   string
	Published   bool
}

// CourseService exposes catalog use cases.
type CourseService interface {
	CreateCourse(ctx context.Context, input CreateCourseInput) (*domain.Course, error)
	UpdateCourse(ctx context.Context, id string, changes domain.CourseChanges) (*domain.Course, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
}

// PurchaseResult reports the outcome of a purchase attempt.
type PurchaseResult struct {
	CourseID         string
	AlreadyPurchased bool
}

// PurchaseService records purchases in the user's ledger.
type PurchaseService interface {
	Purchase(ctx context.Context, username, courseID string) (*PurchaseResult, error)
	PurchasedCourses(ctx context.Context, username string) ([]string, error)
}
