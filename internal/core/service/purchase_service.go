package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/coursemarket/course-api/internal/core/ports"
)

type PurchaseService struct {
	courses ports.CourseRepository
	ledger  ports.LedgerRepository
	logger  zerolog.Logger
}

func NewPurchaseService(courses ports.CourseRepository, ledger ports.LedgerRepository, logger zerolog.Logger) *PurchaseService {
	return &PurchaseService{courses: courses, ledger: ledger, logger: logger}
}

// Purchase adds courseID to username's ledger. Buying a course twice is not
// an error: the second call reports AlreadyPurchased and writes nothing.
func (s *PurchaseService) Purchase(ctx context.Context, username, courseID string) (*ports.PurchaseResult, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	user, err := s.ledger.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.HasPurchased(course.ID) {
		return &ports.PurchaseResult{CourseID: course.ID, AlreadyPurchased: true}, nil
	}

	// A concurrent purchase may land between the read above and this write;
	// AddCourse is atomic, so the loser sees added == false.
	added, err := s.ledger.AddCourse(ctx, username, course.ID)
	if err != nil {
		return nil, err
	}
	if !added {
		return &ports.PurchaseResult{CourseID: course.ID, AlreadyPurchased: true}, nil
	}

	s.logger.Info().Str("username", username).Str("course_id", course.ID).Msg("course purchased")
	return &ports.PurchaseResult{CourseID: course.ID}, nil
}

// PurchasedCourses lists the ids in username's ledger, never nil.
func (s *PurchaseService) PurchasedCourses(ctx context.Context, username string) ([]string, error) {
	user, err := s.ledger.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.PurchasedCourses == nil {
		return []string{}, nil
	}
	return user.PurchasedCourses, nil
}
