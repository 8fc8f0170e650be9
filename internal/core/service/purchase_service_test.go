package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/coursemarket/course-api/internal/core/domain"
)

type stubLedger struct {
	users  map[string]*domain.Account
	writes int
	addErr error
}

func newStubLedger(usernames ...string) *stubLedger {
	l := &stubLedger{users: make(map[string]*domain.Account)}
	for _, u := range usernames {
		l.users[u] = &domain.Account{Username: u, Role: domain.RoleUser}
	}
	return l
}

func (l *stubLedger) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	u, ok := l.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneAccount(u), nil
}

func (l *stubLedger) AddCourse(_ context.Context, username, courseID string) (bool, error) {
	if l.addErr != nil {
		return false, l.addErr
	}
	u, ok := l.users[username]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	if u.HasPurchased(courseID) {
		return false, nil
	}
	l.writes++
	u.PurchasedCourses = append(u.PurchasedCourses, courseID)
	return true, nil
}

func seedCourse(t *testing.T, repo *stubCourseRepo, title string) *domain.Course {
	t.Helper()
	c, err := repo.Create(context.Background(), &domain.Course{Title: title})
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return c
}

func TestPurchaseService_Purchase(t *testing.T) {
	courses := newStubCourseRepo()
	ledger := newStubLedger("bob")
	svc := NewPurchaseService(courses, ledger, zerolog.Nop())
	course := seedCourse(t, courses, "Go Basics")

	res, err := svc.Purchase(context.Background(), "bob", course.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AlreadyPurchased {
		t.Error("first purchase must not be reported as a duplicate")
	}
	if got := ledger.users["bob"].PurchasedCourses; len(got) != 1 || got[0] != course.ID {
		t.Errorf("unexpected ledger: %v", got)
	}
}

func TestPurchaseService_PurchaseTwice(t *testing.T) {
	courses := newStubCourseRepo()
	ledger := newStubLedger("bob")
	svc := NewPurchaseService(courses, ledger, zerolog.Nop())
	course := seedCourse(t, courses, "Go Basics")

	_, _ = svc.Purchase(context.Background(), "bob", course.ID)
	res, err := svc.Purchase(context.Background(), "bob", course.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.AlreadyPurchased {
		t.Error("second purchase must report AlreadyPurchased")
	}
	if n := len(ledger.users["bob"].PurchasedCourses); n != 1 {
		t.Errorf("expected exactly one ledger entry, got %d", n)
	}
	if ledger.writes != 1 {
		t.Errorf("expected a single write, got %d", ledger.writes)
	}
}

func TestPurchaseService_LostRaceReportsDuplicate(t *testing.T) {
	courses := newStubCourseRepo()
	ledger := &racingLedger{stubLedger: newStubLedger("bob")}
	svc := NewPurchaseService(courses, ledger, zerolog.Nop())
	course := seedCourse(t, courses, "Go Basics")

	res, err := svc.Purchase(context.Background(), "bob", course.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.AlreadyPurchased {
		t.Error("a purchase that loses the race must report AlreadyPurchased")
	}
}

// racingLedger simulates a concurrent purchase landing between read and write.
type racingLedger struct {
	*stubLedger
}

func (l *racingLedger) AddCourse(ctx context.Context, username, courseID string) (bool, error) {
	_, _ = l.stubLedger.AddCourse(ctx, username, courseID)
	return l.stubLedger.AddCourse(ctx, username, courseID)
}

func TestPurchaseService_CourseNotFound(t *testing.T) {
	svc := NewPurchaseService(newStubCourseRepo(), newStubLedger("bob"), zerolog.Nop())

	if _, err := svc.Purchase(context.Background(), "bob", "missing"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestPurchaseService_UserNotFound(t *testing.T) {
	courses := newStubCourseRepo()
	svc := NewPurchaseService(courses, newStubLedger(), zerolog.Nop())
	course := seedCourse(t, courses, "Go Basics")

	if _, err := svc.Purchase(context.Background(), "ghost", course.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPurchaseService_LedgerError(t *testing.T) {
	courses := newStubCourseRepo()
	ledger := newStubLedger("bob")
	ledger.addErr = errors.New("mongo unavailable")
	svc := NewPurchaseService(courses, ledger, zerolog.Nop())
	course := seedCourse(t, courses, "Go Basics")

	if _, err := svc.Purchase(context.Background(), "bob", course.ID); err == nil {
		t.Fatal("expected ledger error to surface")
	}
}

func TestPurchaseService_PurchasedCourses(t *testing.T) {
	courses := newStubCourseRepo()
	ledger := newStubLedger("bob")
	svc := NewPurchaseService(courses, ledger, zerolog.Nop())

	empty, err := svc.PurchasedCourses(context.Background(), "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}

	course := seedCourse(t, courses, "Go Basics")
	_, _ = svc.Purchase(context.Background(), "bob", course.ID)

	ids, _ := svc.PurchasedCourses(context.Background(), "bob")
	if len(ids) != 1 || ids[0] != course.ID {
		t.Errorf("unexpected purchased list: %v", ids)
	}

	if _, err := svc.PurchasedCourses(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
