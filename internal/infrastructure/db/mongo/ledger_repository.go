package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coursemarket/course-api/internal/core/domain"
)

// LedgerRepository reads and extends users' purchasedCourses arrays.
type LedgerRepository struct {
	coll *mongo.Collection
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{coll: db.Collection(usersCollection)}
}

func (r *LedgerRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return findAccount(ctx, r.coll, domain.RoleUser, username)
}

// AddCourse uses $addToSet so that concurrent purchases of the same course
// leave exactly one entry; ModifiedCount tells whether this call added it.
func (r *LedgerRepository) AddCourse(ctx context.Context, username, courseID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return false, domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$addToSet": bson.M{"purchasedCourses": oid}},
	)
	if err != nil {
		return false, fmt.Errorf("add purchase: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, domain.ErrUserNotFound
	}
	return res.ModifiedCount > 0, nil
}
