package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coursemarket/course-api/internal/core/domain"
)

const coursesCollection = "courses"

type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(coursesCollection)}
}

type courseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	ImageLink   string             `bson:"imageLink"`
	Published   bool               `bson:"published"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d courseDoc) toDomain() domain.Course {
	return domain.Course{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Slug:        d.Slug,
		Description: d.Description,
		Price:       d.Price,
		ImageLink:   d.ImageLink,
		Published:   d.Published,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// parseCourseID treats a malformed id the same as an unknown one.
func parseCourseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrCourseNotFound
	}
	return oid, nil
}

// changeSet builds the $set document for a partial update.
func changeSet(ch domain.CourseChanges, slug *string, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if ch.Title != nil {
		set["title"] = *ch.Title
	}
	if slug != nil {
		set["slug"] = *slug
	}
	if ch.Description != nil {
		set["description"] = *ch.Description
	}
	if ch.Price != nil {
		set["price"] = *ch.Price
	}
	if ch.ImageLink != nil {
		set["imageLink"] = *ch.ImageLink
	}
	if ch.Published != nil {
		set["published"] = *ch.Published
	}
	return set
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := courseDoc{
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		Price:       c.Price,
		ImageLink:   c.ImageLink,
		Published:   c.Published,
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	out := doc.toDomain()
	return &out, nil
}

// Update applies changes and returns the document as it is after the write.
func (r *CourseRepository) Update(ctx context.Context, id string, changes domain.CourseChanges, slug *string) (*domain.Course, error) {
	oid, err := parseCourseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc courseDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": changeSet(changes, slug, time.Now().UTC())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := parseCourseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc courseDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	out := doc.toDomain()
	return &out, nil
}

// List returns every course, oldest first.
func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	var docs []courseDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}

	courses := make([]domain.Course, 0, len(docs))
	for _, d := range docs {
		courses = append(courses, d.toDomain())
	}
	return courses, nil
}

// EnsureIndexes creates necessary indexes on the courses collection.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	return err
}
