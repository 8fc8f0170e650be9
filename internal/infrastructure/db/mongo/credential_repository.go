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

const (
	adminsCollection = "admins"
	usersCollection  = "users"
)

// collectionFor maps a role to the collection holding its credentials.
func collectionFor(role domain.Role) (string, error) {
	switch role {
	case domain.RoleAdmin:
		return adminsCollection, nil
	case domain.RoleUser:
		return usersCollection, nil
	default:
		return "", domain.ErrInvalidRole
	}
}

type accountDoc struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty"`
	Username         string               `bson:"username"`
	PasswordHash     string               `bson:"password"`
	PurchasedCourses []primitive.ObjectID `bson:"purchasedCourses,omitempty"`
	CreatedAt        time.Time            `bson:"createdAt"`
}

func (d accountDoc) toDomain(role domain.Role) *domain.Account {
	ids := make([]string, 0, len(d.PurchasedCourses))
	for _, id := range d.PurchasedCourses {
		ids = append(ids, id.Hex())
	}
	return &domain.Account{
		ID:               d.ID.Hex(),
		Username:         d.Username,
		PasswordHash:     d.PasswordHash,
		Role:             role,
		PurchasedCourses: ids,
		CreatedAt:        d.CreatedAt,
	}
}

func findAccount(ctx context.Context, coll *mongo.Collection, role domain.Role, username string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find %s: %w", role, err)
	}
	return doc.toDomain(role), nil
}

// CredentialRepository is one role's credential store.
type CredentialRepository struct {
	coll *mongo.Collection
	role domain.Role
}

func NewCredentialRepository(db *mongo.Database, role domain.Role) (*CredentialRepository, error) {
	name, err := collectionFor(role)
	if err != nil {
		return nil, err
	}
	return &CredentialRepository{coll: db.Collection(name), role: role}, nil
}

// Create inserts a new account. The unique username index turns a lost
// signup race into domain.ErrAlreadyExists.
func (r *CredentialRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := accountDoc{
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert %s: %w", r.role, err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(r.role), nil
}

func (r *CredentialRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return findAccount(ctx, r.coll, r.role, username)
}

// EnsureIndexes creates the unique username index.
func (r *CredentialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
