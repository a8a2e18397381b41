package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talenthub/job-board/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Company      string             `bson:"company,omitempty"`
	Title        string             `bson:"title,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

// EnsureIndexes creates the unique email index. Call once at startup; email
// uniqueness across identities depends on it.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	doc := mongoUser{
		Email:        identity.Email,
		FirstName:    identity.FirstName,
		LastName:     identity.LastName,
		PasswordHash: identity.PasswordHash,
		Role:         string(identity.Role),
		Company:      identity.Company,
		Title:        identity.Title,
		CreatedAt:    identity.CreatedAt.Unix(),
		UpdatedAt:    identity.UpdatedAt.Unix(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	// fetch back to get ID
	created, err := r.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	role, err := domain.ParseRole(mu.Role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", mu.ID.Hex(), err)
	}

	return &domain.Identity{
		ID:           mu.ID.Hex(),
		Email:        mu.Email,
		FirstName:    mu.FirstName,
		LastName:     mu.LastName,
		PasswordHash: mu.PasswordHash,
		Role:         role,
		Company:      mu.Company,
		Title:        mu.Title,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
