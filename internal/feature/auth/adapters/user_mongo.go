// Package adapters provides the repository implementations for the auth
// feature.
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"logsearch_backend/internal/feature/auth/domain/entity"
	"logsearch_backend/internal/feature/auth/usecase"
	"logsearch_backend/internal/platform/mongodb"
)

const usersCollection = "users"

// userMongo is the MongoDB implementation of usecase.UserRepository.
type userMongo struct {
	db *mongodb.Client
}

// Compile-time check that userMongo implements UserRepository.
var _ usecase.UserRepository = (*userMongo)(nil)

// NewUserMongo creates a userMongo backed by the given connection manager.
func NewUserMongo(db *mongodb.Client) *userMongo {
	return &userMongo{db: db}
}

// userDocument is the persisted shape of a user.
type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	CreatedAt    time.Time     `bson:"created_at"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// EnsureIndexes creates the unique indexes on username and email. These are
// the authoritative uniqueness guard; the usecase pre-checks exist only for
// friendlier error messages.
func (r *userMongo) EnsureIndexes(ctx context.Context) error {
	col := r.db.Collection(ctx, usersCollection)
	if col == nil {
		return usecase.ErrStoreUnavailable
	}
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// Create inserts a new user. A unique-index collision maps to the matching
// usecase sentinel error.
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	col := r.db.Collection(ctx, usersCollection)
	if col == nil {
		return usecase.ErrStoreUnavailable
	}

	doc := userDocument{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "email") {
				return usecase.ErrEmailAlreadyExists
			}
			return usecase.ErrUsernameAlreadyExists
		}
		return err
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = id.Hex()
	}
	u.CreatedAt = doc.CreatedAt
	return nil
}

// FindByUsername looks a user up by username.
func (r *userMongo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

// FindByEmail looks a user up by email.
func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// FindByID looks a user up by its hex-encoded document ID.
func (r *userMongo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrUserNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *userMongo) findOne(ctx context.Context, filter bson.D) (*entity.User, error) {
	col := r.db.Collection(ctx, usersCollection)
	if col == nil {
		return nil, usecase.ErrStoreUnavailable
	}

	var doc userDocument
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}
