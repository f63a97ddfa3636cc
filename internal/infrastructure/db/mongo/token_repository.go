package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

type TokenRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{
		coll:  db.Collection(collectionTokens),
		users: db.Collection(collectionUsers),
	}
}

type tokenDoc struct {
	Token     string `bson:"_id"`
	UserID    string `bson:"user_id"`
	ExpiresAt int64  `bson:"expires_at"`
}

// Create persists a token. MongoDB has no foreign keys, so the owning user is
// checked first; users are never deleted, which keeps the check sound.
func (r *TokenRepository) Create(ctx context.Context, token *domain.AccessToken) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.users.CountDocuments(ctx, bson.M{"_id": token.UserID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("check token owner: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}

	doc := tokenDoc{Token: token.Token, UserID: token.UserID, ExpiresAt: toMillis(token.ExpiresAt)}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTokenExists
		}
		return fmt.Errorf("insert access token: %w", err)
	}
	return nil
}

func (r *TokenRepository) FindValid(ctx context.Context, token string, now time.Time) (*domain.AccessToken, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d tokenDoc
	err := r.coll.FindOne(ctx, bson.M{
		"_id":        token,
		"expires_at": bson.M{"$gt": toMillis(now)},
	}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find access token: %w", err)
	}
	return &domain.AccessToken{Token: d.Token, UserID: d.UserID, ExpiresAt: millisToTime(d.ExpiresAt)}, nil
}
