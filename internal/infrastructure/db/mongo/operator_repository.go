package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/imspro/inventory-system/internal/core/domain"
)

const collectionOperators = "operators"

type OperatorRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewOperatorRepository(db *mongo.Database) *OperatorRepository {
	return &OperatorRepository{db: db, coll: db.Collection(collectionOperators)}
}

type mongoOperator struct {
	ID           int64  `bson:"_id"`
	Username     string `bson:"username"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	FullName     string `bson:"full_name,omitempty"`
	Active       bool   `bson:"active"`
	CreatedAt    int64  `bson:"created_at"`
	LastLogin    int64  `bson:"last_login,omitempty"`
}

func (r *OperatorRepository) Create(ctx context.Context, op *domain.Operator) (*domain.Operator, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionOperators)
	if err != nil {
		return nil, err
	}

	doc := mongoOperator{
		ID:           id,
		Username:     op.Username,
		Email:        op.Email,
		PasswordHash: op.PasswordHash,
		Role:         op.Role,
		FullName:     op.FullName,
		Active:       op.Active,
		CreatedAt:    op.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyError(err)
		}
		return nil, fmt.Errorf("insert operator: %w", err)
	}

	created := *op
	created.ID = id
	return &created, nil
}

func (r *OperatorRepository) FindByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *OperatorRepository) FindByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *OperatorRepository) FindByID(ctx context.Context, id int64) (*domain.Operator, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *OperatorRepository) findOne(ctx context.Context, filter bson.M) (*domain.Operator, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOperator
	if err := r.coll.FindOne(ctx, filter).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOperatorNotFound
		}
		return nil, fmt.Errorf("find operator: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OperatorRepository) UpdateLastLogin(ctx context.Context, id int64, ts time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login": ts.Unix()}},
	)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOperatorNotFound
	}
	return nil
}

func (r *OperatorRepository) SetActive(ctx context.Context, id int64, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": active}},
	)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOperatorNotFound
	}
	return nil
}

func (r *OperatorRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete operator: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOperatorNotFound
	}
	return nil
}

func (r *OperatorRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *OperatorRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{"active": true})
}

// EnsureIndexes creates the unique indexes backing the username/email
// uniqueness invariant.
func (r *OperatorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: uniqueIndex()},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// duplicateKeyError reports which unique index a duplicate-key insert hit.
// Mongo embeds the index name (username_1 or email_1) in the error message.
func duplicateKeyError(err error) error {
	if strings.Contains(err.Error(), "email") {
		return domain.ErrEmailTaken
	}
	return domain.ErrUsernameTaken
}

func (mo *mongoOperator) toDomain() *domain.Operator {
	op := &domain.Operator{
		ID:           mo.ID,
		Username:     mo.Username,
		Email:        mo.Email,
		PasswordHash: mo.PasswordHash,
		Role:         mo.Role,
		FullName:     mo.FullName,
		Active:       mo.Active,
		CreatedAt:    unixToTime(mo.CreatedAt),
	}
	if mo.LastLogin != 0 {
		t := unixToTime(mo.LastLogin)
		op.LastLogin = &t
	}
	return op
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
