package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	admissionerrors "venued/internal/admissions/errors"
	"venued/pkg/config"
	"venued/pkg/model"
)

const (
	LockCollectionName = "Venue_locks"
)

// VenueLockRepository provides the per-venue advisory lock that serializes
// check-then-persist admission sequences. The unique _id index turns a
// concurrent acquisition into a duplicate-key error.
type VenueLockRepository interface {
	Acquire(ctx context.Context, lock *model.VenueLock) error
	Release(ctx context.Context, lockID string) error
}

type mongoVenueLockRepository struct {
	collection *mongo.Collection
}

func NewMongoVenueLockRepository(cfg *config.Config) VenueLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoVenueLockRepository{
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoVenueLockRepository) Acquire(ctx context.Context, lock *model.VenueLock) error {
	lock.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return admissionerrors.ErrLockBusy
		}
		return err
	}
	return nil
}

func (r *mongoVenueLockRepository) Release(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
