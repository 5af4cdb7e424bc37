package digest

import (
	"context"

	"seedcare/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *Snapshot) error
	List(ctx context.Context, limit int64) ([]Snapshot, error)
}

type SnapshotRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSnapshotRepository(db *database.MongodbDB) SnapshotRepository {
	return &SnapshotRepositoryImpl{
		collection: db.DB.Collection("analytics_snapshots"),
	}
}

func (r *SnapshotRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "started_at", Value: -1}},
	})
	return err
}

func (r *SnapshotRepositoryImpl) Create(ctx context.Context, snapshot *Snapshot) error {
	result, err := r.collection.InsertOne(ctx, snapshot)
	if err != nil {
		return err
	}
	snapshot.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *SnapshotRepositoryImpl) List(ctx context.Context, limit int64) ([]Snapshot, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	snapshots := []Snapshot{}
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}
