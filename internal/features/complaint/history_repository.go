package complaint

import (
	"context"
	"time"

	"seedcare/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HistoryRepository interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	ListByComplaint(ctx context.Context, complaintID primitive.ObjectID) ([]HistoryEntry, error)
}

type HistoryRepositoryImpl struct {
	collection *mongo.Collection
}

func NewHistoryRepository(db *database.MongodbDB) HistoryRepository {
	return &HistoryRepositoryImpl{
		collection: db.DB.Collection("complaint_history"),
	}
}

func (r *HistoryRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "complaint_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}

func (r *HistoryRepositoryImpl) Append(ctx context.Context, entry *HistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	entry.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *HistoryRepositoryImpl) ListByComplaint(ctx context.Context, complaintID primitive.ObjectID) ([]HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"complaint_id": complaintID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []HistoryEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
