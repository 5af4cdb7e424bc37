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

type ResponseRepository interface {
	Create(ctx context.Context, response *Response) error
	ListByComplaint(ctx context.Context, complaintID primitive.ObjectID, includeInternal bool) ([]Response, error)
}

type ResponseRepositoryImpl struct {
	collection *mongo.Collection
}

func NewResponseRepository(db *database.MongodbDB) ResponseRepository {
	return &ResponseRepositoryImpl{
		collection: db.DB.Collection("complaint_responses"),
	}
}

func (r *ResponseRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "complaint_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}

func (r *ResponseRepositoryImpl) Create(ctx context.Context, response *Response) error {
	if response.CreatedAt.IsZero() {
		response.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, response)
	if err != nil {
		return err
	}
	response.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ResponseRepositoryImpl) ListByComplaint(ctx context.Context, complaintID primitive.ObjectID, includeInternal bool) ([]Response, error) {
	filter := bson.M{"complaint_id": complaintID}
	if !includeInternal {
		filter["is_internal"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	responses := []Response{}
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}
