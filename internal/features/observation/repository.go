package observation

import (
	"context"
	"errors"

	"seedcare/internal/common/apperror"
	"seedcare/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ObservationRepository stores the stage sub-records. Saving a record replaces
// whatever the complaint had before.
type ObservationRepository interface {
	UpsertObservation(ctx context.Context, record *ObservationRecord) error
	FindObservation(ctx context.Context, complaintID primitive.ObjectID) (*ObservationRecord, error)
	UpsertInvestigation(ctx context.Context, record *InvestigationRecord) error
	FindInvestigation(ctx context.Context, complaintID primitive.ObjectID) (*InvestigationRecord, error)
	UpsertLabTesting(ctx context.Context, record *LabTestingRecord) error
	FindLabTesting(ctx context.Context, complaintID primitive.ObjectID) (*LabTestingRecord, error)
}

type ObservationRepositoryImpl struct {
	observations   *mongo.Collection
	investigations *mongo.Collection
	labTests       *mongo.Collection
}

func NewObservationRepository(db *database.MongodbDB) ObservationRepository {
	return &ObservationRepositoryImpl{
		observations:   db.DB.Collection("complaint_observations"),
		investigations: db.DB.Collection("complaint_investigations"),
		labTests:       db.DB.Collection("complaint_lab_testing"),
	}
}

func (r *ObservationRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "complaint_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []*mongo.Collection{r.observations, r.investigations, r.labTests} {
		if _, err := coll.Indexes().CreateOne(ctx, unique); err != nil {
			return err
		}
	}
	return nil
}

func upsert(ctx context.Context, coll *mongo.Collection, complaintID primitive.ObjectID, doc any) (primitive.ObjectID, error) {
	opts := options.FindOneAndReplace().SetUpsert(true).SetReturnDocument(options.After)
	var saved struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := coll.FindOneAndReplace(ctx, bson.M{"complaint_id": complaintID}, doc, opts).Decode(&saved)
	return saved.ID, err
}

func findOne(ctx context.Context, coll *mongo.Collection, complaintID primitive.ObjectID, entity string, out any) error {
	err := coll.FindOne(ctx, bson.M{"complaint_id": complaintID}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperror.NotFound(entity)
	}
	return err
}

func (r *ObservationRepositoryImpl) UpsertObservation(ctx context.Context, record *ObservationRecord) error {
	id, err := upsert(ctx, r.observations, record.ComplaintID, record)
	if err != nil {
		return err
	}
	record.ID = id
	return nil
}

func (r *ObservationRepositoryImpl) FindObservation(ctx context.Context, complaintID primitive.ObjectID) (*ObservationRecord, error) {
	var record ObservationRecord
	if err := findOne(ctx, r.observations, complaintID, "observation", &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ObservationRepositoryImpl) UpsertInvestigation(ctx context.Context, record *InvestigationRecord) error {
	id, err := upsert(ctx, r.investigations, record.ComplaintID, record)
	if err != nil {
		return err
	}
	record.ID = id
	return nil
}

func (r *ObservationRepositoryImpl) FindInvestigation(ctx context.Context, complaintID primitive.ObjectID) (*InvestigationRecord, error) {
	var record InvestigationRecord
	if err := findOne(ctx, r.investigations, complaintID, "investigation", &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ObservationRepositoryImpl) UpsertLabTesting(ctx context.Context, record *LabTestingRecord) error {
	id, err := upsert(ctx, r.labTests, record.ComplaintID, record)
	if err != nil {
		return err
	}
	record.ID = id
	return nil
}

func (r *ObservationRepositoryImpl) FindLabTesting(ctx context.Context, complaintID primitive.ObjectID) (*LabTestingRecord, error) {
	var record LabTestingRecord
	if err := findOne(ctx, r.labTests, complaintID, "lab testing", &record); err != nil {
		return nil, err
	}
	return &record, nil
}
