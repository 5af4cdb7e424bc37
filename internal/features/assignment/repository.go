package assignment

import (
	"context"
	"errors"
	"time"

	"seedcare/internal/database"
	"seedcare/internal/features/staff"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type AssignmentRepository interface {
	// Insert stores a record; an active record counts toward the assignee's workload
	Insert(ctx context.Context, record *Record) error
	// DeactivateActive closes the active record, if any, and releases the workload slot
	DeactivateActive(ctx context.Context, complaintID primitive.ObjectID, by *string, at time.Time) (*Record, error)
	// Reactivate reopens a record closed by DeactivateActive and takes the workload slot back
	Reactivate(ctx context.Context, recordID primitive.ObjectID) error
	FindActive(ctx context.Context, complaintID primitive.ObjectID) (*Record, error)
	ListByComplaint(ctx context.Context, complaintID primitive.ObjectID) ([]Record, error)
}

// AssignmentRepositoryImpl keeps staff_profiles.current_assigned_count in step
// with the active records it writes.
type AssignmentRepositoryImpl struct {
	collection *mongo.Collection
	staffRepo  staff.StaffRepository
	log        *zap.Logger
}

func NewAssignmentRepository(db *database.MongodbDB, staffRepo staff.StaffRepository, log *zap.Logger) AssignmentRepository {
	return &AssignmentRepositoryImpl{
		collection: db.DB.Collection("complaint_assignments"),
		staffRepo:  staffRepo,
		log:        log,
	}
}

func (r *AssignmentRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "complaint_id", Value: 1}, {Key: "assigned_at", Value: 1}}},
		{
			Keys: bson.D{{Key: "complaint_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("one_active_per_complaint").
				SetPartialFilterExpression(bson.M{"is_active": true}),
		},
	})
	return err
}

func (r *AssignmentRepositoryImpl) Insert(ctx context.Context, record *Record) error {
	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}
	record.ID = result.InsertedID.(primitive.ObjectID)

	if record.IsActive {
		if err := r.staffRepo.AdjustAssignedCount(ctx, record.AssignedTo, 1); err != nil {
			r.log.Error("Failed to increment assigned count",
				zap.String("staff_id", record.AssignedTo),
				zap.String("complaint_id", record.ComplaintID.Hex()),
				zap.Error(err))
		}
	}
	return nil
}

func (r *AssignmentRepositoryImpl) DeactivateActive(ctx context.Context, complaintID primitive.ObjectID, by *string, at time.Time) (*Record, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var record Record
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"complaint_id": complaintID, "is_active": true},
		bson.M{"$set": bson.M{
			"is_active":     false,
			"unassigned_at": at,
			"unassigned_by": by,
		}},
		opts,
	).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.staffRepo.AdjustAssignedCount(ctx, record.AssignedTo, -1); err != nil {
		r.log.Error("Failed to decrement assigned count",
			zap.String("staff_id", record.AssignedTo),
			zap.String("complaint_id", complaintID.Hex()),
			zap.Error(err))
	}
	return &record, nil
}

func (r *AssignmentRepositoryImpl) Reactivate(ctx context.Context, recordID primitive.ObjectID) error {
	var record Record
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": recordID, "is_active": false},
		bson.M{
			"$set":   bson.M{"is_active": true},
			"$unset": bson.M{"unassigned_at": "", "unassigned_by": ""},
		},
	).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return err
	}

	if err := r.staffRepo.AdjustAssignedCount(ctx, record.AssignedTo, 1); err != nil {
		r.log.Error("Failed to increment assigned count",
			zap.String("staff_id", record.AssignedTo),
			zap.String("complaint_id", record.ComplaintID.Hex()),
			zap.Error(err))
	}
	return nil
}

func (r *AssignmentRepositoryImpl) FindActive(ctx context.Context, complaintID primitive.ObjectID) (*Record, error) {
	var record Record
	err := r.collection.FindOne(ctx, bson.M{"complaint_id": complaintID, "is_active": true}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *AssignmentRepositoryImpl) ListByComplaint(ctx context.Context, complaintID primitive.ObjectID) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "assigned_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"complaint_id": complaintID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
