package staff

import (
	"context"
	"errors"
	"time"

	"seedcare/internal/common/apperror"
	"seedcare/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StaffRepository interface {
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error)
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context, filter ListFilter) ([]Profile, error)
	// AdjustAssignedCount is the only writer of current_assigned_count; it never goes below zero
	AdjustAssignedCount(ctx context.Context, userID string, delta int) error
	// RecordResolution folds one resolution into the stored running averages
	RecordResolution(ctx context.Context, userID string, resolutionHours float64, rating *int) error
}

type StaffRepositoryImpl struct {
	collection *mongo.Collection
}

func NewStaffRepository(db *database.MongodbDB) StaffRepository {
	return &StaffRepositoryImpl{
		collection: db.DB.Collection("staff_profiles"),
	}
}

func (r *StaffRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "department", Value: 1}, {Key: "is_active", Value: 1}}},
	})
	return err
}

func (r *StaffRepositoryImpl) Create(ctx context.Context, profile *Profile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	profile.CurrentAssignedCount = 0

	result, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Validation("staff profile for user %s already exists", profile.UserID)
		}
		return err
	}
	profile.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *StaffRepositoryImpl) Update(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error) {
	set := bson.M{"updated_at": time.Now()}
	if update.FullName != nil {
		set["full_name"] = *update.FullName
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Department != nil {
		set["department"] = *update.Department
	}
	if update.ComplaintPermissions != nil {
		set["complaint_permissions"] = update.ComplaintPermissions
	}
	if update.MaxAssignedComplaints != nil {
		set["max_assigned_complaints"] = *update.MaxAssignedComplaints
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var profile Profile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, bson.M{"$set": set}, opts).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("staff profile")
		}
		return nil, err
	}
	return &profile, nil
}

func (r *StaffRepositoryImpl) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("staff profile")
		}
		return nil, err
	}
	return &profile, nil
}

func (r *StaffRepositoryImpl) List(ctx context.Context, filter ListFilter) ([]Profile, error) {
	query := bson.M{}
	if filter.Department != "" {
		query["department"] = filter.Department
	}
	if filter.ActiveOnly {
		query["is_active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := []Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *StaffRepositoryImpl) AdjustAssignedCount(ctx context.Context, userID string, delta int) error {
	filter := bson.M{"user_id": userID}
	if delta < 0 {
		filter["current_assigned_count"] = bson.M{"$gte": -delta}
	}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"current_assigned_count": delta},
		"$set": bson.M{"updated_at": time.Now()},
	})
	return err
}

func (r *StaffRepositoryImpl) RecordResolution(ctx context.Context, userID string, resolutionHours float64, rating *int) error {
	resolved := bson.M{"$ifNull": bson.A{"$resolved_count", 0}}
	set := bson.M{
		"avg_resolution_time": runningAverage("$avg_resolution_time", resolved, resolutionHours),
		"resolved_count":      bson.M{"$add": bson.A{resolved, 1}},
		"updated_at":          time.Now(),
	}
	if rating != nil {
		rated := bson.M{"$ifNull": bson.A{"$rated_count", 0}}
		set["customer_satisfaction_avg"] = runningAverage("$customer_satisfaction_avg", rated, float64(*rating))
		set["rated_count"] = bson.M{"$add": bson.A{rated, 1}}
	}

	// Pipeline update: every expression in one $set stage reads the pre-update document
	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, mongo.Pipeline{{{Key: "$set", Value: set}}})
	return err
}

// (avg*n + value) / (n+1)
func runningAverage(field string, count bson.M, value float64) bson.M {
	return bson.M{
		"$divide": bson.A{
			bson.M{"$add": bson.A{
				bson.M{"$multiply": bson.A{bson.M{"$ifNull": bson.A{field, 0}}, count}},
				value,
			}},
			bson.M{"$add": bson.A{count, 1}},
		},
	}
}
