package complaint

import (
	"context"
	"errors"
	"regexp"
	"time"

	"seedcare/internal/common/apperror"
	"seedcare/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ComplaintRepository interface {
	// Create returns ErrDuplicateNumber when the complaint number is already taken
	Create(ctx context.Context, c *Complaint) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Complaint, error)
	FindByNumber(ctx context.Context, number string) (*Complaint, error)
	// LatestNumberWithPrefix returns the lexicographically greatest number, or "" if none
	LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error)
	// Update applies a $set patch and returns the updated complaint
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Complaint, error)
	List(ctx context.Context, filter ListFilter, page, limit int64) ([]Complaint, int64, error)
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]Complaint, error)
}

type ComplaintRepositoryImpl struct {
	collection *mongo.Collection
}

func NewComplaintRepository(db *database.MongodbDB) ComplaintRepository {
	return &ComplaintRepositoryImpl{
		collection: db.DB.Collection("complaints"),
	}
}

func (r *ComplaintRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "complaint_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
	})
	return err
}

func (r *ComplaintRepositoryImpl) Create(ctx context.Context, c *Complaint) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateNumber
		}
		return err
	}
	return nil
}

func (r *ComplaintRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Complaint, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ComplaintRepositoryImpl) FindByNumber(ctx context.Context, number string) (*Complaint, error) {
	return r.findOne(ctx, bson.M{"complaint_number": number})
}

func (r *ComplaintRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*Complaint, error) {
	var c Complaint
	if err := r.collection.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("complaint")
		}
		return nil, err
	}
	return &c, nil
}

func (r *ComplaintRepositoryImpl) LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "complaint_number", Value: -1}}).
		SetProjection(bson.M{"complaint_number": 1})

	var row struct {
		ComplaintNumber string `bson:"complaint_number"`
	}
	filter := bson.M{"complaint_number": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&row); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return row.ComplaintNumber, nil
}

func (r *ComplaintRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Complaint, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c Complaint
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("complaint")
		}
		return nil, err
	}
	return &c, nil
}

func (r *ComplaintRepositoryImpl) List(ctx context.Context, filter ListFilter, page, limit int64) ([]Complaint, int64, error) {
	query := BuildListQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filter.SortOrder
	if sortOrder == 0 {
		sortOrder = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: sortOrder}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	complaints := []Complaint{}
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, 0, err
	}
	return complaints, total, nil
}

func (r *ComplaintRepositoryImpl) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]Complaint, error) {
	filter := bson.M{"created_at": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	complaints := []Complaint{}
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

// BuildListQuery translates list filters into a Mongo query
func BuildListQuery(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Department != "" {
		query["department"] = filter.Department
	}
	if filter.AssignedTo != "" {
		query["assigned_to"] = filter.AssignedTo
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"complaint_number": pattern},
			bson.M{"customer_name": pattern},
			bson.M{"customer_phone": pattern},
			bson.M{"related_product_serial": pattern},
		}
	}
	return query
}
