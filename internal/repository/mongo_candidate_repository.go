package repository

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Ishamahajan23/candidate-referral-system/internal/domain"
)

// MongoCandidateRepository implements CandidateRepository using MongoDB
type MongoCandidateRepository struct {
	coll *mongo.Collection
}

// NewMongoCandidateRepository creates a new MongoCandidateRepository
func NewMongoCandidateRepository(db *mongo.Database) *MongoCandidateRepository {
	return &MongoCandidateRepository{coll: db.Collection("candidates")}
}

// EnsureIndexes creates the unique email index and the listing sort index
func (r *MongoCandidateRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	return err
}

// Create creates a new candidate
func (r *MongoCandidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	if candidate.ID.IsZero() {
		candidate.ID = bson.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, candidate)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// GetByID retrieves a candidate by ID
func (r *MongoCandidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	candidate := &domain.Candidate{}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(candidate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return candidate, nil
}

// List retrieves candidates matching the filter, newest first
func (r *MongoCandidateRepository) List(ctx context.Context, filter *domain.CandidateFilter) ([]*domain.Candidate, error) {
	query := bson.M{}

	if filter != nil && filter.Search != "" {
		pattern := regexp.QuoteMeta(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"jobTitle": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if filter != nil && filter.Status != "" && filter.Status != domain.StatusAll {
		query["status"] = filter.Status
	}

	cursor, err := r.coll.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	candidates := []*domain.Candidate{}
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// UpdateStatus overwrites the status field and returns the updated candidate,
// or nil if no candidate has that id
func (r *MongoCandidateRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Candidate, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	candidate := &domain.Candidate{}
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(candidate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return candidate, nil
}

// Delete removes a candidate permanently and reports whether it existed
func (r *MongoCandidateRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ExistsByEmail checks if a candidate exists with the given email
func (r *MongoCandidateRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByStatus returns live totals per pipeline stage
func (r *MongoCandidateRepository) CountByStatus(ctx context.Context) (*domain.CandidateStats, error) {
	stats := &domain.CandidateStats{}

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	stats.Total = total

	counts := map[domain.Status]*int64{
		domain.StatusPending:  &stats.Pending,
		domain.StatusReviewed: &stats.Reviewed,
		domain.StatusHired:    &stats.Hired,
	}
	for status, dst := range counts {
		n, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			return nil, err
		}
		*dst = n
	}
	return stats, nil
}
