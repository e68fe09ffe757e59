package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hustlenetwork/hustle_backend/models"
)

// AnonLikeSentinel is stored in the like set for likes without a user id.
// Every anonymous like collapses into this single member, so the anonymous
// path contributes at most 1 to the displayed count. Known quirk, kept as is.
const AnonLikeSentinel = "anon"

// ReelRepository owns reel persistence and the engagement mutations. The
// collection may be nil when the process runs without a database; every method
// then returns ErrStoreUnavailable.
type ReelRepository struct {
	collection *mongo.Collection
}

func NewReelRepository(db *mongo.Database) *ReelRepository {
	if db == nil {
		return &ReelRepository{}
	}
	return &ReelRepository{collection: db.Collection("reel")}
}

// ParseID parses a client-supplied reel id into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// Insert stores a new reel and returns its generated id.
func (r *ReelRepository) Insert(ctx context.Context, reel models.Reel) (primitive.ObjectID, error) {
	if r.collection == nil {
		return primitive.NilObjectID, ErrStoreUnavailable
	}

	result, err := r.collection.InsertOne(ctx, reel)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert reel: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindByID re-reads a single reel. Mutating operations call this after their
// update so responses always reflect the persisted state, exactly what a
// subsequent list would return.
func (r *ReelRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Reel, error) {
	if r.collection == nil {
		return models.Reel{}, ErrStoreUnavailable
	}

	var reel models.Reel
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Reel{}, ErrNotFound
	}
	if err != nil {
		return models.Reel{}, fmt.Errorf("find reel: %w", err)
	}
	return reel, nil
}

// List returns a page of reels, newest first. The limit is caller-supplied
// and uncapped.
func (r *ReelRepository) List(ctx context.Context, limit, skip int64) ([]models.Reel, error) {
	if r.collection == nil {
		return nil, ErrStoreUnavailable
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reels: %w", err)
	}
	defer cursor.Close(ctx)

	var reels []models.Reel
	if err := cursor.All(ctx, &reels); err != nil {
		return nil, fmt.Errorf("decode reels: %w", err)
	}
	return reels, nil
}

// ToggleLike flips the caller's membership in the like set. A user already in
// the set is removed, otherwise added; without a user id the anon sentinel is
// added. Both paths are single atomic updates so concurrent toggles never lose
// other members.
func (r *ReelRepository) ToggleLike(ctx context.Context, id primitive.ObjectID, userID string) (models.Reel, error) {
	if r.collection == nil {
		return models.Reel{}, ErrStoreUnavailable
	}

	now := time.Now().UTC()

	if userID == "" {
		result, err := r.collection.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{
				"$addToSet": bson.M{"likes": AnonLikeSentinel},
				"$set":      bson.M{"updated_at": now},
			})
		if err != nil {
			return models.Reel{}, fmt.Errorf("like reel: %w", err)
		}
		if result.MatchedCount == 0 {
			return models.Reel{}, ErrNotFound
		}
		return r.FindByID(ctx, id)
	}

	// Unlike first: matches only when the user is already in the set.
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "likes": userID},
		bson.M{
			"$pull": bson.M{"likes": userID},
			"$set":  bson.M{"updated_at": now},
		})
	if err != nil {
		return models.Reel{}, fmt.Errorf("unlike reel: %w", err)
	}
	if result.MatchedCount == 0 {
		result, err = r.collection.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{
				"$addToSet": bson.M{"likes": userID},
				"$set":      bson.M{"updated_at": now},
			})
		if err != nil {
			return models.Reel{}, fmt.Errorf("like reel: %w", err)
		}
		if result.MatchedCount == 0 {
			return models.Reel{}, ErrNotFound
		}
	}

	return r.FindByID(ctx, id)
}

// AddComment appends a comment to the reel's comment array. The push is a
// single atomic update; a zero matched count is how a missing reel is
// detected, no pre-read.
func (r *ReelRepository) AddComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (models.Reel, error) {
	if r.collection == nil {
		return models.Reel{}, ErrStoreUnavailable
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return models.Reel{}, fmt.Errorf("comment reel: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.Reel{}, ErrNotFound
	}

	return r.FindByID(ctx, id)
}
