package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"darkops-lab/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("progress")}
}

// CreateIndexes installs the unique (session_id, attack_id) key that keeps
// one progress record per walkthrough.
func (r *ProgressRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "attack_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "started_at", Value: 1}},
		},
	}

	if _, err := r.Col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create progress indexes: %w", err)
	}
	return nil
}

func (r *ProgressRepository) Insert(ctx context.Context, progress *models.AttackProgress) error {
	_, err := r.Col.InsertOne(ctx, progress)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert progress: %w", err)
	}
	return nil
}

// Complete moves an incomplete record whose total_steps is covered by step
// into the completed state. It returns ErrNotFound when no such record
// exists, so each record completes at most once.
func (r *ProgressRepository) Complete(ctx context.Context, sessionID, attackID string, step, timeSpent int, at time.Time) (*models.AttackProgress, error) {
	filter := bson.M{
		"session_id":   sessionID,
		"attack_id":    attackID,
		"is_completed": false,
		"total_steps":  bson.M{"$lte": step},
	}
	update := bson.M{"$set": bson.M{
		"current_step": step,
		"time_spent":   timeSpent,
		"last_updated": at,
		"is_completed": true,
		"completed_at": at,
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

// Advance overwrites the position of an existing record without touching
// its completion state.
func (r *ProgressRepository) Advance(ctx context.Context, sessionID, attackID string, step, timeSpent int, at time.Time) (*models.AttackProgress, error) {
	filter := bson.M{"session_id": sessionID, "attack_id": attackID}
	update := bson.M{"$set": bson.M{
		"current_step": step,
		"time_spent":   timeSpent,
		"last_updated": at,
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *ProgressRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.AttackProgress, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var progress models.AttackProgress
	err := r.Col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&progress)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}
	return &progress, nil
}

func (r *ProgressRepository) FindBySession(ctx context.Context, sessionID string) ([]models.AttackProgress, error) {
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: 1}})
	cur, err := r.Col.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	records := make([]models.AttackProgress, 0)
	for cur.Next(ctx) {
		var p models.AttackProgress
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, cur.Err()
}
