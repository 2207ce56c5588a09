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

type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("sessions")}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	_, err := r.Col.InsertOne(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Touch sets last_active and returns the updated session.
func (r *SessionRepository) Touch(ctx context.Context, id string, at time.Time) (*models.Session, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var session models.Session
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_active": at}},
		opts,
	).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to touch session: %w", err)
	}
	return &session, nil
}

// IncrementStats adds to the running totals with $inc. Unknown ids are a no-op.
func (r *SessionRepository) IncrementStats(ctx context.Context, id string, attacksCompleted, quizScore int) error {
	inc := bson.M{}
	if attacksCompleted != 0 {
		inc["total_attacks_completed"] = attacksCompleted
	}
	if quizScore != 0 {
		inc["total_quiz_score"] = quizScore
	}
	if len(inc) == 0 {
		return nil
	}

	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": inc})
	if err != nil {
		return fmt.Errorf("failed to increment session stats: %w", err)
	}
	return nil
}
