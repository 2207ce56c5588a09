package repository

import (
	"context"
	"fmt"

	"darkops-lab/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuizRepository persists graded answers (quiz_submissions) and batch
// results (quiz_scores). Both collections are append-only.
type QuizRepository struct {
	Submissions *mongo.Collection
	Scores      *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{
		Submissions: db.Collection("quiz_submissions"),
		Scores:      db.Collection("quiz_scores"),
	}
}

func (r *QuizRepository) CreateIndexes(ctx context.Context) error {
	_, err := r.Submissions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "attack_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create quiz_submissions index: %w", err)
	}
	_, err = r.Scores.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "completed_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create quiz_scores index: %w", err)
	}
	return nil
}

func (r *QuizRepository) InsertSubmissions(ctx context.Context, submissions []models.QuizSubmission) error {
	if len(submissions) == 0 {
		return nil
	}
	docs := make([]interface{}, len(submissions))
	for i := range submissions {
		docs[i] = submissions[i]
	}
	if _, err := r.Submissions.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert quiz submissions: %w", err)
	}
	return nil
}

func (r *QuizRepository) InsertScore(ctx context.Context, score *models.QuizScore) error {
	if _, err := r.Scores.InsertOne(ctx, score); err != nil {
		return fmt.Errorf("failed to insert quiz score: %w", err)
	}
	return nil
}

func (r *QuizRepository) FindScoresBySession(ctx context.Context, sessionID string) ([]models.QuizScore, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: 1}})
	cur, err := r.Scores.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	scores := make([]models.QuizScore, 0)
	for cur.Next(ctx) {
		var s models.QuizScore
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, cur.Err()
}

// FindSubmissions lists graded answers of a session, optionally narrowed to
// one attack.
func (r *QuizRepository) FindSubmissions(ctx context.Context, sessionID, attackID string) ([]models.QuizSubmission, error) {
	filter := bson.M{"session_id": sessionID}
	if attackID != "" {
		filter["attack_id"] = attackID
	}
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}})

	cur, err := r.Submissions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	submissions := make([]models.QuizSubmission, 0)
	if err := cur.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}
