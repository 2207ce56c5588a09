package repository

import (
	"context"

	"darkops-lab/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const statusCheckLimit = 1000

type StatusRepository struct {
	Col *mongo.Collection
}

func NewStatusRepository(db *mongo.Database) *StatusRepository {
	return &StatusRepository{Col: db.Collection("status_checks")}
}

func (r *StatusRepository) Create(ctx context.Context, check *models.StatusCheck) error {
	_, err := r.Col.InsertOne(ctx, check)
	return err
}

func (r *StatusRepository) FindAll(ctx context.Context) ([]models.StatusCheck, error) {
	opts := options.Find().SetLimit(statusCheckLimit)
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	checks := make([]models.StatusCheck, 0)
	for cur.Next(ctx) {
		var c models.StatusCheck
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, cur.Err()
}
