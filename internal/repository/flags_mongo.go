package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"industry-lens/internal/models"
)

const flagsCollection = "flags"

type MongoFlagRepository struct {
	col *mongo.Collection
}

func NewMongoFlagRepository(db *mongo.Database) *MongoFlagRepository {
	return &MongoFlagRepository{col: db.Collection(flagsCollection)}
}

func (r *MongoFlagRepository) CreateFlag(ctx context.Context, flag *models.Flag) error {
	_, err := r.col.InsertOne(ctx, flag)
	return err
}

func (r *MongoFlagRepository) GetFlag(ctx context.Context, id string) (*models.Flag, error) {
	var flag models.Flag
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&flag)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &flag, nil
}

func (r *MongoFlagRepository) GetAllFlags(ctx context.Context) ([]models.Flag, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var flags []models.Flag
	if err = cursor.All(ctx, &flags); err != nil {
		return nil, err
	}
	if flags == nil {
		flags = []models.Flag{}
	}
	return flags, nil
}

func (r *MongoFlagRepository) UpdateFlag(ctx context.Context, flag *models.Flag) error {
	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": flag.ID}, flag)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
