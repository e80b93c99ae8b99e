package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"industry-lens/internal/models"
)

const professionalsCollection = "professionals"

type MongoProfessionalRepository struct {
	col *mongo.Collection
}

func NewMongoProfessionalRepository(db *mongo.Database) *MongoProfessionalRepository {
	return &MongoProfessionalRepository{col: db.Collection(professionalsCollection)}
}

func (r *MongoProfessionalRepository) CreateProfessional(ctx context.Context, prof *models.Professional) error {
	_, err := r.col.InsertOne(ctx, prof)
	return err
}

func (r *MongoProfessionalRepository) GetProfessional(ctx context.Context, id string) (*models.Professional, error) {
	var prof models.Professional
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&prof)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &prof, nil
}

func (r *MongoProfessionalRepository) GetAllProfessionals(ctx context.Context) ([]models.Professional, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoProfessionalRepository) UpdateProfessional(ctx context.Context, prof *models.Professional) error {
	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": prof.ID}, prof)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoProfessionalRepository) SearchProfessionals(ctx context.Context, query, department string) ([]models.Professional, error) {
	filter := bson.M{}
	if query != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": query, "$options": "i"}},
			bson.M{"imdb_link": bson.M{"$regex": query, "$options": "i"}},
		}
	}
	if department != "" && department != "all" {
		filter["department"] = department
	}
	return r.find(ctx, filter)
}

func (r *MongoProfessionalRepository) FindProfessionalByNameAndDepartment(ctx context.Context, name, department string) (*models.Professional, error) {
	var prof models.Professional
	filter := bson.M{
		"name":       bson.M{"$regex": "^" + name + "$", "$options": "i"},
		"department": department,
	}
	err := r.col.FindOne(ctx, filter).Decode(&prof)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &prof, nil
}

func (r *MongoProfessionalRepository) UpdateProfessionalStats(ctx context.Context, id string, totalReviews int, averageRating float64) error {
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"total_reviews":  totalReviews,
		"average_rating": averageRating,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoProfessionalRepository) find(ctx context.Context, filter bson.M) ([]models.Professional, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profs []models.Professional
	if err = cursor.All(ctx, &profs); err != nil {
		return nil, err
	}
	if profs == nil {
		profs = []models.Professional{}
	}
	return profs, nil
}
