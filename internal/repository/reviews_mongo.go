package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"industry-lens/internal/models"
)

const reviewsCollection = "reviews"

type MongoReviewRepository struct {
	col *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{col: db.Collection(reviewsCollection)}
}

func (r *MongoReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	_, err := r.col.InsertOne(ctx, review)
	return err
}

func (r *MongoReviewRepository) GetReview(ctx context.Context, id string) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoReviewRepository) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoReviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": review.ID}, review)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoReviewRepository) DeleteReview(ctx context.Context, id string) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoReviewRepository) GetReviewsByProfessional(ctx context.Context, professionalID string) ([]models.Review, error) {
	return r.find(ctx, bson.M{"professional_id": professionalID})
}

func (r *MongoReviewRepository) GetApprovedReviewsByProfessional(ctx context.Context, professionalID string) ([]models.Review, error) {
	return r.find(ctx, bson.M{"professional_id": professionalID, "status": models.StatusApproved})
}

func (r *MongoReviewRepository) GetReviewsByUser(ctx context.Context, userID string) ([]models.Review, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *MongoReviewRepository) FindReviewByProfessionalAndUser(ctx context.Context, professionalID, userID string) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"professional_id": professionalID, "user_id": userID})
}

func (r *MongoReviewRepository) DeleteReviewsByUser(ctx context.Context, userID string) ([]models.Review, error) {
	reviews, err := r.find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return reviews, nil
	}
	_, err = r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *MongoReviewRepository) findOne(ctx context.Context, filter bson.M) (*models.Review, error) {
	var review models.Review
	err := r.col.FindOne(ctx, filter).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *MongoReviewRepository) find(ctx context.Context, filter bson.M) ([]models.Review, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}
