package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"industry-lens/internal/models"
)

const notificationsCollection = "notifications"

type MongoNotificationRepository struct {
	col *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{col: db.Collection(notificationsCollection)}
}

func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) error {
	_, err := r.col.InsertOne(ctx, notif)
	return err
}

func (r *MongoNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (r *MongoNotificationRepository) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
	return int(count), err
}

func (r *MongoNotificationRepository) MarkNotificationRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	var notif models.Notification
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&notif)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &notif, nil
}

func (r *MongoNotificationRepository) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := r.col.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	return err
}

func (r *MongoNotificationRepository) DeleteNotification(ctx context.Context, id, userID string) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
