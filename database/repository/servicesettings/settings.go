package settingsRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServiceSetting stores admin-side presentation state for a Hapio service.
// Hapio itself has no concept of display order, so it is kept locally.
type ServiceSetting struct {
	ServiceID    string    `bson:"service_id" json:"service_id"`
	DisplayOrder int       `bson:"display_order" json:"display_order"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// SettingsRepository persists per-service admin settings.
type SettingsRepository interface {
	Reorder(ctx context.Context, orders []ServiceSetting) error
	List(ctx context.Context) ([]ServiceSetting, error)
	Delete(ctx context.Context, serviceID string) error
}

// MongoSettingsRepo is the MongoDB implementation of SettingsRepository.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

func NewMongoSettingsRepo(db *mongo.Database) *MongoSettingsRepo {
	return &MongoSettingsRepo{coll: db.Collection("service_settings")}
}

// Reorder upserts the display order for each referenced service.
func (repo *MongoSettingsRepo) Reorder(ctx context.Context, orders []ServiceSetting) error {
	now := time.Now()
	for _, order := range orders {
		_, err := repo.coll.UpdateOne(ctx,
			bson.M{"service_id": order.ServiceID},
			bson.M{"$set": bson.M{
				"display_order": order.DisplayOrder,
				"updated_at":    now,
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("failed to update display order for service %s: %w", order.ServiceID, err)
		}
	}
	return nil
}

func (repo *MongoSettingsRepo) List(ctx context.Context) ([]ServiceSetting, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list service settings: %w", err)
	}
	defer cursor.Close(ctx)

	var settings []ServiceSetting
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode service settings: %w", err)
	}
	return settings, nil
}

// Delete removes the setting row when its service is deleted upstream.
func (repo *MongoSettingsRepo) Delete(ctx context.Context, serviceID string) error {
	if _, err := repo.coll.DeleteOne(ctx, bson.M{"service_id": serviceID}); err != nil {
		return fmt.Errorf("failed to delete service setting: %w", err)
	}
	return nil
}
