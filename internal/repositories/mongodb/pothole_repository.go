package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roadwatch/internal/models"
	"roadwatch/internal/repositories/interfaces"
	"roadwatch/internal/utils"
)

type potholeRepository struct {
	collection *mongo.Collection
}

func NewPotholeRepository(db *mongo.Database) interfaces.PotholeRepository {
	return &potholeRepository{
		collection: db.Collection(utils.CollectionPotholes),
	}
}

func (r *potholeRepository) Create(ctx context.Context, pothole *models.Pothole) error {
	pothole.ID = primitive.NewObjectID()
	pothole.CreatedAt = time.Now()
	pothole.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, pothole)
	if err != nil {
		return fmt.Errorf("failed to create pothole: %w", err)
	}
	return nil
}

func (r *potholeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Pothole, error) {
	var pothole models.Pothole
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pothole)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pothole: %w", err)
	}
	return &pothole, nil
}

func (r *potholeRepository) List(ctx context.Context, filter *interfaces.PotholeFilter) ([]*models.Pothole, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Status != "" {
			query["status"] = filter.Status
		}
		if filter.Severity != "" {
			query["severity"] = filter.Severity
		}
		timeRange := bson.M{}
		if filter.StartDate != nil {
			timeRange["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			timeRange["$lte"] = *filter.EndDate
		}
		if len(timeRange) > 0 {
			query["timestamp"] = timeRange
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list potholes: %w", err)
	}
	defer cursor.Close(ctx)

	potholes := make([]*models.Pothole, 0)
	if err := cursor.All(ctx, &potholes); err != nil {
		return nil, fmt.Errorf("failed to decode potholes: %w", err)
	}
	return potholes, nil
}

func (r *potholeRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PotholeStatus) (*models.Pothole, error) {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var pothole models.Pothole
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&pothole)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update pothole status: %w", err)
	}
	return &pothole, nil
}

func (r *potholeRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Pothole, error) {
	var pothole models.Pothole
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&pothole)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete pothole: %w", err)
	}
	return &pothole, nil
}

func (r *potholeRepository) Stats(ctx context.Context) (*models.PotholeStats, error) {
	stats := &models.PotholeStats{
		ByStatus:   make(map[string]int64),
		BySeverity: make(map[string]int64),
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count potholes: %w", err)
	}
	stats.Total = total

	for _, status := range []models.PotholeStatus{
		models.StatusReported,
		models.StatusInProgress,
		models.StatusResolved,
	} {
		count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			return nil, fmt.Errorf("failed to count potholes by status: %w", err)
		}
		stats.ByStatus[string(status)] = count
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$severity",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate pothole severities: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Severity string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode severity counts: %w", err)
	}
	for _, res := range results {
		stats.BySeverity[res.Severity] = res.Count
	}

	return stats, nil
}
