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

type adminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) interfaces.AdminRepository {
	return &adminRepository{
		collection: db.Collection(utils.CollectionAdmins),
	}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var admin models.Admin
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *adminRepository) ConsumeVerifyToken(ctx context.Context, token string, now time.Time) (*models.Admin, error) {
	filter := bson.M{
		"verify_token": token,
		"token_expiry": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"is_verified": true, "updated_at": now},
		"$unset": bson.M{"verify_token": "", "token_expiry": ""},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var admin models.Admin
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to consume verify token: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*models.Admin, error) {
	filter := bson.M{
		"reset_password_token":  token,
		"reset_password_expiry": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"password": passwordHash, "updated_at": now},
		"$unset": bson.M{"reset_password_token": "", "reset_password_expiry": ""},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var admin models.Admin
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to consume reset token: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) ListSubAdmins(ctx context.Context) ([]*models.Admin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"role": models.AdminRoleSubAdmin}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-admins: %w", err)
	}
	defer cursor.Close(ctx)

	var admins []*models.Admin
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, fmt.Errorf("failed to decode sub-admins: %w", err)
	}
	return admins, nil
}

func (r *adminRepository) GetSubAdminByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var admin models.Admin
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "role": models.AdminRoleSubAdmin}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sub-admin: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) DeleteSubAdmin(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "role": models.AdminRoleSubAdmin})
	if err != nil {
		return fmt.Errorf("failed to delete sub-admin: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}
