package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusgrades/internal/shared"
)

// MongoSettingStore implements SettingStore on MongoDB. Exactly one live
// document is expected; GetCurrent returns the oldest one when several
// exist, so a stray duplicate never flips the effective configuration.
type MongoSettingStore struct {
	col *mongo.Collection
}

// NewMongoSettingStore creates a setting store over the given database.
func NewMongoSettingStore(db *mongo.Database) *MongoSettingStore {
	return &MongoSettingStore{col: db.Collection(shared.ColSettings)}
}

func (s *MongoSettingStore) GetCurrent(ctx context.Context) (*shared.GlobalSetting, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var setting shared.GlobalSetting
	err := s.col.FindOne(queryCtx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})).Decode(&setting)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *MongoSettingStore) Find(ctx context.Context, id string) (*shared.GlobalSetting, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var setting shared.GlobalSetting
	err := s.col.FindOne(queryCtx, bson.M{"_id": id}).Decode(&setting)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *MongoSettingStore) Create(ctx context.Context, setting *shared.GlobalSetting) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}
	setting.CreatedAt = time.Now()

	_, err := s.col.InsertOne(queryCtx, setting)
	return err
}

func (s *MongoSettingStore) Update(ctx context.Context, setting *shared.GlobalSetting) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	setting.UpdatedAt = time.Now()
	result, err := s.col.ReplaceOne(queryCtx, bson.M{"_id": setting.ID}, setting)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.NotFound("System setting not found")
	}
	return nil
}

func (s *MongoSettingStore) Delete(ctx context.Context, id string) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.col.DeleteOne(queryCtx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.NotFound("Admin setting not found")
	}
	return nil
}
