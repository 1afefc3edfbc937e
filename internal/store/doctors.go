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

// MongoDoctorStore implements DoctorStore on MongoDB.
type MongoDoctorStore struct {
	col *mongo.Collection
}

// NewMongoDoctorStore creates a doctor store over the given database.
func NewMongoDoctorStore(db *mongo.Database) *MongoDoctorStore {
	return &MongoDoctorStore{col: db.Collection(shared.ColDoctors)}
}

func (s *MongoDoctorStore) Find(ctx context.Context, id string) (*shared.Doctor, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doctor shared.Doctor
	err := s.col.FindOne(queryCtx, bson.M{"_id": id}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (s *MongoDoctorStore) FindByCode(ctx context.Context, code string) (*shared.Doctor, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doctor shared.Doctor
	err := s.col.FindOne(queryCtx, bson.M{"code": code}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (s *MongoDoctorStore) ListAll(ctx context.Context) ([]shared.Doctor, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.col.Find(queryCtx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	doctors := []shared.Doctor{}
	if err := cursor.All(queryCtx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (s *MongoDoctorStore) Create(ctx context.Context, doctor *shared.Doctor) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if doctor.ID == "" {
		doctor.ID = uuid.NewString()
	}
	doctor.CreatedAt = time.Now()

	_, err := s.col.InsertOne(queryCtx, doctor)
	if mongo.IsDuplicateKeyError(err) {
		return shared.Conflict("Doctor already exists", "code",
			"A doctor with this code already exists")
	}
	return err
}

func (s *MongoDoctorStore) Update(ctx context.Context, doctor *shared.Doctor) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doctor.UpdatedAt = time.Now()
	result, err := s.col.ReplaceOne(queryCtx, bson.M{"_id": doctor.ID}, doctor)
	if mongo.IsDuplicateKeyError(err) {
		return shared.Conflict("Doctor already exists", "code",
			"A doctor with this code already exists")
	}
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.NotFound("Doctor not found")
	}
	return nil
}

func (s *MongoDoctorStore) Delete(ctx context.Context, id string) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.col.DeleteOne(queryCtx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.NotFound("Doctor not found")
	}
	return nil
}
