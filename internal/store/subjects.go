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

// MongoSubjectStore implements SubjectStore on MongoDB.
type MongoSubjectStore struct {
	col       *mongo.Collection
	gradesCol *mongo.Collection
}

// NewMongoSubjectStore creates a subject store over the given database.
func NewMongoSubjectStore(db *mongo.Database) *MongoSubjectStore {
	return &MongoSubjectStore{
		col:       db.Collection(shared.ColSubjects),
		gradesCol: db.Collection(shared.ColGrades),
	}
}

func (s *MongoSubjectStore) Find(ctx context.Context, id string) (*shared.Subject, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var subject shared.Subject
	err := s.col.FindOne(queryCtx, bson.M{"_id": id}).Decode(&subject)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *MongoSubjectStore) FindByCode(ctx context.Context, code string) (*shared.Subject, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var subject shared.Subject
	err := s.col.FindOne(queryCtx, bson.M{"code": code}).Decode(&subject)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *MongoSubjectStore) ListAll(ctx context.Context) ([]shared.Subject, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.col.Find(queryCtx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	subjects := []shared.Subject{}
	if err := cursor.All(queryCtx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (s *MongoSubjectStore) Create(ctx context.Context, subject *shared.Subject) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	subject.CreatedAt = time.Now()

	_, err := s.col.InsertOne(queryCtx, subject)
	if mongo.IsDuplicateKeyError(err) {
		return shared.Conflict("Subject already exists", "code",
			"A subject with this code already exists")
	}
	return err
}

func (s *MongoSubjectStore) Update(ctx context.Context, subject *shared.Subject) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	subject.UpdatedAt = time.Now()
	result, err := s.col.ReplaceOne(queryCtx, bson.M{"_id": subject.ID}, subject)
	if mongo.IsDuplicateKeyError(err) {
		return shared.Conflict("Subject already exists", "code",
			"A subject with this code already exists")
	}
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.NotFound("Subject not found")
	}
	return nil
}

// Delete removes the subject and cascades to its grade records.
func (s *MongoSubjectStore) Delete(ctx context.Context, id string) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.col.DeleteOne(queryCtx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.NotFound("Subject not found")
	}

	_, err = s.gradesCol.DeleteMany(queryCtx, bson.M{"subject_id": id})
	return err
}
