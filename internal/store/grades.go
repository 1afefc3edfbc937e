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

// MongoGradeStore implements GradeStore on MongoDB.
type MongoGradeStore struct {
	col *mongo.Collection
}

// NewMongoGradeStore creates a grade store over the given database.
func NewMongoGradeStore(db *mongo.Database) *MongoGradeStore {
	return &MongoGradeStore{col: db.Collection(shared.ColGrades)}
}

func (s *MongoGradeStore) FindByStudentAndSubject(ctx context.Context, studentID, subjectID string) (*shared.GradeRecord, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var record shared.GradeRecord
	err := s.col.FindOne(queryCtx, bson.M{
		"student_id": studentID,
		"subject_id": subjectID,
	}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *MongoGradeStore) FindByStudent(ctx context.Context, studentID string) ([]shared.GradeRecord, error) {
	return s.findAll(ctx, bson.M{"student_id": studentID})
}

func (s *MongoGradeStore) FindBySubject(ctx context.Context, subjectID string) ([]shared.GradeRecord, error) {
	return s.findAll(ctx, bson.M{"subject_id": subjectID})
}

func (s *MongoGradeStore) findAll(ctx context.Context, filter bson.M) ([]shared.GradeRecord, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.col.Find(queryCtx, filter,
		options.Find().SetSort(bson.D{{Key: "subject_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	records := []shared.GradeRecord{}
	if err := cursor.All(queryCtx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create inserts a new grade record. The unique (student_id, subject_id)
// index turns a racing duplicate into the same Conflict the application
// pre-check reports.
func (s *MongoGradeStore) Create(ctx context.Context, record *shared.GradeRecord) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now()

	_, err := s.col.InsertOne(queryCtx, record)
	if mongo.IsDuplicateKeyError(err) {
		return shared.Conflict(
			"Grade already exists for this student in the specified subject",
			"subject_id",
			"This student already has a grade record for this subject",
		)
	}
	return err
}

func (s *MongoGradeStore) Update(ctx context.Context, record *shared.GradeRecord) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	record.UpdatedAt = time.Now()
	result, err := s.col.ReplaceOne(queryCtx, bson.M{"_id": record.ID}, record)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.NotFound("Grade not found")
	}
	return nil
}
