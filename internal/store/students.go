package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusgrades/internal/shared"
)

const queryTimeout = 10 * time.Second

// MongoStudentStore implements StudentStore on MongoDB.
type MongoStudentStore struct {
	col       *mongo.Collection
	gradesCol *mongo.Collection
}

// NewMongoStudentStore creates a student store over the given database.
func NewMongoStudentStore(db *mongo.Database) *MongoStudentStore {
	return &MongoStudentStore{
		col:       db.Collection(shared.ColStudents),
		gradesCol: db.Collection(shared.ColGrades),
	}
}

func (s *MongoStudentStore) Find(ctx context.Context, id string) (*shared.Student, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var student shared.Student
	err := s.col.FindOne(queryCtx, bson.M{"_id": id}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *MongoStudentStore) FindByCode(ctx context.Context, code string) (*shared.Student, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var student shared.Student
	err := s.col.FindOne(queryCtx, bson.M{"code": code}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *MongoStudentStore) List(ctx context.Context, filter StudentFilter) (*StudentPage, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		query["code"] = bson.M{"$regex": primitive.Regex{Pattern: filter.Search}}
	}
	if filter.Level != "" {
		query["level"] = filter.Level
	}
	if filter.Specialization != "" {
		query["specialization"] = filter.Specialization
	}
	if filter.AcademicYear != "" {
		query["academic_year"] = filter.AcademicYear
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 10
	}

	total, err := s.col.CountDocuments(queryCtx, query)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "code", Value: 1}}).
		SetSkip((page - 1) * perPage).
		SetLimit(perPage)

	cursor, err := s.col.Find(queryCtx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	students := []shared.Student{}
	if err := cursor.All(queryCtx, &students); err != nil {
		return nil, err
	}

	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}

	return &StudentPage{
		CurrentPage: page,
		PerPage:     perPage,
		TotalPages:  totalPages,
		Students:    students,
	}, nil
}

func (s *MongoStudentStore) Create(ctx context.Context, student *shared.Student) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	student.CreatedAt = time.Now()

	_, err := s.col.InsertOne(queryCtx, student)
	if mongo.IsDuplicateKeyError(err) {
		return shared.Conflict("Student already exists", "code",
			"A student with this code or email already exists")
	}
	return err
}

func (s *MongoStudentStore) Update(ctx context.Context, student *shared.Student) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	student.UpdatedAt = time.Now()
	result, err := s.col.ReplaceOne(queryCtx, bson.M{"_id": student.ID}, student)
	if mongo.IsDuplicateKeyError(err) {
		return shared.Conflict("Student already exists", "code",
			"A student with this code or email already exists")
	}
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.NotFound("Student not found")
	}
	return nil
}

// Delete removes the student and cascades to its grade records.
func (s *MongoStudentStore) Delete(ctx context.Context, id string) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.col.DeleteOne(queryCtx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.NotFound("Student not found")
	}

	_, err = s.gradesCol.DeleteMany(queryCtx, bson.M{"student_id": id})
	return err
}

// BulkSetAcademicYear overwrites every student's academic year. Best
// effort: no rollback on partial failure.
func (s *MongoStudentStore) BulkSetAcademicYear(ctx context.Context, year string) (int64, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := s.col.UpdateMany(queryCtx, bson.M{}, bson.M{
		"$set": bson.M{"academic_year": year, "updated_at": time.Now()},
	})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// UpdateGPA refreshes the denormalized GPA hint on a student.
func (s *MongoStudentStore) UpdateGPA(ctx context.Context, id string, gpa float64) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.col.UpdateOne(queryCtx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"gpa": gpa, "updated_at": time.Now()},
	})
	return err
}
