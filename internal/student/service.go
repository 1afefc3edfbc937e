// ============================================================================
// internal/student/service.go
// Student account CRUD and paginated listing
// ============================================================================

// Package student manages student accounts.
package student

import (
	"context"
	"log"

	"campusgrades/internal/shared"
	"campusgrades/internal/store"
)

// Service implements student CRUD on top of the student store.
type Service struct {
	students store.StudentStore
}

// NewService creates a student service.
func NewService(students store.StudentStore) *Service {
	return &Service{students: students}
}

// UpsertStudentRequest is the create/update payload.
type UpsertStudentRequest struct {
	Code           string `json:"code" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	PhoneNumber    string `json:"phoneNumber" validate:"required"`
	Level          string `json:"level" validate:"required,oneof=One Two Three Four"`
	Specialization string `json:"specialization" validate:"required,oneof=CS IT"`
	AcademicYear   string `json:"academic_year" validate:"required"`
}

// Create registers a new student. Code and email are unique; collisions on
// either come back as a field-scoped Conflict.
func (s *Service) Create(ctx context.Context, req UpsertStudentRequest) (*shared.Student, error) {
	student := &shared.Student{
		Code:           req.Code,
		Name:           req.Name,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Level:          req.Level,
		Specialization: req.Specialization,
		AcademicYear:   req.AcademicYear,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Get returns a student by ID or NotFound.
func (s *Service) Get(ctx context.Context, id string) (*shared.Student, error) {
	student, err := s.students.Find(ctx, id)
	if err != nil {
		log.Printf("Error loading student %s: %v", id, err)
		return nil, shared.Internal("failed to load student")
	}
	if student == nil {
		return nil, shared.NotFound("Student not found")
	}
	return student, nil
}

// List pages through students with the optional filters applied.
func (s *Service) List(ctx context.Context, filter store.StudentFilter) (*store.StudentPage, error) {
	page, err := s.students.List(ctx, filter)
	if err != nil {
		log.Printf("Error listing students: %v", err)
		return nil, shared.Internal("failed to list students")
	}
	return page, nil
}

// Update rewrites a student's profile fields.
func (s *Service) Update(ctx context.Context, id string, req UpsertStudentRequest) (*shared.Student, error) {
	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	student.Code = req.Code
	student.Name = req.Name
	student.Email = req.Email
	student.PhoneNumber = req.PhoneNumber
	student.Level = req.Level
	student.Specialization = req.Specialization
	student.AcademicYear = req.AcademicYear

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student; the store cascades the student's grade records.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.students.Delete(ctx, id)
}
