// ============================================================================
// internal/grading/service.go
// Grade record write paths: create, update, fetch
// ============================================================================

// Package grading owns grade records and everything derived from them: the
// scoring engine, the GPA/CGPA aggregation views and subject statistics.
package grading

import (
	"context"
	"log"

	"campusgrades/internal/settings"
	"campusgrades/internal/shared"
	"campusgrades/internal/store"
)

// Service implements grade writes and the derived read views.
type Service struct {
	students store.StudentStore
	subjects store.SubjectStore
	grades   store.GradeStore
	settings settings.Provider
}

// NewService creates a grading service over the given stores and the
// effective-settings provider.
func NewService(students store.StudentStore, subjects store.SubjectStore, grades store.GradeStore, provider settings.Provider) *Service {
	return &Service{
		students: students,
		subjects: subjects,
		grades:   grades,
		settings: provider,
	}
}

// GradeRequest is the payload for creating or updating a grade record.
// Absent components decode as zero and are written as zero; a grade record
// is always rewritten whole.
type GradeRequest struct {
	Components
	Status string `json:"gradeStatus" validate:"required,oneof=pass i i* ff* others"`
}

// CreateGradeRequest is the create payload; the subject rides in the body
// because the create route only names the student.
type CreateGradeRequest struct {
	SubjectID string `json:"subject_id" validate:"required"`
	GradeRequest
}

// CreateGrade records a new grade for a student in a subject. At most one
// record may exist per (student, subject); a duplicate is a Conflict and
// leaves the existing record untouched.
func (s *Service) CreateGrade(ctx context.Context, studentID, subjectID string, req GradeRequest) (*shared.GradeRecord, error) {
	student, err := s.students.Find(ctx, studentID)
	if err != nil {
		log.Printf("Error loading student %s: %v", studentID, err)
		return nil, shared.Internal("failed to load student")
	}
	if student == nil {
		return nil, shared.NotFound("Student not found")
	}

	subject, err := s.subjects.Find(ctx, subjectID)
	if err != nil {
		log.Printf("Error loading subject %s: %v", subjectID, err)
		return nil, shared.Internal("failed to load subject")
	}
	if subject == nil {
		return nil, shared.NotFound("Subject not found")
	}

	existing, err := s.grades.FindByStudentAndSubject(ctx, studentID, subjectID)
	if err != nil {
		log.Printf("Error checking existing grade: %v", err)
		return nil, shared.Internal("failed to check existing grade")
	}
	if existing != nil {
		return nil, shared.Conflict(
			"Grade already exists for this student in the specified subject",
			"subject_id",
			"This student already has a grade record for this subject",
		)
	}

	total, letter, err := Score(req.Components, subject)
	if err != nil {
		return nil, err
	}

	eff, err := s.settings.Effective(ctx)
	if err != nil {
		return nil, err
	}

	record := &shared.GradeRecord{
		StudentID:    studentID,
		SubjectID:    subjectID,
		Midterm:      req.Midterm,
		Practical:    req.Practical,
		YearsWork:    req.YearsWork,
		Final:        req.Final,
		Total:        total,
		Letter:       letter,
		Status:       req.Status,
		AcademicYear: eff.AcademicYear,
	}
	if err := s.grades.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateGrade rewrites an existing grade record: every component is
// re-validated against the subject's current maxima, the total and letter
// are recomputed, and the academic year is refreshed from the effective
// settings.
func (s *Service) UpdateGrade(ctx context.Context, studentID, subjectID string, req GradeRequest) (*shared.GradeRecord, error) {
	record, err := s.grades.FindByStudentAndSubject(ctx, studentID, subjectID)
	if err != nil {
		log.Printf("Error loading grade: %v", err)
		return nil, shared.Internal("failed to load grade")
	}
	if record == nil {
		return nil, shared.NotFound("Grade not found for this student in the specified subject")
	}

	subject, err := s.subjects.Find(ctx, subjectID)
	if err != nil {
		log.Printf("Error loading subject %s: %v", subjectID, err)
		return nil, shared.Internal("failed to load subject")
	}
	if subject == nil {
		return nil, shared.NotFound("Subject not found")
	}

	total, letter, err := Score(req.Components, subject)
	if err != nil {
		return nil, err
	}

	eff, err := s.settings.Effective(ctx)
	if err != nil {
		return nil, err
	}

	record.Midterm = req.Midterm
	record.Practical = req.Practical
	record.YearsWork = req.YearsWork
	record.Final = req.Final
	record.Total = total
	record.Letter = letter
	record.Status = req.Status
	record.AcademicYear = eff.AcademicYear

	if err := s.grades.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetGrade returns the grade record for a student in a subject, or NotFound.
func (s *Service) GetGrade(ctx context.Context, studentID, subjectID string) (*shared.GradeRecord, error) {
	record, err := s.grades.FindByStudentAndSubject(ctx, studentID, subjectID)
	if err != nil {
		log.Printf("Error loading grade: %v", err)
		return nil, shared.Internal("failed to load grade")
	}
	if record == nil {
		return nil, shared.NotFound("Grade not found for this student in the specified subject")
	}
	return record, nil
}
