// ============================================================================
// internal/subject/service.go
// Subject catalog CRUD and grade-distribution configuration
// ============================================================================

// Package subject manages the course catalog, including the per-component
// grade ceilings a doctor configures for each subject.
package subject

import (
	"context"
	"log"
	"math"

	"campusgrades/internal/shared"
	"campusgrades/internal/store"
)

// Service implements subject CRUD on top of the subject store.
type Service struct {
	subjects store.SubjectStore
}

// NewService creates a subject service.
func NewService(subjects store.SubjectStore) *Service {
	return &Service{subjects: subjects}
}

// UpsertSubjectRequest is the admin create/update payload. Grade ceilings
// are configured separately through UpdateGradeDistribution.
type UpsertSubjectRequest struct {
	Code           string `json:"code" validate:"required"`
	Name           string `json:"name" validate:"required"`
	CreditHours    int32  `json:"creditHours" validate:"required,gt=0"`
	Specialization string `json:"specialization" validate:"required,oneof=CS IT"`
	Level          string `json:"level" validate:"required,oneof=One Two Three Four"`
	Semester       string `json:"semester" validate:"required,oneof=One Two"`
}

// DistributionRequest sets all five grade ceilings at once. The four
// component maxima must sum to the total maximum.
type DistributionRequest struct {
	MidtermMax   *float64 `json:"midtermGrade" validate:"required,min=0,max=100"`
	PracticalMax *float64 `json:"practicalGrade" validate:"required,min=0,max=100"`
	YearsWorkMax *float64 `json:"yearsWorkGrade" validate:"required,min=0,max=100"`
	FinalMax     *float64 `json:"finalGrade" validate:"required,min=0,max=100"`
	TotalMax     *float64 `json:"totalGrade" validate:"required,min=0,max=100"`
}

// Create adds a subject to the catalog.
func (s *Service) Create(ctx context.Context, req UpsertSubjectRequest) (*shared.Subject, error) {
	subject := &shared.Subject{
		Code:           req.Code,
		Name:           req.Name,
		CreditHours:    req.CreditHours,
		Specialization: req.Specialization,
		Level:          req.Level,
		Semester:       req.Semester,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Get returns a subject by ID or NotFound.
func (s *Service) Get(ctx context.Context, id string) (*shared.Subject, error) {
	subject, err := s.subjects.Find(ctx, id)
	if err != nil {
		log.Printf("Error loading subject %s: %v", id, err)
		return nil, shared.Internal("failed to load subject")
	}
	if subject == nil {
		return nil, shared.NotFound("Subject not found")
	}
	return subject, nil
}

// List returns the whole catalog sorted by code.
func (s *Service) List(ctx context.Context) ([]shared.Subject, error) {
	subjects, err := s.subjects.ListAll(ctx)
	if err != nil {
		log.Printf("Error listing subjects: %v", err)
		return nil, shared.Internal("failed to list subjects")
	}
	return subjects, nil
}

// Update rewrites a subject's catalog fields, leaving the configured grade
// ceilings as they are.
func (s *Service) Update(ctx context.Context, id string, req UpsertSubjectRequest) (*shared.Subject, error) {
	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	subject.Code = req.Code
	subject.Name = req.Name
	subject.CreditHours = req.CreditHours
	subject.Specialization = req.Specialization
	subject.Level = req.Level
	subject.Semester = req.Semester

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// UpdateGradeDistribution sets the subject's five grade ceilings. The four
// component maxima must add up to exactly the total maximum; otherwise the
// scoring engine could accept component sets that can never reach, or
// always exceed, the configured total.
func (s *Service) UpdateGradeDistribution(ctx context.Context, id string, req DistributionRequest) (*shared.Subject, error) {
	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sum := *req.MidtermMax + *req.PracticalMax + *req.YearsWorkMax + *req.FinalMax
	if math.Abs(sum-*req.TotalMax) > 1e-9 {
		return nil, shared.FieldViolation(
			"Grade distribution does not add up",
			"totalGrade",
			"The sum of the component maximums must equal the total grade",
		)
	}

	subject.MidtermMax = req.MidtermMax
	subject.PracticalMax = req.PracticalMax
	subject.YearsWorkMax = req.YearsWorkMax
	subject.FinalMax = req.FinalMax
	subject.TotalMax = req.TotalMax

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Delete removes a subject; the store cascades its grade records.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.subjects.Delete(ctx, id)
}
