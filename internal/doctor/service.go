// ============================================================================
// internal/doctor/service.go
// Doctor account CRUD with bcrypt credential handling
// ============================================================================

// Package doctor manages instructor accounts.
package doctor

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"campusgrades/internal/shared"
	"campusgrades/internal/store"
)

// Service implements doctor CRUD on top of the doctor store.
type Service struct {
	doctors    store.DoctorStore
	bcryptCost int
}

// NewService creates a doctor service. bcryptCost governs new password
// hashes only; existing hashes verify at whatever cost they were minted.
func NewService(doctors store.DoctorStore, bcryptCost int) *Service {
	return &Service{doctors: doctors, bcryptCost: bcryptCost}
}

// CreateDoctorRequest is the create payload; the password arrives in clear
// and is hashed before it ever reaches the store.
type CreateDoctorRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
}

// UpdateDoctorRequest is the update payload. An empty password keeps the
// current hash.
type UpdateDoctorRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"omitempty,min=8"`
}

// Create registers a new doctor.
func (s *Service) Create(ctx context.Context, req CreateDoctorRequest) (*shared.Doctor, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return nil, shared.Internal("failed to hash password")
	}

	doctor := &shared.Doctor{
		Code:         req.Code,
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// Get returns a doctor by ID or NotFound.
func (s *Service) Get(ctx context.Context, id string) (*shared.Doctor, error) {
	doctor, err := s.doctors.Find(ctx, id)
	if err != nil {
		log.Printf("Error loading doctor %s: %v", id, err)
		return nil, shared.Internal("failed to load doctor")
	}
	if doctor == nil {
		return nil, shared.NotFound("Doctor not found")
	}
	return doctor, nil
}

// List returns every doctor sorted by name.
func (s *Service) List(ctx context.Context) ([]shared.Doctor, error) {
	doctors, err := s.doctors.ListAll(ctx)
	if err != nil {
		log.Printf("Error listing doctors: %v", err)
		return nil, shared.Internal("failed to list doctors")
	}
	return doctors, nil
}

// Update rewrites a doctor's profile, rehashing the password only when a
// new one is supplied.
func (s *Service) Update(ctx context.Context, id string, req UpdateDoctorRequest) (*shared.Doctor, error) {
	doctor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.Code = req.Code
	doctor.Name = req.Name
	doctor.Email = req.Email
	doctor.PhoneNumber = req.PhoneNumber

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return nil, shared.Internal("failed to hash password")
		}
		doctor.PasswordHash = string(hash)
	}

	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// Delete removes a doctor account.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.doctors.Delete(ctx, id)
}
