// ============================================================================
// internal/auth/service.go
// Login (doctor/student credential variants) and JWT issue/verify
// ============================================================================

// Package auth authenticates doctors and students against a single login
// endpoint and mints the HS256 tokens the gateway middleware verifies.
package auth

import (
	"context"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"campusgrades/internal/shared"
	"campusgrades/internal/store"
)

// Claims is the token payload. ID rides in the registered Subject claim.
type Claims struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service resolves credentials and manages tokens.
type Service struct {
	doctors  store.DoctorStore
	students store.StudentStore
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewService creates an auth service. tokenTTL bounds every issued token.
func NewService(doctors store.DoctorStore, students store.StudentStore, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		doctors:  doctors,
		students: students,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// NewServiceWithClock creates an auth service with an injected clock.
func NewServiceWithClock(doctors store.DoctorStore, students store.StudentStore, secret string, tokenTTL time.Duration, now func() time.Time) *Service {
	s := NewService(doctors, students, secret, tokenTTL)
	s.now = now
	return s
}

// LoginRequest is the single login payload shared by both account variants.
type LoginRequest struct {
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the token and the authenticated identity.
type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Login tries the credential variants in a fixed order: doctor (bcrypt hash
// compare), then student, whose secret is literally its own code. A code
// that matches no account at all is NotFound; a known account with a wrong
// secret is Unauthenticated. There is no admin credential source yet.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	doctor, err := s.doctors.FindByCode(ctx, req.Code)
	if err != nil {
		log.Printf("Error looking up doctor %s: %v", req.Code, err)
		return nil, shared.Internal("failed to look up account")
	}
	if doctor != nil {
		if bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(req.Password)) != nil {
			return nil, shared.Unauthenticated("Invalid credentials")
		}
		return s.success(doctor.ID, doctor.Code, doctor.Name, shared.RoleDoctor)
	}

	student, err := s.students.FindByCode(ctx, req.Code)
	if err != nil {
		log.Printf("Error looking up student %s: %v", req.Code, err)
		return nil, shared.Internal("failed to look up account")
	}
	if student != nil {
		if req.Password != student.Code {
			return nil, shared.Unauthenticated("Invalid credentials")
		}
		return s.success(student.ID, student.Code, student.Name, shared.RoleStudent)
	}

	return nil, shared.NotFound("User not found")
}

func (s *Service) success(id, code, name, role string) (*LoginResponse, error) {
	token, err := s.IssueToken(id, code, name, role)
	if err != nil {
		log.Printf("Error signing token for %s: %v", code, err)
		return nil, shared.Internal("failed to issue token")
	}
	return &LoginResponse{Token: token, ID: id, Code: code, Name: name, Role: role}, nil
}

// IssueToken signs an HS256 token for the given identity.
func (s *Service) IssueToken(id, code, name, role string) (string, error) {
	now := s.now()
	claims := Claims{
		Code: code,
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies signature, algorithm and expiry, returning the claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, shared.Unauthenticated("Invalid or expired token")
	}
	return claims, nil
}
