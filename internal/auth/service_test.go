package auth

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"campusgrades/internal/shared"
	"campusgrades/internal/store/storetest"
)

const testSecret = "test-secret"

func newTestService(t *testing.T) (*Service, *storetest.DoctorStore, *storetest.StudentStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	doctors := storetest.NewDoctorStore(shared.Doctor{
		ID: "doc1", Code: "DOC1001", Name: "Dr. Amina Hassan", PasswordHash: string(hash),
	})
	students := storetest.NewStudentStore(shared.Student{
		ID: "stu1", Code: "STU2001", Name: "Sara Adel",
	})
	return NewService(doctors, students, testSecret, time.Hour), doctors, students
}

func TestLoginDoctor(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	resp, err := svc.Login(ctx, LoginRequest{Code: "DOC1001", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Role != shared.RoleDoctor || resp.ID != "doc1" {
		t.Errorf("response = %+v, want doctor doc1", resp)
	}
	if resp.Token == "" {
		t.Errorf("expected a token")
	}

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Code: "DOC1001", Password: "wrong"})
		if !shared.IsCode(err, shared.CodeUnauthenticated) {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
	})
}

func TestLoginStudent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	// A student's secret is its own code.
	resp, err := svc.Login(ctx, LoginRequest{Code: "STU2001", Password: "STU2001"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Role != shared.RoleStudent || resp.ID != "stu1" {
		t.Errorf("response = %+v, want student stu1", resp)
	}

	t.Run("wrong secret", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Code: "STU2001", Password: "something-else"})
		if !shared.IsCode(err, shared.CodeUnauthenticated) {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
	})
}

func TestLoginUnknownCode(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Login(ctx, LoginRequest{Code: "NOBODY", Password: "whatever"})
	if !shared.IsCode(err, shared.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)

	token, err := svc.IssueToken("doc1", "DOC1001", "Dr. Amina Hassan", shared.RoleDoctor)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Subject != "doc1" || claims.Code != "DOC1001" || claims.Role != shared.RoleDoctor {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Name != "Dr. Amina Hassan" {
		t.Errorf("name claim = %q", claims.Name)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	doctors := storetest.NewDoctorStore()
	students := storetest.NewStudentStore()

	past := time.Now().Add(-2 * time.Hour)
	issuer := NewServiceWithClock(doctors, students, testSecret, time.Hour,
		func() time.Time { return past })
	token, err := issuer.IssueToken("stu1", "STU2001", "Sara Adel", shared.RoleStudent)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	verifier := NewService(doctors, students, testSecret, time.Hour)
	if _, err := verifier.ParseToken(token); !shared.IsCode(err, shared.CodeUnauthenticated) {
		t.Fatalf("expected unauthenticated for expired token, got %v", err)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	svc, doctors, students := newTestService(t)

	token, err := svc.IssueToken("doc1", "DOC1001", "Dr. Amina Hassan", shared.RoleDoctor)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	other := NewService(doctors, students, "different-secret", time.Hour)
	if _, err := other.ParseToken(token); !shared.IsCode(err, shared.CodeUnauthenticated) {
		t.Fatalf("expected unauthenticated for wrong secret, got %v", err)
	}
}
