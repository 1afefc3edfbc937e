package subject

import (
	"context"
	"testing"

	"campusgrades/internal/shared"
	"campusgrades/internal/store/storetest"
)

func floatPtr(v float64) *float64 { return &v }

func TestCreateAndGetSubject(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storetest.NewSubjectStore())

	created, err := svc.Create(ctx, UpsertSubjectRequest{
		Code: "CS101", Name: "Introduction to Programming", CreditHours: 3,
		Specialization: shared.SpecCS, Level: shared.LevelOne, Semester: shared.SemesterOne,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Code != "CS101" || got.CreditHours != 3 {
		t.Errorf("subject = %+v", got)
	}
	if got.TotalMax != nil {
		t.Errorf("new subject should have no grade ceilings")
	}

	t.Run("duplicate code", func(t *testing.T) {
		_, err := svc.Create(ctx, UpsertSubjectRequest{
			Code: "CS101", Name: "Duplicate", CreditHours: 3,
			Specialization: shared.SpecCS, Level: shared.LevelOne, Semester: shared.SemesterOne,
		})
		if !shared.IsCode(err, shared.CodeConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})
}

func TestUpdateGradeDistribution(t *testing.T) {
	ctx := context.Background()
	store := storetest.NewSubjectStore(shared.Subject{
		ID: "sub1", Code: "CS101", Name: "Intro", CreditHours: 3,
	})
	svc := NewService(store)

	t.Run("valid distribution", func(t *testing.T) {
		subject, err := svc.UpdateGradeDistribution(ctx, "sub1", DistributionRequest{
			MidtermMax:   floatPtr(20),
			PracticalMax: floatPtr(15),
			YearsWorkMax: floatPtr(15),
			FinalMax:     floatPtr(50),
			TotalMax:     floatPtr(100),
		})
		if err != nil {
			t.Fatalf("UpdateGradeDistribution failed: %v", err)
		}
		if subject.MidtermMax == nil || *subject.MidtermMax != 20 {
			t.Errorf("midterm max not stored: %+v", subject)
		}
		if *subject.TotalMax != 100 {
			t.Errorf("total max = %v", *subject.TotalMax)
		}
	})

	t.Run("components must sum to total", func(t *testing.T) {
		_, err := svc.UpdateGradeDistribution(ctx, "sub1", DistributionRequest{
			MidtermMax:   floatPtr(20),
			PracticalMax: floatPtr(15),
			YearsWorkMax: floatPtr(15),
			FinalMax:     floatPtr(40),
			TotalMax:     floatPtr(100),
		})
		if !shared.IsCode(err, shared.CodeValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if msgs := shared.AsError(err).Fields["totalGrade"]; len(msgs) == 0 {
			t.Errorf("expected field error on totalGrade, got %v", shared.AsError(err).Fields)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := svc.UpdateGradeDistribution(ctx, "ghost", DistributionRequest{
			MidtermMax: floatPtr(25), PracticalMax: floatPtr(25),
			YearsWorkMax: floatPtr(25), FinalMax: floatPtr(25), TotalMax: floatPtr(100),
		})
		if !shared.IsCode(err, shared.CodeNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestUpdateSubjectKeepsDistribution(t *testing.T) {
	ctx := context.Background()
	store := storetest.NewSubjectStore(shared.Subject{
		ID: "sub1", Code: "CS101", Name: "Intro", CreditHours: 3,
		MidtermMax: floatPtr(20), PracticalMax: floatPtr(15),
		YearsWorkMax: floatPtr(15), FinalMax: floatPtr(50), TotalMax: floatPtr(100),
	})
	svc := NewService(store)

	subject, err := svc.Update(ctx, "sub1", UpsertSubjectRequest{
		Code: "CS101", Name: "Intro to Programming", CreditHours: 4,
		Specialization: shared.SpecCS, Level: shared.LevelOne, Semester: shared.SemesterOne,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if subject.CreditHours != 4 {
		t.Errorf("credit hours = %d, want 4", subject.CreditHours)
	}
	if subject.TotalMax == nil || *subject.TotalMax != 100 {
		t.Errorf("catalog update must not clear the grade distribution: %+v", subject)
	}
}

func TestDeleteSubject(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storetest.NewSubjectStore(shared.Subject{ID: "sub1", Code: "CS101"}))

	if err := svc.Delete(ctx, "sub1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, "sub1"); !shared.IsCode(err, shared.CodeNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
