package student

import (
	"context"
	"testing"

	"campusgrades/internal/shared"
	"campusgrades/internal/store"
	"campusgrades/internal/store/storetest"
)

func seedStudents() *storetest.StudentStore {
	return storetest.NewStudentStore(
		shared.Student{ID: "stu1", Code: "STU2001", Name: "Sara Adel", Email: "sara@example.edu",
			Level: shared.LevelOne, Specialization: shared.SpecCS, AcademicYear: "2026-2027"},
		shared.Student{ID: "stu2", Code: "STU2002", Name: "Youssef Nabil", Email: "youssef@example.edu",
			Level: shared.LevelOne, Specialization: shared.SpecCS, AcademicYear: "2026-2027"},
		shared.Student{ID: "stu3", Code: "STU3001", Name: "Mona Khaled", Email: "mona@example.edu",
			Level: shared.LevelTwo, Specialization: shared.SpecIT, AcademicYear: "2026-2027"},
	)
}

func TestListStudents(t *testing.T) {
	ctx := context.Background()
	svc := NewService(seedStudents())

	t.Run("search by code substring", func(t *testing.T) {
		page, err := svc.List(ctx, store.StudentFilter{Search: "STU20", Page: 1, PerPage: 10})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(page.Students) != 2 {
			t.Errorf("expected 2 matches for STU20, got %d", len(page.Students))
		}
	})

	t.Run("filter by level and specialization", func(t *testing.T) {
		page, err := svc.List(ctx, store.StudentFilter{
			Level: shared.LevelTwo, Specialization: shared.SpecIT, Page: 1, PerPage: 10,
		})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(page.Students) != 1 || page.Students[0].Code != "STU3001" {
			t.Errorf("expected only STU3001, got %+v", page.Students)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := svc.List(ctx, store.StudentFilter{Page: 2, PerPage: 2})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if page.TotalPages != 2 || page.CurrentPage != 2 {
			t.Errorf("pages = %d/%d, want page 2 of 2", page.CurrentPage, page.TotalPages)
		}
		if len(page.Students) != 1 {
			t.Errorf("expected 1 student on the last page, got %d", len(page.Students))
		}
	})
}

func TestCreateStudent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(seedStudents())

	created, err := svc.Create(ctx, UpsertStudentRequest{
		Code: "STU4001", Name: "Ali Samir", Email: "ali@example.edu", PhoneNumber: "0112",
		Level: shared.LevelOne, Specialization: shared.SpecCS, AcademicYear: "2026-2027",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Errorf("created student has no ID")
	}
	if created.GPA != 0 {
		t.Errorf("new student GPA hint = %v, want 0", created.GPA)
	}

	t.Run("duplicate code", func(t *testing.T) {
		_, err := svc.Create(ctx, UpsertStudentRequest{
			Code: "STU2001", Name: "Imposter", Email: "other@example.edu", PhoneNumber: "0",
			Level: shared.LevelOne, Specialization: shared.SpecCS, AcademicYear: "2026-2027",
		})
		if !shared.IsCode(err, shared.CodeConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})
}

func TestUpdateStudent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(seedStudents())

	updated, err := svc.Update(ctx, "stu1", UpsertStudentRequest{
		Code: "STU2001", Name: "Sara A.", Email: "sara@example.edu", PhoneNumber: "0113",
		Level: shared.LevelTwo, Specialization: shared.SpecCS, AcademicYear: "2026-2027",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Level != shared.LevelTwo || updated.PhoneNumber != "0113" {
		t.Errorf("update not applied: %+v", updated)
	}

	if _, err := svc.Update(ctx, "ghost", UpsertStudentRequest{
		Code: "X", Name: "X", Email: "x@example.edu", PhoneNumber: "0",
		Level: shared.LevelOne, Specialization: shared.SpecCS, AcademicYear: "2026-2027",
	}); !shared.IsCode(err, shared.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteStudent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(seedStudents())

	if err := svc.Delete(ctx, "stu1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, "stu1"); !shared.IsCode(err, shared.CodeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
