package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"campusgrades/internal/grading"
	"campusgrades/internal/shared"
	"campusgrades/internal/store"
)

const (
	DoctorID1  = "doctor-001"
	DoctorID2  = "doctor-002"
	StudentID1 = "student-001"
	StudentID2 = "student-002"
	StudentID3 = "student-003"
	SubjectID1 = "subject-cs101"
	SubjectID2 = "subject-cs102"
	SubjectID3 = "subject-it201"

	CommonPassword = "password123"
	AcademicYear   = "2026-2027"
)

func main() {
	log.Println("Starting Database Seeder...")

	if err := shared.LoadEnv(".env"); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := shared.LoadServiceConfig("seeder")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, db, err := shared.ConnectMongoDB(&cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer shared.DisconnectMongoDB(client)

	// Clean start
	if err := db.Drop(context.Background()); err != nil {
		log.Fatalf("Failed to drop database: %v", err)
	}
	log.Println("Database cleared successfully.")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := shared.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	seedDoctors(ctx, db, cfg.Security.BCryptCost)
	seedStudents(ctx, db)
	seedSubjects(ctx, db)
	seedSetting(ctx, db)
	seedGrades(ctx, db)

	log.Println("Seeding complete.")
}

func seedDoctors(ctx context.Context, db *mongo.Database, bcryptCost int) {
	doctors := store.NewMongoDoctorStore(db)
	hash, err := bcrypt.GenerateFromPassword([]byte(CommonPassword), bcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	seeds := []shared.Doctor{
		{ID: DoctorID1, Code: "DOC1001", Name: "Dr. Amina Hassan", Email: "amina.hassan@example.edu", PhoneNumber: "01000000001", PasswordHash: string(hash)},
		{ID: DoctorID2, Code: "DOC1002", Name: "Dr. Omar Farouk", Email: "omar.farouk@example.edu", PhoneNumber: "01000000002", PasswordHash: string(hash)},
	}
	for i := range seeds {
		if err := doctors.Create(ctx, &seeds[i]); err != nil {
			log.Fatalf("Failed to seed doctor %s: %v", seeds[i].Code, err)
		}
	}
	log.Printf("Seeded %d doctors (password: %q)", len(seeds), CommonPassword)
}

func seedStudents(ctx context.Context, db *mongo.Database) {
	students := store.NewMongoStudentStore(db)

	seeds := []shared.Student{
		{ID: StudentID1, Code: "STU2001", Name: "Sara Adel", Email: "sara.adel@example.edu", PhoneNumber: "01100000001", Level: shared.LevelOne, Specialization: shared.SpecCS, AcademicYear: AcademicYear},
		{ID: StudentID2, Code: "STU2002", Name: "Youssef Nabil", Email: "youssef.nabil@example.edu", PhoneNumber: "01100000002", Level: shared.LevelOne, Specialization: shared.SpecCS, AcademicYear: AcademicYear},
		{ID: StudentID3, Code: "STU2003", Name: "Mona Khaled", Email: "mona.khaled@example.edu", PhoneNumber: "01100000003", Level: shared.LevelTwo, Specialization: shared.SpecIT, AcademicYear: AcademicYear},
	}
	for i := range seeds {
		if err := students.Create(ctx, &seeds[i]); err != nil {
			log.Fatalf("Failed to seed student %s: %v", seeds[i].Code, err)
		}
	}
	log.Printf("Seeded %d students (a student logs in with its own code)", len(seeds))
}

func seedSubjects(ctx context.Context, db *mongo.Database) {
	subjects := store.NewMongoSubjectStore(db)
	f := func(v float64) *float64 { return &v }

	seeds := []shared.Subject{
		{
			ID: SubjectID1, Code: "CS101", Name: "Introduction to Programming",
			CreditHours: 3, Specialization: shared.SpecCS,
			Level: shared.LevelOne, Semester: shared.SemesterOne,
			MidtermMax: f(20), PracticalMax: f(15), YearsWorkMax: f(15), FinalMax: f(50), TotalMax: f(100),
		},
		{
			ID: SubjectID2, Code: "CS102", Name: "Discrete Mathematics",
			CreditHours: 3, Specialization: shared.SpecCS,
			Level: shared.LevelOne, Semester: shared.SemesterTwo,
		},
		{
			ID: SubjectID3, Code: "IT201", Name: "Computer Networks",
			CreditHours: 4, Specialization: shared.SpecIT,
			Level: shared.LevelTwo, Semester: shared.SemesterOne,
			MidtermMax: f(25), PracticalMax: f(25), YearsWorkMax: f(10), FinalMax: f(40), TotalMax: f(100),
		},
	}
	for i := range seeds {
		if err := subjects.Create(ctx, &seeds[i]); err != nil {
			log.Fatalf("Failed to seed subject %s: %v", seeds[i].Code, err)
		}
	}
	log.Printf("Seeded %d subjects", len(seeds))
}

func seedSetting(ctx context.Context, db *mongo.Database) {
	settings := store.NewMongoSettingStore(db)
	setting := shared.GlobalSetting{
		ShowGrades:      true,
		AcademicYear:    AcademicYear,
		CurrentSemester: shared.SemesterOne,
	}
	if err := settings.Create(ctx, &setting); err != nil {
		log.Fatalf("Failed to seed setting: %v", err)
	}
	log.Println("Seeded system setting")
}

func seedGrades(ctx context.Context, db *mongo.Database) {
	grades := store.NewMongoGradeStore(db)

	type gradeSeed struct {
		studentID string
		subjectID string
		c         grading.Components
		status    string
	}
	seeds := []gradeSeed{
		{StudentID1, SubjectID1, grading.Components{Midterm: 18, Practical: 13, YearsWork: 14, Final: 42}, shared.StatusPass},
		{StudentID2, SubjectID1, grading.Components{Midterm: 10, Practical: 8, YearsWork: 9, Final: 20}, shared.StatusPass},
		{StudentID3, SubjectID3, grading.Components{Midterm: 22, Practical: 20, YearsWork: 9, Final: 30}, shared.StatusPass},
	}
	for _, seed := range seeds {
		total := seed.c.Midterm + seed.c.Practical + seed.c.YearsWork + seed.c.Final
		record := shared.GradeRecord{
			StudentID:    seed.studentID,
			SubjectID:    seed.subjectID,
			Midterm:      seed.c.Midterm,
			Practical:    seed.c.Practical,
			YearsWork:    seed.c.YearsWork,
			Final:        seed.c.Final,
			Total:        total,
			Letter:       grading.LetterFor(total),
			Status:       seed.status,
			AcademicYear: AcademicYear,
		}
		if err := grades.Create(ctx, &record); err != nil {
			log.Fatalf("Failed to seed grade for %s/%s: %v", seed.studentID, seed.subjectID, err)
		}
	}
	log.Printf("Seeded %d grade records", len(seeds))
}
