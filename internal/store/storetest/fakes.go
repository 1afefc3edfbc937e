// Package storetest provides in-memory store implementations for service
// tests. Behavior mirrors the MongoDB stores: missing documents come back
// as (nil, nil), unique collisions as field-scoped Conflicts.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"campusgrades/internal/shared"
	"campusgrades/internal/store"
)

// ============================================================================
// Students
// ============================================================================

// StudentStore is an in-memory store.StudentStore.
type StudentStore struct {
	mu         sync.Mutex
	students   map[string]shared.Student
	nextID     int
	BulkYears  []string           // recorded BulkSetAcademicYear calls
	GPAUpdates map[string]float64 // recorded UpdateGPA calls
}

// NewStudentStore creates an empty fake seeded with the given students.
func NewStudentStore(seed ...shared.Student) *StudentStore {
	s := &StudentStore{
		students:   map[string]shared.Student{},
		GPAUpdates: map[string]float64{},
	}
	for _, student := range seed {
		s.students[student.ID] = student
	}
	return s
}

func (s *StudentStore) Find(ctx context.Context, id string) (*shared.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if student, ok := s.students[id]; ok {
		return &student, nil
	}
	return nil, nil
}

func (s *StudentStore) FindByCode(ctx context.Context, code string) (*shared.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, student := range s.students {
		if student.Code == code {
			return &student, nil
		}
	}
	return nil, nil
}

func (s *StudentStore) List(ctx context.Context, filter store.StudentFilter) (*store.StudentPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []shared.Student{}
	for _, student := range s.students {
		if filter.Search != "" && !strings.Contains(student.Code, filter.Search) {
			continue
		}
		if filter.Level != "" && student.Level != filter.Level {
			continue
		}
		if filter.Specialization != "" && student.Specialization != filter.Specialization {
			continue
		}
		if filter.AcademicYear != "" && student.AcademicYear != filter.AcademicYear {
			continue
		}
		matched = append(matched, student)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Code < matched[j].Code })

	page, perPage := filter.Page, filter.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	totalPages := (int64(len(matched)) + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > int64(len(matched)) {
		start = int64(len(matched))
	}
	end := start + perPage
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}

	return &store.StudentPage{
		CurrentPage: page,
		PerPage:     perPage,
		TotalPages:  totalPages,
		Students:    matched[start:end],
	}, nil
}

func (s *StudentStore) Create(ctx context.Context, student *shared.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.students {
		if existing.Code == student.Code {
			return shared.Conflict("Student already exists", "code",
				"A student with this code already exists")
		}
		if existing.Email == student.Email {
			return shared.Conflict("Student already exists", "email",
				"A student with this email already exists")
		}
	}
	if student.ID == "" {
		s.nextID++
		student.ID = fmt.Sprintf("student-%d", s.nextID)
	}
	s.students[student.ID] = *student
	return nil
}

func (s *StudentStore) Update(ctx context.Context, student *shared.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[student.ID]; !ok {
		return shared.NotFound("Student not found")
	}
	s.students[student.ID] = *student
	return nil
}

func (s *StudentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return shared.NotFound("Student not found")
	}
	delete(s.students, id)
	return nil
}

func (s *StudentStore) BulkSetAcademicYear(ctx context.Context, year string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.BulkYears = append(s.BulkYears, year)
	var modified int64
	for id, student := range s.students {
		if student.AcademicYear != year {
			student.AcademicYear = year
			s.students[id] = student
			modified++
		}
	}
	return modified, nil
}

func (s *StudentStore) UpdateGPA(ctx context.Context, id string, gpa float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GPAUpdates[id] = gpa
	if student, ok := s.students[id]; ok {
		student.GPA = gpa
		s.students[id] = student
	}
	return nil
}

// ============================================================================
// Doctors
// ============================================================================

// DoctorStore is an in-memory store.DoctorStore.
type DoctorStore struct {
	mu      sync.Mutex
	doctors map[string]shared.Doctor
}

// NewDoctorStore creates an empty fake seeded with the given doctors.
func NewDoctorStore(seed ...shared.Doctor) *DoctorStore {
	s := &DoctorStore{doctors: map[string]shared.Doctor{}}
	for _, doctor := range seed {
		s.doctors[doctor.ID] = doctor
	}
	return s
}

func (s *DoctorStore) Find(ctx context.Context, id string) (*shared.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doctor, ok := s.doctors[id]; ok {
		return &doctor, nil
	}
	return nil, nil
}

func (s *DoctorStore) FindByCode(ctx context.Context, code string) (*shared.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doctor := range s.doctors {
		if doctor.Code == code {
			return &doctor, nil
		}
	}
	return nil, nil
}

func (s *DoctorStore) ListAll(ctx context.Context) ([]shared.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doctors := []shared.Doctor{}
	for _, doctor := range s.doctors {
		doctors = append(doctors, doctor)
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].Name < doctors[j].Name })
	return doctors, nil
}

func (s *DoctorStore) Create(ctx context.Context, doctor *shared.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.doctors {
		if existing.Code == doctor.Code {
			return shared.Conflict("Doctor already exists", "code",
				"A doctor with this code already exists")
		}
	}
	if doctor.ID == "" {
		doctor.ID = "doctor-" + doctor.Code
	}
	s.doctors[doctor.ID] = *doctor
	return nil
}

func (s *DoctorStore) Update(ctx context.Context, doctor *shared.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[doctor.ID]; !ok {
		return shared.NotFound("Doctor not found")
	}
	s.doctors[doctor.ID] = *doctor
	return nil
}

func (s *DoctorStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[id]; !ok {
		return shared.NotFound("Doctor not found")
	}
	delete(s.doctors, id)
	return nil
}

// ============================================================================
// Subjects
// ============================================================================

// SubjectStore is an in-memory store.SubjectStore.
type SubjectStore struct {
	mu       sync.Mutex
	subjects map[string]shared.Subject
}

// NewSubjectStore creates an empty fake seeded with the given subjects.
func NewSubjectStore(seed ...shared.Subject) *SubjectStore {
	s := &SubjectStore{subjects: map[string]shared.Subject{}}
	for _, subject := range seed {
		s.subjects[subject.ID] = subject
	}
	return s
}

func (s *SubjectStore) Find(ctx context.Context, id string) (*shared.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if subject, ok := s.subjects[id]; ok {
		return &subject, nil
	}
	return nil, nil
}

func (s *SubjectStore) FindByCode(ctx context.Context, code string) (*shared.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, subject := range s.subjects {
		if subject.Code == code {
			return &subject, nil
		}
	}
	return nil, nil
}

func (s *SubjectStore) ListAll(ctx context.Context) ([]shared.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subjects := []shared.Subject{}
	for _, subject := range s.subjects {
		subjects = append(subjects, subject)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Code < subjects[j].Code })
	return subjects, nil
}

func (s *SubjectStore) Create(ctx context.Context, subject *shared.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subjects {
		if existing.Code == subject.Code {
			return shared.Conflict("Subject already exists", "code",
				"A subject with this code already exists")
		}
	}
	if subject.ID == "" {
		subject.ID = "subject-" + subject.Code
	}
	s.subjects[subject.ID] = *subject
	return nil
}

func (s *SubjectStore) Update(ctx context.Context, subject *shared.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subjects[subject.ID]; !ok {
		return shared.NotFound("Subject not found")
	}
	s.subjects[subject.ID] = *subject
	return nil
}

func (s *SubjectStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subjects[id]; !ok {
		return shared.NotFound("Subject not found")
	}
	delete(s.subjects, id)
	return nil
}

// ============================================================================
// Grades
// ============================================================================

// GradeStore is an in-memory store.GradeStore enforcing the unique
// (student, subject) pair.
type GradeStore struct {
	mu      sync.Mutex
	records map[string]shared.GradeRecord // keyed by studentID+"/"+subjectID
	nextID  int
}

// NewGradeStore creates an empty fake seeded with the given records.
func NewGradeStore(seed ...shared.GradeRecord) *GradeStore {
	s := &GradeStore{records: map[string]shared.GradeRecord{}}
	for i, record := range seed {
		if record.ID == "" {
			record.ID = fmt.Sprintf("grade-seed-%d", i)
		}
		s.records[record.StudentID+"/"+record.SubjectID] = record
	}
	return s
}

func (s *GradeStore) FindByStudentAndSubject(ctx context.Context, studentID, subjectID string) (*shared.GradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.records[studentID+"/"+subjectID]; ok {
		return &record, nil
	}
	return nil, nil
}

func (s *GradeStore) FindByStudent(ctx context.Context, studentID string) ([]shared.GradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := []shared.GradeRecord{}
	for _, record := range s.records {
		if record.StudentID == studentID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].SubjectID < records[j].SubjectID })
	return records, nil
}

func (s *GradeStore) FindBySubject(ctx context.Context, subjectID string) ([]shared.GradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := []shared.GradeRecord{}
	for _, record := range s.records {
		if record.SubjectID == subjectID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].StudentID < records[j].StudentID })
	return records, nil
}

func (s *GradeStore) Create(ctx context.Context, record *shared.GradeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := record.StudentID + "/" + record.SubjectID
	if _, ok := s.records[key]; ok {
		return shared.Conflict(
			"Grade already exists for this student in the specified subject",
			"subject_id",
			"This student already has a grade record for this subject",
		)
	}
	if record.ID == "" {
		s.nextID++
		record.ID = fmt.Sprintf("grade-%d", s.nextID)
	}
	s.records[key] = *record
	return nil
}

func (s *GradeStore) Update(ctx context.Context, record *shared.GradeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, existing := range s.records {
		if existing.ID == record.ID {
			s.records[key] = *record
			return nil
		}
	}
	return shared.NotFound("Grade not found")
}

// All returns every record, for assertions on mutation side effects.
func (s *GradeStore) All() []shared.GradeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := []shared.GradeRecord{}
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

// ============================================================================
// Settings
// ============================================================================

// SettingStore is an in-memory store.SettingStore holding at most one
// setting, like the deployed singleton.
type SettingStore struct {
	mu      sync.Mutex
	Setting *shared.GlobalSetting
}

// NewSettingStore creates a fake; pass nil for the no-setting state.
func NewSettingStore(setting *shared.GlobalSetting) *SettingStore {
	return &SettingStore{Setting: setting}
}

func (s *SettingStore) GetCurrent(ctx context.Context) (*shared.GlobalSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Setting == nil {
		return nil, nil
	}
	setting := *s.Setting
	return &setting, nil
}

func (s *SettingStore) Find(ctx context.Context, id string) (*shared.GlobalSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Setting == nil || s.Setting.ID != id {
		return nil, nil
	}
	setting := *s.Setting
	return &setting, nil
}

func (s *SettingStore) Create(ctx context.Context, setting *shared.GlobalSetting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if setting.ID == "" {
		setting.ID = "setting-1"
	}
	copied := *setting
	s.Setting = &copied
	return nil
}

func (s *SettingStore) Update(ctx context.Context, setting *shared.GlobalSetting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Setting == nil || s.Setting.ID != setting.ID {
		return shared.NotFound("System setting not found")
	}
	copied := *setting
	s.Setting = &copied
	return nil
}

func (s *SettingStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Setting == nil || s.Setting.ID != id {
		return shared.NotFound("Admin setting not found")
	}
	s.Setting = nil
	return nil
}
