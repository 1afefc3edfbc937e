// Package gateway wires the HTTP surface: the chi router, the CORS and
// auth middleware, and the handler set.
package gateway

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"campusgrades/internal/auth"
	"campusgrades/internal/doctor"
	"campusgrades/internal/gateway/handlers"
	"campusgrades/internal/gateway/util"
	"campusgrades/internal/grading"
	"campusgrades/internal/settings"
	"campusgrades/internal/shared"
	"campusgrades/internal/student"
	"campusgrades/internal/subject"
)

// Services collects everything the router mounts.
type Services struct {
	Auth     *auth.Service
	Students *student.Service
	Doctors  *doctor.Service
	Subjects *subject.Service
	Settings *settings.Service
	Grades   *grading.Service
}

// SetupRoutes configures the chi router, middleware, and route handlers.
func SetupRoutes(services *Services, corsConfig shared.CORSConfig) *chi.Mux {
	r := chi.NewRouter()

	// 1. Global Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAge,
	}))

	// 2. Initialize Handlers
	validate := util.NewValidator()
	authHandler := &handlers.AuthHandler{Auth: services.Auth, Validate: validate}
	settingHandler := &handlers.SettingHandler{Settings: services.Settings, Validate: validate}
	studentHandler := &handlers.StudentHandler{Students: services.Students, Validate: validate}
	doctorHandler := &handlers.DoctorHandler{Doctors: services.Doctors, Validate: validate}
	subjectHandler := &handlers.SubjectHandler{Subjects: services.Subjects, Validate: validate}
	gradeHandler := &handlers.GradeHandler{Grades: services.Grades, Validate: validate}

	// 3. Define Routes (grouped by prefix)
	r.Route("/api", func(r chi.Router) {

		// --- Public Routes ---
		r.Post("/login", authHandler.Login)

		// --- Protected Routes (Require Valid Token) ---
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(services.Auth))

			// System setting
			r.Route("/setting", func(r chi.Router) {
				r.Get("/", settingHandler.Get)
				r.Post("/", settingHandler.Create)
				r.Put("/{id}", settingHandler.Update)
				r.Delete("/{id}", settingHandler.Delete)
			})

			// Doctor: subject grade distribution
			r.Put("/doctor/subject/{subject_id}", subjectHandler.UpdateDistribution)

			// Grades and derived views
			r.Route("/student/{student_id}", func(r chi.Router) {
				r.Post("/grades", gradeHandler.Create)
				r.Get("/grades/{subject_id}", gradeHandler.Get)
				r.Put("/grades/{subject_id}", gradeHandler.Update)
				r.Get("/grades-gpa", gradeHandler.GradesGPA)
			})
			r.Get("/subject/{subject_id}/statistics", gradeHandler.SubjectStatistics)

			// Admin Management
			r.Route("/admin", func(r chi.Router) {
				// Subjects
				r.Route("/subjects", func(r chi.Router) {
					r.Get("/", subjectHandler.List)
					r.Post("/", subjectHandler.Create)
					r.Get("/{id}", subjectHandler.Get)
					r.Put("/{id}", subjectHandler.Update)
					r.Delete("/{id}", subjectHandler.Delete)
				})

				// Doctors
				r.Route("/doctors", func(r chi.Router) {
					r.Get("/", doctorHandler.List)
					r.Post("/", doctorHandler.Create)
					r.Get("/{id}", doctorHandler.Get)
					r.Put("/{id}", doctorHandler.Update)
					r.Delete("/{id}", doctorHandler.Delete)
				})

				// Students
				r.Route("/students", func(r chi.Router) {
					r.Get("/", studentHandler.List)
					r.Post("/", studentHandler.Create)
					r.Get("/gpa-stats", gradeHandler.GPAStats)
					r.Get("/{id}", studentHandler.Get)
					r.Put("/{id}", studentHandler.Update)
					r.Delete("/{id}", studentHandler.Delete)
					r.Get("/{student_id}/examination-results", gradeHandler.ExaminationResults)
				})
			})
		})
	})

	return r
}

// AuthMiddleware validates the bearer token and injects the verified
// claims into the request context.
func AuthMiddleware(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := util.ExtractToken(r)
			if err != nil {
				util.WriteJSONError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			claims, err := authService.ParseToken(tokenStr)
			if err != nil {
				util.WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
		})
	}
}
