package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusgrades/internal/auth"
	"campusgrades/internal/doctor"
	"campusgrades/internal/gateway"
	"campusgrades/internal/grading"
	"campusgrades/internal/settings"
	"campusgrades/internal/shared"
	"campusgrades/internal/store"
	"campusgrades/internal/student"
	"campusgrades/internal/subject"
)

func main() {
	log.Println("INFO: Starting Grade Management Server...")

	// 1. Configuration
	shared.LoadEnv(".env")
	cfg, err := shared.LoadServiceConfig("server")
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Database
	client, db, err := shared.ConnectMongoDB(&cfg.MongoDB)
	if err != nil {
		log.Fatalf("FATAL: Failed to connect to MongoDB: %v", err)
	}
	defer shared.DisconnectMongoDB(client)

	if err := shared.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("FATAL: Failed to ensure indexes: %v", err)
	}

	// 3. Stores and Services
	studentStore := store.NewMongoStudentStore(db)
	doctorStore := store.NewMongoDoctorStore(db)
	subjectStore := store.NewMongoSubjectStore(db)
	gradeStore := store.NewMongoGradeStore(db)
	settingStore := store.NewMongoSettingStore(db)

	settingsService := settings.NewService(settingStore, studentStore)
	services := &gateway.Services{
		Auth:     auth.NewService(doctorStore, studentStore, cfg.Security.JWTSecret, cfg.Security.TokenTTL),
		Students: student.NewService(studentStore),
		Doctors:  doctor.NewService(doctorStore, cfg.Security.BCryptCost),
		Subjects: subject.NewService(subjectStore),
		Settings: settingsService,
		Grades:   grading.NewService(studentStore, subjectStore, gradeStore, settingsService),
	}

	// 4. Router and Server
	router := gateway.SetupRoutes(services, cfg.CORS)
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("INFO: Server listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: HTTP server error: %v", err)
		}
	}()

	// 5. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Forced shutdown: %v", err)
	}

	log.Println("INFO: Server stopped.")
}
