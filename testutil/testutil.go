// Package testutil provides shared fixtures for package tests: an isolated
// sqlite database, a minimal configuration and an email recorder.
package testutil

import (
	"path/filepath"
	"sync"
	"testing"

	"foerderpilot/config"
	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupConfig installs a test configuration with a temporary upload dir.
func SetupConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		Port:          "3000",
		BaseURL:       "http://localhost:3000",
		JWTKey:        "test-secret",
		SaltRound:     bcrypt.MinCost,
		UploadDir:     t.TempDir(),
		EmailSender:   "noreply@test.local",
		EmailFromName: "Test",
		LLMModel:      "gpt-4o-mini",
	}
}

// SetupDB opens a fresh sqlite database, runs the migrations and installs it
// as the global handle.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

// EmailRecorder captures outbound emails instead of sending them.
type EmailRecorder struct {
	mu       sync.Mutex
	Messages []utils.EmailMessage
}

func (r *EmailRecorder) Send(msg utils.EmailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, msg)
	return nil
}

// Count returns the number of captured messages.
func (r *EmailRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Messages)
}

// Last returns the most recently captured message.
func (r *EmailRecorder) Last(t *testing.T) utils.EmailMessage {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Messages) == 0 {
		t.Fatal("no email was sent")
	}
	return r.Messages[len(r.Messages)-1]
}

// RecordEmails installs an EmailRecorder as the outbound transport. Sends
// become synchronous so assertions can run right after the request.
func RecordEmails(t *testing.T) *EmailRecorder {
	t.Helper()
	rec := &EmailRecorder{}
	utils.SetEmailSender(rec)
	return rec
}

// CreateTenant inserts an active tenant.
func CreateTenant(t *testing.T, db *gorm.DB, name, subdomain string) *models.Tenant {
	t.Helper()
	tenant := models.Tenant{Name: name, Subdomain: subdomain, IsActive: true}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("creating tenant: %v", err)
	}
	return &tenant
}

// CreateUser inserts an active user with a bcrypt password.
func CreateUser(t *testing.T, db *gorm.DB, tenantID *uint, role, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hash),
		Role:     role,
		TenantID: tenantID,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return &user
}

// CreateCourse inserts a published course.
func CreateCourse(t *testing.T, db *gorm.DB, tenantID uint, title string, grossCents int64) *models.Course {
	t.Helper()
	course := models.Course{
		TenantID:          tenantID,
		Title:             title,
		PriceGrossCents:   grossCents,
		SubsidyPercentage: 90,
		IsPublished:       true,
		IsActive:          true,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("creating course: %v", err)
	}
	return &course
}

// CreateParticipant inserts a participant in the given status.
func CreateParticipant(t *testing.T, db *gorm.DB, tenantID, courseID uint, email, status string) *models.Participant {
	t.Helper()
	participant := models.Participant{
		TenantID:  tenantID,
		CourseID:  courseID,
		FirstName: "Max",
		LastName:  "Mustermann",
		Email:     email,
		Status:    status,
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("creating participant: %v", err)
	}
	return &participant
}

// AuthHeader returns the Bearer header value for a signed session token.
func AuthHeader(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Role, user.Email, user.TenantID)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return "Bearer " + token
}
