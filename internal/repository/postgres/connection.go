package postgres

import (
	"errors"
	"log"

	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.Task{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedRoles(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedRoles inserts the fixed admin and student roles on first start.
// Existing roles mean seeding already happened.
func seedRoles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	roles := []domain.Role{
		{ID: domain.AdminRoleID, Name: "admin", Description: "System administrator"},
		{ID: domain.StudentRoleID, Name: "student", Description: "Student"},
	}
	return db.Create(&roles).Error
}

// BootstrapAdmin creates the default admin account when it does not
// exist yet. Credentials come from the environment config.
func BootstrapAdmin(db *gorm.DB, username, email, password string) error {
	var existing domain.User
	err := db.First(&existing, "username = ?", username).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		RoleID:       domain.AdminRoleID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("bootstrapped admin user %q", username)
	return nil
}

func NewRepositories(db *gorm.DB, cache repository.CacheRepository) *repository.Repositories {
	return &repository.Repositories{
		User:  NewUserRepository(db),
		Task:  NewTaskRepository(db),
		Cache: cache,
	}
}
