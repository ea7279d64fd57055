package config

import (
	"errors"
	"fmt"
	"log"

	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/core/domain"
	"fixithub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db    *gorm.DB
	admin AdminSeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, admin AdminSeedConfig) *Seeder {
	return &Seeder{db: db, admin: admin}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the bootstrap admin from ADMIN_* settings when no
// admin exists yet
func (s *Seeder) seedAdminUser() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already exists
	}

	if s.admin.Email == "" || s.admin.Password == "" || s.admin.Phone == "" {
		log.Println("⚠️ Skipping admin seed: ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_PHONE must be set")
		return nil
	}
	if !password.ValidatePassword(s.admin.Password) {
		return fmt.Errorf("ADMIN_PASSWORD must be at least %d characters", password.MinLength)
	}

	hashedPassword, err := password.Hash(s.admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    domain.NormalizeEmail(s.admin.Email),
		FullName: s.admin.FullName,
		Phone:    s.admin.Phone,
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateIdentity
		}
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}
