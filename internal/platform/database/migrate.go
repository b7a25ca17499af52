// File: internal/platform/database/migrate.go
package database

import (
	"fmt"

	"devconnector_backend/internal/post"
	"devconnector_backend/internal/profile"
	"devconnector_backend/internal/user"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model. The uuid-ossp
// extension backs the uuid_generate_v4() column defaults.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to ensure uuid-ossp extension: %w", err)
	}
	if err := db.AutoMigrate(
		&user.User{},
		&profile.Profile{},
		&profile.Experience{},
		&profile.Education{},
		&post.Post{},
		&post.Like{},
		&post.Comment{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
