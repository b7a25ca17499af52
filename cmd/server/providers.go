// File: cmd/server/providers.go
package main

import (
	"log"

	"devconnector_backend/internal/auth"
	"devconnector_backend/internal/platform/cache"
	"devconnector_backend/internal/platform/database"
	"devconnector_backend/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideTokenIssuer narrows the token service to the signing surface the user
// service needs.
func provideTokenIssuer(tokens auth.TokenService) user.TokenIssuer {
	return tokens
}

func provideCleanup(logger *zap.Logger, db *gorm.DB, cacheClient *cache.Cache) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		cacheClient.Close()
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
