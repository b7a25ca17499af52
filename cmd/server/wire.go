// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"devconnector_backend/internal/app"
	"devconnector_backend/internal/auth"
	"devconnector_backend/internal/config"
	"devconnector_backend/internal/platform/cache"
	"devconnector_backend/internal/platform/database"
	"devconnector_backend/internal/platform/logger"
	"devconnector_backend/internal/post"
	"devconnector_backend/internal/profile"
	"devconnector_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		cache.New,
		provideCleanup,

		// Auth
		auth.NewTokenService,
		auth.NewInMemoryBlocklistService,
		wire.Bind(new(auth.TokenBlocklistService), new(*auth.InMemoryBlocklistService)),
		provideTokenIssuer,

		// Accounts
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		user.NewHandler,
		auth.NewHandler,

		// Profiles
		profile.NewGORMRepository,
		profile.NewService,
		wire.Bind(new(profile.Service), new(*profile.ServiceImplementation)),
		profile.NewHandler,

		// Posts
		post.NewGORMRepository,
		post.NewService,
		wire.Bind(new(post.Service), new(*post.ServiceImplementation)),
		post.NewHandler,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
