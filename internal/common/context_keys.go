// File: internal/common/context_keys.go
package common

const (
	// AuthTokenHeader is the custom request header carrying the auth token
	AuthTokenHeader = "x-auth-token"
	// UserIDKey is the context key for storing the authenticated user's ID
	UserIDKey = "userID"
	// TokenClaimsKey is the context key for storing the parsed token claims
	TokenClaimsKey = "tokenClaims"
)
