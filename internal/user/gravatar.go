// File: internal/user/gravatar.go
package user

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"

	"devconnector_backend/internal/config"
)

// GravatarURL derives the avatar URL for an email address. Gravatar hashes the
// lowercased, trimmed address with MD5; size/rating/default come from config.
func GravatarURL(cfg *config.Config, email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))

	q := url.Values{}
	q.Set("s", cfg.GravatarSize)
	q.Set("r", cfg.GravatarRating)
	q.Set("d", cfg.GravatarDefault)

	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?%s", hash, q.Encode())
}
