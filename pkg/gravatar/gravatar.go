package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const baseURL = "https://www.gravatar.com"

const DefaultSize = 100

// URL builds the avatar URL for an email address. The hash segment is
// computed over the trimmed, lower-cased email, so any two spellings of the
// same address map to the same avatar. The function is pure, it never talks
// to the gravatar servers.
func URL(email string, size int) string {
	if size <= 0 {
		size = DefaultSize
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("%s/avatar/%s?s=%d", baseURL, hex.EncodeToString(hash[:]), size)
}
