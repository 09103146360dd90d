package podgen

import (
	"crypto/rand"
	"fmt"
)

// GenerateToken returns a random string.
// Tokens are used as podcast identifiers and artifact name components.
func GenerateToken() string {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%x", buf)
}
