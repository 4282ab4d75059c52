package editor

import (
	"crypto/sha256"
	"fmt"
)

// HashBytes computes the content fingerprint of the final on-disk bytes.
func HashBytes(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}
