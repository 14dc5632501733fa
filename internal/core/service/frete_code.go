package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// generateFreteCode returns a code in the format FR<8 time digits><3 random
// digits>, e.g. FR84512337042. Uniqueness is enforced by the store's unique
// index, not by this function.
func generateFreteCode(now time.Time) string {
	stamp := now.UnixMilli() % 100_000_000
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("FR%08d%03d", stamp, time.Now().UnixNano()%1000)
	}
	return fmt.Sprintf("FR%08d%03d", stamp, n.Int64())
}
