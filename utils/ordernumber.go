package utils

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"
)

// GenerateOrderNumber builds a human-readable order number of the form
// ORD-20260830-0042. The 4-digit suffix is random, so uniqueness is not
// guaranteed by construction; the orders table's unique index is the
// actual guard and a collision fails the create.
func GenerateOrderNumber(now time.Time) string {
	suffix, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		log.Printf("Falling back to time-based order suffix: %v", err)
		return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), now.UnixNano()%10000)
	}
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), suffix.Int64())
}
