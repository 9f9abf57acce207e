package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateBookingReference returns a short human-readable reference such
// as EDU-20260901-4F7K2M. Uniqueness is backed by the unique index on the
// bookings collection.
func GenerateBookingReference() (string, error) {
	suffix, err := randomAlphanumeric(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("EDU-%s-%s", time.Now().Format("20060102"), suffix), nil
}

func GenerateTransactionID() string {
	return fmt.Sprintf("txn_%s", strings.ReplaceAll(uuid.NewString(), "-", ""))
}

func GenerateInvoiceNumber(sequence int64) string {
	return fmt.Sprintf("INV-%s-%05d", time.Now().Format("200601"), sequence)
}

func GenerateObjectName(prefix, owner, fileExtension string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s_%s_%s%s", prefix, owner, timestamp, fileExtension)
}

func randomAlphanumeric(length int) (string, error) {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	max := big.NewInt(int64(len(charset)))

	out := make([]byte, length)
	for i := range out {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = charset[num.Int64()]
	}
	return string(out), nil
}
