package adapters

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/finance-tracker/assistant/internal/application/adapter"
)

// systemClock implements adapter.Clock in a fixed calendar location.
type systemClock struct {
	location *time.Location
}

// NewSystemClock creates a clock that reports the wall time in location.
func NewSystemClock(location *time.Location) adapter.Clock {
	if location == nil {
		location = time.UTC
	}
	return &systemClock{location: location}
}

// Now returns the current time in the configured location.
func (c *systemClock) Now() time.Time {
	return time.Now().In(c.location)
}

// userIDDigits is the length of generated public user IDs.
const userIDDigits = 8

var userIDSpace = big.NewInt(90_000_000)

// randomUserIDGenerator implements adapter.UserIDGenerator.
type randomUserIDGenerator struct{}

// NewUserIDGenerator creates a generator of random 8-digit user IDs.
func NewUserIDGenerator() adapter.UserIDGenerator {
	return &randomUserIDGenerator{}
}

// NewUserID returns a random numeric ID without a leading zero.
func (g *randomUserIDGenerator) NewUserID() (string, error) {
	n, err := rand.Int(rand.Reader, userIDSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate user id: %w", err)
	}
	return fmt.Sprintf("%0*d", userIDDigits, n.Int64()+10_000_000), nil
}
