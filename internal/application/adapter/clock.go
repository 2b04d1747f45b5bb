// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock provides the current time in the user's calendar location.
type Clock interface {
	Now() time.Time
}

// UserIDGenerator produces candidate public user IDs.
type UserIDGenerator interface {
	NewUserID() (string, error)
}
