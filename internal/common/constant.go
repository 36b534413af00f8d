// Package common contains shared constants and sentinel errors used across
// doclife components.
package common

// AuthorizationScheme is the scheme expected in the Authorization header
// of authenticated HTTP requests.
const AuthorizationScheme = "Bearer"

// DateLayout is the calendar-date format used for document expiry dates
// on the wire and in reminder messages.
const DateLayout = "2006-01-02"
