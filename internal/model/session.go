package model

import "time"

// Session identifies an authenticated user for the duration of a visit.
// It is passed explicitly to every handler that needs identity rather
// than living in ambient state.
type Session struct {
	LoginTime     time.Time
	Email         string
	Authenticated bool
	IsAdmin       bool
}
