package domain

import "time"

// Application is a credit card application. Records are immutable once stored.
type Application struct {
	ID           string
	UserID       string
	CardID       string
	ApprovalOdds float64
	Status       string // caller-supplied, e.g. pending/approved/denied
	Date         time.Time
}
