package domain

import "time"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
)

// Order is one row of the ledger. Everything except Status is immutable once
// the row is appended; Status moves Pending -> Confirmed exactly once and
// Confirmed is terminal.
type Order struct {
	SubmittedAt time.Time
	Reference   string
	Name        string
	Contact     string
	Bundle      string
	Price       string
	Status      Status
}
