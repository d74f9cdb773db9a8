package model

import (
	"fmt"
	"time"
)

// Direction indicates whether money entered or left the wallet.
type Direction string

const (
	// DirectionIn represents income.
	DirectionIn Direction = "IN"
	// DirectionOut represents an expense. Rows without a type are treated as OUT.
	DirectionOut Direction = "OUT"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Delta returns the signed balance change caused by recording amount in direction d.
func (d Direction) Delta(amount int64) int64 {
	if d == DirectionIn {
		return amount
	}
	return -amount
}

// Label returns a human readable name for the direction.
func (d Direction) Label() string {
	switch d {
	case DirectionIn:
		return "Income"
	case DirectionOut:
		return "Expense"
	default:
		return string(d)
	}
}

// ParseDirection converts user or database input into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionIn, "in", "income":
		return DirectionIn, nil
	case DirectionOut, "out", "expense", "":
		return DirectionOut, nil
	}
	return "", fmt.Errorf("unknown transaction direction %q", s)
}

// Transaction is a single recorded income or expense.
type Transaction struct {
	Date        string // raw stored value, ISO-8601 for new rows
	Category    string // resolved display name
	Description string
	Type        Direction
	ID          int64
	CategoryID  int64 // 0 when a legacy row was never linked
	Amount      int64 // whole currency units, always positive
}

// Delta returns the balance change this transaction contributed when it was recorded.
func (t Transaction) Delta() int64 {
	return t.Type.Delta(t.Amount)
}

// NewTransaction holds the fields needed to record a transaction.
type NewTransaction struct {
	Date        time.Time // zero means now
	Description string
	Type        Direction
	CategoryID  int64
	Amount      int64
}
