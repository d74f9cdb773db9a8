// Package model defines the domain types shared by storage, ledger and presentation code.
package model

import (
	"strings"
	"time"
)

// IncomeCategoryName is the well-known category every income transaction is filed under.
const IncomeCategoryName = "Uang Masuk"

// UncategorizedLabel is shown for transactions whose category cannot be resolved.
const UncategorizedLabel = "Tanpa Kategori"

// DefaultCategories are seeded into every database. Seeding never overwrites.
var DefaultCategories = []string{
	"Bensin",
	"Jajan",
	"Makan",
	"Transport",
	"Tagihan",
	"Belanja",
	IncomeCategoryName,
}

// Category represents a user-defined spending or income category.
type Category struct {
	CreatedAt time.Time
	Name      string
	ID        int64
}

// IsIncome reports whether c is the reserved income category.
func (c Category) IsIncome() bool {
	return SameName(c.Name, IncomeCategoryName)
}

// NormalizeName trims surrounding whitespace from a category name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// SameName compares two category names the way the database does (case-insensitive).
func SameName(a, b string) bool {
	return strings.EqualFold(NormalizeName(a), NormalizeName(b))
}
