package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// whereBuilder collects parameterised predicates. Each predicate is written
// with "?" markers which are numbered as $1..$n in order of appearance.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (b *whereBuilder) add(predicate string, values ...any) {
	for _, v := range values {
		b.args = append(b.args, v)
		predicate = strings.Replace(predicate, "?", fmt.Sprintf("$%d", len(b.args)), 1)
	}
	b.clauses = append(b.clauses, predicate)
}

// search matches term case-insensitively against any of the columns
func (b *whereBuilder) search(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return
	}
	b.args = append(b.args, "%"+escapeLike(term)+"%")
	placeholder := fmt.Sprintf("$%d", len(b.args))

	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE %s", col, placeholder)
	}
	b.clauses = append(b.clauses, "("+strings.Join(parts, " OR ")+")")
}

// placeholder reserves the next positional parameter, e.g. for LIMIT.
func (b *whereBuilder) placeholder(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) sql() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// VillaFilter holds the optional catalogue criteria. Zero values are ignored.
type VillaFilter struct {
	Category string
	Location string
	Status   string
	OwnerID  *uuid.UUID
	MinPrice *float64
	MaxPrice *float64
	Search   string
}

func (f VillaFilter) build() *whereBuilder {
	b := &whereBuilder{}
	if f.Category != "" {
		b.add("v.category = ?", f.Category)
	}
	if f.Location != "" {
		b.add("v.location = ?", f.Location)
	}
	if f.Status != "" {
		b.add("v.status = ?", f.Status)
	}
	if f.OwnerID != nil {
		b.add("v.owner_id = ?", *f.OwnerID)
	}
	if f.MinPrice != nil {
		b.add("v.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.add("v.price <= ?", *f.MaxPrice)
	}
	b.search(f.Search, "v.name", "v.description", "v.location")
	return b
}

// PaymentFilter narrows payment listings. OwnerID restricts to payments whose
// booking's villa belongs to that owner; UserID to the booking's guest.
type PaymentFilter struct {
	OwnerID *uuid.UUID
	UserID  *uuid.UUID
	Search  string
}

func (f PaymentFilter) build() *whereBuilder {
	b := &whereBuilder{}
	if f.OwnerID != nil {
		b.add("v.owner_id = ?", *f.OwnerID)
	}
	if f.UserID != nil {
		b.add("b.user_id = ?", *f.UserID)
	}
	b.search(f.Search,
		"p.payer_name", "p.payer_email", "p.code", "p.method",
		"p.bank", "p.va_number", "v.name",
	)
	return b
}

// ReviewFilter narrows review listings.
type ReviewFilter struct {
	VillaID *uuid.UUID
	UserID  *uuid.UUID
}

func (f ReviewFilter) build() *whereBuilder {
	b := &whereBuilder{}
	if f.VillaID != nil {
		b.add("villa_id = ?", *f.VillaID)
	}
	if f.UserID != nil {
		b.add("user_id = ?", *f.UserID)
	}
	return b
}
