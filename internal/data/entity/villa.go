package entity

import (
	"github.com/google/uuid"
)

type VillaStatus string

const (
	VillaStatusPending  VillaStatus = "pending"
	VillaStatusSuccess  VillaStatus = "success"
	VillaStatusRejected VillaStatus = "rejected"
)

type Villa struct {
	Base
	OwnerID     uuid.UUID   `db:"owner_id"`
	Name        string      `db:"name"`
	Description string      `db:"description"`
	Category    string      `db:"category"`
	Location    string      `db:"location"`
	Price       float64     `db:"price"`
	Status      VillaStatus `db:"status"`
	PhotoIDs    []uuid.UUID `db:"photo_ids"`
	ReviewIDs   []uuid.UUID `db:"review_ids"`
}

type VillaPhoto struct {
	BaseSimple
	VillaID  uuid.UUID `db:"villa_id"`
	Name     string    `db:"name"`
	URL      string    `db:"url"`
	FilePath string    `db:"file_path"`
}
