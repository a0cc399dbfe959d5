package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	Base
	VillaID uuid.UUID `db:"villa_id"`
	UserID  uuid.UUID `db:"user_id"`
	Rating  int       `db:"rating"` // 1-5
	Comment string    `db:"comment"`
}

type Favorite struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	VillaID uuid.UUID `db:"villa_id"`
}
