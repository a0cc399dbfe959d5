package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleOwner UserRole = "owner"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	Phone        *string  `db:"phone"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	ProfilePhoto string   `db:"profile_photo"`
}

type Admin struct {
	Base
	Name         string  `db:"name"`
	Email        string  `db:"email"`
	Phone        *string `db:"phone"`
	PasswordHash string  `db:"password"`
	ProfilePhoto string  `db:"profile_photo"`
}
