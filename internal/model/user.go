package model

import "time"

// Role is the access role a user holds for the lifetime of a session.
type Role string

const (
	RoleClient  Role = "client"
	RoleService Role = "service"
	RoleManager Role = "manager"
)

// Valid reports whether r is one of the three known roles. Scoping
// treats any other value as an unrecognized role with no visibility.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleService, RoleManager:
		return true
	}
	return false
}

// User is an authenticated principal. Machines reference users weakly as
// client (owner) and service_company (servicer); deleting a user never
// deletes the machines or ledger rows that pointed at it.
type User struct {
	ID               uint   `gorm:"primaryKey"`
	Username         string `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash     string `gorm:"size:255;not null"`
	FirstName        string `gorm:"size:150"`
	LastName         string `gorm:"size:150"`
	Role             Role   `gorm:"size:20;not null"`
	OrganizationName string `gorm:"size:255"`
	Phone            string `gorm:"size:50"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
