package models

import "time"

// User represents an authenticated account that can act on evaluations.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:32;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	// RoleAdmin may review all evaluations system-wide.
	RoleAdmin = "ADMIN"
	// RoleEvaluator may submit scores and view their own evaluations.
	RoleEvaluator = "EVALUATOR"
)

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEvaluator
}
