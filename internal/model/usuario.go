package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is the administrator/salesperson account. Registration closes once
// one row exists — see service.AuthService.Registrar.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
