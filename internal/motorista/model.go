package motorista

import (
	"time"
)

// Motorista representa um condutor vinculado a uma transportadora.
type Motorista struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Nome         string     `gorm:"not null" json:"nome"`
	CPF          string     `gorm:"size:14;uniqueIndex;not null" json:"cpf"`
	CNH          string     `gorm:"size:20;uniqueIndex;not null" json:"cnh"`
	CategoriaCNH string     `gorm:"size:5" json:"categoriaCnh"`
	ValidadeCNH  *time.Time `json:"validadeCnh,omitempty"`
	Telefone     string     `json:"telefone"`

	TransportadoraID uint `gorm:"not null;index" json:"transportadoraId"`
}
