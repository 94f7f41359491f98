package transportadora

import (
	"time"

	"github.com/LogiFrete/api-transportadora/internal/motorista"
	"github.com/LogiFrete/api-transportadora/internal/viagem"
)

// Transportadora é o tenant do sistema: a empresa dona dos motoristas e viagens.
type Transportadora struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Nome     string `gorm:"not null" json:"nome"`
	CNPJ     string `gorm:"size:18;uniqueIndex;not null" json:"cnpj"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`

	Motoristas []motorista.Motorista `gorm:"foreignKey:TransportadoraID" json:"motoristas,omitempty"`
	Viagens    []viagem.Viagem       `gorm:"foreignKey:TransportadoraID" json:"viagens,omitempty"`
}
