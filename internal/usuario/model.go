package usuario

import (
	"time"
)

// Usuario é a identidade de login: um administrador vinculado a uma
// transportadora ou um motorista vinculado ao seu registro de motorista.
type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email  string `gorm:"uniqueIndex;not null" json:"email"`
	Senha  string `gorm:"not null" json:"-"`
	Perfil string `gorm:"size:30;not null" json:"perfil"`

	TransportadoraID *uint `json:"transportadoraId,omitempty"`
	MotoristaID      *uint `json:"motoristaId,omitempty"`
}
