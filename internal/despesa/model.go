package despesa

import (
	"time"

	"github.com/shopspring/decimal"
)

// Despesa é um lançamento de débito de uma viagem (combustível, pedágio etc).
type Despesa struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Descricao string          `gorm:"not null" json:"descricao"`
	Valor     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"valor"`

	ViagemID uint `gorm:"not null;index" json:"viagemId"`
}
