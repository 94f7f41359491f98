package receita

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receita é um lançamento de crédito de uma viagem (frete, adiantamento etc).
type Receita struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Descricao string          `gorm:"not null" json:"descricao"`
	Valor     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"valor"`

	ViagemID uint `gorm:"not null;index" json:"viagemId"`
}
