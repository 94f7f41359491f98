package acerto

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Acerto é o fechamento financeiro de uma viagem: receitas menos despesas,
// com a marcação de pago. Uma viagem tem no máximo um acerto.
type Acerto struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Valor      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"valor"`
	Pago       bool            `gorm:"not null;default:false" json:"pago"`
	Observacao string          `json:"observacao"`

	ViagemID uint `gorm:"not null;uniqueIndex" json:"viagemId"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Acerto{})
}
