package viagem

import (
	"time"

	"github.com/LogiFrete/api-transportadora/internal/acerto"
	"github.com/LogiFrete/api-transportadora/internal/despesa"
	"github.com/LogiFrete/api-transportadora/internal/receita"
)

// Status possíveis de uma viagem
const (
	StatusPlanejada   = "PLANEJADA"
	StatusEmAndamento = "EM_ANDAMENTO"
	StatusFinalizada  = "FINALIZADA"
	StatusCancelada   = "CANCELADA"
)

// Viagem representa um frete de um motorista, com seus lançamentos e acerto.
type Viagem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Descricao  string     `gorm:"not null" json:"descricao"`
	Origem     string     `json:"origem"`
	Destino    string     `json:"destino"`
	DataInicio *time.Time `json:"dataInicio,omitempty"`
	DataFim    *time.Time `json:"dataFim,omitempty"`
	Status     string     `gorm:"size:20;not null;default:'PLANEJADA'" json:"status"`

	TransportadoraID uint `gorm:"not null;index" json:"transportadoraId"`
	MotoristaID      uint `gorm:"not null;index" json:"motoristaId"`

	Receitas []receita.Receita `gorm:"foreignKey:ViagemID" json:"receitas"`
	Despesas []despesa.Despesa `gorm:"foreignKey:ViagemID" json:"despesas"`

	// Relação 1-1 com Acerto
	Acerto *acerto.Acerto `gorm:"foreignKey:ViagemID" json:"acerto,omitempty"`
}

// StatusValido indica se a string corresponde a um status conhecido.
func StatusValido(s string) bool {
	switch s {
	case StatusPlanejada, StatusEmAndamento, StatusFinalizada, StatusCancelada:
		return true
	}
	return false
}

// TransicaoValida aplica a máquina de estados da viagem:
// PLANEJADA → EM_ANDAMENTO → FINALIZADA, com CANCELADA alcançável
// a partir de PLANEJADA ou EM_ANDAMENTO.
func TransicaoValida(de, para string) bool {
	switch de {
	case StatusPlanejada:
		return para == StatusEmAndamento || para == StatusCancelada
	case StatusEmAndamento:
		return para == StatusFinalizada || para == StatusCancelada
	}
	return false
}
