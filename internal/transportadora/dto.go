package transportadora

import (
	"github.com/shopspring/decimal"
)

// ResumoTransportadoraDTO reúne os principais números da transportadora.
type ResumoTransportadoraDTO struct {
	ID                 uint            `json:"id"`
	Nome               string          `json:"nome"`
	CNPJ               string          `json:"cnpj"`
	TotalMotoristas    int64           `json:"totalMotoristas"`
	TotalViagens       int64           `json:"totalViagens"`
	ViagensEmAndamento int64           `json:"viagensEmAndamento"`
	TotalReceitas      decimal.Decimal `json:"totalReceitas"`
	TotalDespesas      decimal.Decimal `json:"totalDespesas"`
	SaldoAcertos       decimal.Decimal `json:"saldoAcertos"`
	AcertosPendentes   int64           `json:"acertosPendentes"`
}
