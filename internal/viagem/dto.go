package viagem

import (
	"github.com/shopspring/decimal"
)

// ResumoViagemDTO consolida os números de uma viagem para exibição.
type ResumoViagemDTO struct {
	ViagemID      uint            `json:"viagemId"`
	Descricao     string          `json:"descricao"`
	Origem        string          `json:"origem"`
	Destino       string          `json:"destino"`
	Status        string          `json:"status"`
	QtdReceitas   int             `json:"qtdReceitas"`
	QtdDespesas   int             `json:"qtdDespesas"`
	TotalReceitas decimal.Decimal `json:"totalReceitas"`
	TotalDespesas decimal.Decimal `json:"totalDespesas"`
	Saldo         decimal.Decimal `json:"saldo"`
	AcertoPago    *bool           `json:"acertoPago,omitempty"`
}

// MontarResumoViagemDTO monta o resumo a partir de uma viagem com os
// lançamentos já carregados.
func MontarResumoViagemDTO(v Viagem) ResumoViagemDTO {
	totalReceitas := decimal.Zero
	for _, rec := range v.Receitas {
		totalReceitas = totalReceitas.Add(rec.Valor)
	}
	totalDespesas := decimal.Zero
	for _, desp := range v.Despesas {
		totalDespesas = totalDespesas.Add(desp.Valor)
	}

	dto := ResumoViagemDTO{
		ViagemID:      v.ID,
		Descricao:     v.Descricao,
		Origem:        v.Origem,
		Destino:       v.Destino,
		Status:        v.Status,
		QtdReceitas:   len(v.Receitas),
		QtdDespesas:   len(v.Despesas),
		TotalReceitas: totalReceitas,
		TotalDespesas: totalDespesas,
		Saldo:         totalReceitas.Sub(totalDespesas),
	}
	if v.Acerto != nil {
		pago := v.Acerto.Pago
		dto.AcertoPago = &pago
	}
	return dto
}
