package acerto

import (
	"github.com/LogiFrete/api-transportadora/internal/despesa"
	"github.com/LogiFrete/api-transportadora/internal/receita"
	"github.com/shopspring/decimal"
)

// CalcularValor computa o saldo líquido de uma viagem: soma das receitas menos
// soma das despesas. É uma função pura sobre as listas, independente do banco,
// e determinística para o mesmo conjunto de lançamentos.
func CalcularValor(receitas []receita.Receita, despesas []despesa.Despesa) decimal.Decimal {
	total := decimal.Zero
	for _, r := range receitas {
		total = total.Add(r.Valor)
	}
	for _, d := range despesas {
		total = total.Sub(d.Valor)
	}
	return total
}
