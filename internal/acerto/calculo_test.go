package acerto

import (
	"testing"

	"github.com/LogiFrete/api-transportadora/internal/despesa"
	"github.com/LogiFrete/api-transportadora/internal/receita"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalcularValor(t *testing.T) {
	casos := []struct {
		nome     string
		receitas []string
		despesas []string
		quer     string
	}{
		{"viagem SP-RJ", []string{"2500.00"}, []string{"300.00"}, "2200.00"},
		{"sem lançamentos", nil, nil, "0"},
		{"somente despesas", nil, []string{"150.75", "49.25"}, "-200.00"},
		{"centavos exatos", []string{"0.10", "0.20"}, []string{"0.30"}, "0.00"},
		{"vários lançamentos", []string{"1000.50", "2000.25", "3.25"}, []string{"500.00", "4.00"}, "2500.00"},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			var receitas []receita.Receita
			for _, v := range c.receitas {
				receitas = append(receitas, receita.Receita{Valor: dec(v)})
			}
			var despesas []despesa.Despesa
			for _, v := range c.despesas {
				despesas = append(despesas, despesa.Despesa{Valor: dec(v)})
			}

			got := CalcularValor(receitas, despesas)
			if !got.Equal(dec(c.quer)) {
				t.Errorf("CalcularValor = %s, quer %s", got, c.quer)
			}
		})
	}
}

func TestCalcularValorIdempotente(t *testing.T) {
	receitas := []receita.Receita{{Valor: dec("2500.00")}, {Valor: dec("120.37")}}
	despesas := []despesa.Despesa{{Valor: dec("300.00")}}

	primeira := CalcularValor(receitas, despesas)
	segunda := CalcularValor(receitas, despesas)
	if !primeira.Equal(segunda) {
		t.Errorf("recalcular divergiu: %s != %s", primeira, segunda)
	}
}

func TestCalcularValorIndependeDaOrdem(t *testing.T) {
	receitas := []receita.Receita{{Valor: dec("10.01")}, {Valor: dec("20.02")}, {Valor: dec("30.03")}}
	invertidas := []receita.Receita{receitas[2], receitas[1], receitas[0]}
	despesas := []despesa.Despesa{{Valor: dec("5.55")}}

	if !CalcularValor(receitas, despesas).Equal(CalcularValor(invertidas, despesas)) {
		t.Error("soma deveria ser independente da ordem dos lançamentos")
	}
}
