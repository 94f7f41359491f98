package acerto

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LogiFrete/api-transportadora/internal/auth"
	"github.com/LogiFrete/api-transportadora/internal/despesa"
	"github.com/LogiFrete/api-transportadora/internal/models"
	"github.com/LogiFrete/api-transportadora/internal/receita"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type viagemTeste struct {
	ID               uint `gorm:"primaryKey"`
	TransportadoraID uint
	MotoristaID      uint
}

func (viagemTeste) TableName() string { return "viagens" }

func abrirBancoTeste(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrir banco: %v", err)
	}
	if err := db.AutoMigrate(&viagemTeste{}, &receita.Receita{}, &despesa.Despesa{}, &Acerto{}); err != nil {
		t.Fatalf("migrar: %v", err)
	}
	return db
}

func ctxAdmin(transportadoraID uint) context.Context {
	ctx := context.WithValue(context.Background(), auth.CtxUsuarioID, uint(1))
	ctx = context.WithValue(ctx, auth.CtxPerfil, models.PerfilAdminTransportadora)
	ctx = context.WithValue(ctx, auth.CtxTransportadoraID, transportadoraID)
	ctx = context.WithValue(ctx, auth.CtxMotoristaID, uint(0))
	return ctx
}

// viagem SP→RJ com uma receita de 2500.00 e uma despesa de 300.00
func prepararViagemSPRJ(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	v := viagemTeste{TransportadoraID: 1, MotoristaID: 1}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("criar viagem: %v", err)
	}
	db.Create(&receita.Receita{Descricao: "frete SP-RJ", Valor: decimal.RequireFromString("2500.00"), ViagemID: v.ID})
	db.Create(&despesa.Despesa{Descricao: "combustível", Valor: decimal.RequireFromString("300.00"), ViagemID: v.ID})
	return v.ID
}

func requisicaoViagem(metodo, alvo string, corpo string, id string) *http.Request {
	var req *http.Request
	if corpo == "" {
		req = httptest.NewRequest(metodo, alvo, nil)
	} else {
		req = httptest.NewRequest(metodo, alvo, strings.NewReader(corpo))
	}
	req = req.WithContext(ctxAdmin(1))
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestCriarAcertoCalculaSaldoDaViagem(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)
	prepararViagemSPRJ(t, db)

	rr := httptest.NewRecorder()
	h.CriarParaViagem(rr, requisicaoViagem(http.MethodPost, "/viagens/1/acerto", "", "1"))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, quer 201: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data Acerto `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decodificar resposta: %v", err)
	}
	a := resp.Data
	if !a.Valor.Equal(decimal.RequireFromString("2200.00")) {
		t.Errorf("valor = %s, quer 2200.00", a.Valor)
	}
	if a.Pago {
		t.Error("acerto novo não deveria nascer pago")
	}
}

func TestCriarAcertoComPayloadInvalido(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)
	prepararViagemSPRJ(t, db)

	rr := httptest.NewRecorder()
	h.CriarParaViagem(rr, requisicaoViagem(http.MethodPost, "/viagens/1/acerto", `{"valor":`, "1"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, quer 400: %s", rr.Code, rr.Body.String())
	}
	var total int64
	db.Model(&Acerto{}).Count(&total)
	if total != 0 {
		t.Errorf("payload inválido não deveria criar acerto; total = %d", total)
	}
}

func TestCriarSegundoAcertoParaMesmaViagem(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)
	prepararViagemSPRJ(t, db)

	rr := httptest.NewRecorder()
	h.CriarParaViagem(rr, requisicaoViagem(http.MethodPost, "/viagens/1/acerto", "", "1"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("primeiro acerto: status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.CriarParaViagem(rr, requisicaoViagem(http.MethodPost, "/viagens/1/acerto", "", "1"))
	if rr.Code != http.StatusConflict {
		t.Fatalf("segundo acerto: status = %d, quer 409", rr.Code)
	}
}

func TestMarcarAcertoComoPagoPreservaValor(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)
	viagemID := prepararViagemSPRJ(t, db)

	rr := httptest.NewRecorder()
	h.CriarParaViagem(rr, requisicaoViagem(http.MethodPost, "/viagens/1/acerto", "", "1"))
	var resp struct {
		Data Acerto `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	criado := resp.Data

	rr = httptest.NewRecorder()
	h.Atualizar(rr, requisicaoViagem(http.MethodPut, "/acertos/1", `{"pago":true}`, "1"))
	if rr.Code != http.StatusOK {
		t.Fatalf("atualizar: status = %d", rr.Code)
	}

	salvo, err := h.Repository.FindByViagem(viagemID)
	if err != nil {
		t.Fatalf("buscar acerto: %v", err)
	}
	if !salvo.Pago {
		t.Error("pago deveria ser true")
	}
	if !salvo.Valor.Equal(criado.Valor) {
		t.Errorf("marcar pago não deveria alterar o valor: %s != %s", salvo.Valor, criado.Valor)
	}
}

func TestRecalcularAcerto(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)
	viagemID := prepararViagemSPRJ(t, db)

	rr := httptest.NewRecorder()
	h.CriarParaViagem(rr, requisicaoViagem(http.MethodPost, "/viagens/1/acerto", "", "1"))

	// marca como pago e acrescenta uma despesa depois do acerto criado
	h.Atualizar(httptest.NewRecorder(), requisicaoViagem(http.MethodPut, "/acertos/1", `{"pago":true}`, "1"))
	db.Create(&despesa.Despesa{Descricao: "pedágio", Valor: decimal.RequireFromString("200.00"), ViagemID: viagemID})

	rr = httptest.NewRecorder()
	h.Recalcular(rr, requisicaoViagem(http.MethodPost, "/viagens/1/acerto/recalcular", "", "1"))
	if rr.Code != http.StatusOK {
		t.Fatalf("recalcular: status = %d", rr.Code)
	}

	salvo, err := h.Repository.FindByViagem(viagemID)
	if err != nil {
		t.Fatalf("buscar acerto: %v", err)
	}
	if !salvo.Valor.Equal(decimal.RequireFromString("2000.00")) {
		t.Errorf("valor recalculado = %s, quer 2000.00", salvo.Valor)
	}
	if !salvo.Pago {
		t.Error("recalcular não deveria alterar o status de pago")
	}

	// recálculo sem mudança nos lançamentos é idempotente
	h.Recalcular(httptest.NewRecorder(), requisicaoViagem(http.MethodPost, "/viagens/1/acerto/recalcular", "", "1"))
	segundo, _ := h.Repository.FindByViagem(viagemID)
	if !segundo.Valor.Equal(salvo.Valor) {
		t.Errorf("recálculo divergiu: %s != %s", segundo.Valor, salvo.Valor)
	}
}

func TestCriarAcertoParaViagemInexistente(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)

	rr := httptest.NewRecorder()
	h.CriarParaViagem(rr, requisicaoViagem(http.MethodPost, "/viagens/99/acerto", "", "99"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, quer 404", rr.Code)
	}
}
