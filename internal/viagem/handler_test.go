package viagem

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/LogiFrete/api-transportadora/internal/acerto"
	"github.com/LogiFrete/api-transportadora/internal/auth"
	"github.com/LogiFrete/api-transportadora/internal/despesa"
	"github.com/LogiFrete/api-transportadora/internal/models"
	"github.com/LogiFrete/api-transportadora/internal/motorista"
	"github.com/LogiFrete/api-transportadora/internal/receita"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func abrirBancoTeste(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrir banco: %v", err)
	}
	err = db.AutoMigrate(
		&motorista.Motorista{},
		&Viagem{},
		&receita.Receita{},
		&despesa.Despesa{},
		&acerto.Acerto{},
	)
	if err != nil {
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

func ctxMotorista(transportadoraID, motoristaID uint) context.Context {
	ctx := context.WithValue(context.Background(), auth.CtxUsuarioID, uint(2))
	ctx = context.WithValue(ctx, auth.CtxPerfil, models.PerfilMotorista)
	ctx = context.WithValue(ctx, auth.CtxTransportadoraID, transportadoraID)
	ctx = context.WithValue(ctx, auth.CtxMotoristaID, motoristaID)
	return ctx
}

func criarMotoristaTeste(t *testing.T, db *gorm.DB, transportadoraID uint, cpf, cnh string) *motorista.Motorista {
	t.Helper()
	m := motorista.Motorista{Nome: "Motorista " + cpf, CPF: cpf, CNH: cnh, TransportadoraID: transportadoraID}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("criar motorista: %v", err)
	}
	return &m
}

func criarViagemTeste(t *testing.T, db *gorm.DB, transportadoraID, motoristaID uint, descricao string) *Viagem {
	t.Helper()
	v := Viagem{
		Descricao:        descricao,
		Status:           StatusPlanejada,
		TransportadoraID: transportadoraID,
		MotoristaID:      motoristaID,
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("criar viagem: %v", err)
	}
	return &v
}

func TestListarViagensFiltraPorMotorista(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)

	m1 := criarMotoristaTeste(t, db, 1, "111.111.111-11", "11111111111")
	m2 := criarMotoristaTeste(t, db, 1, "222.222.222-22", "22222222222")
	criarViagemTeste(t, db, 1, m1.ID, "viagem do m1")
	criarViagemTeste(t, db, 1, m2.ID, "viagem do m2")

	req := httptest.NewRequest(http.MethodGet, "/viagens", nil).WithContext(ctxMotorista(1, m1.ID))
	rr := httptest.NewRecorder()
	h.Listar(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, quer 200", rr.Code)
	}
	var resp struct {
		Data []Viagem `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decodificar resposta: %v", err)
	}
	list := resp.Data
	if len(list) != 1 {
		t.Fatalf("motorista deveria ver 1 viagem, veio %d", len(list))
	}
	if list[0].MotoristaID != m1.ID {
		t.Errorf("viagem de outro motorista vazou: %+v", list[0])
	}
}

func TestListarViagensFiltraPorTransportadora(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)

	m1 := criarMotoristaTeste(t, db, 1, "111.111.111-11", "11111111111")
	m2 := criarMotoristaTeste(t, db, 2, "222.222.222-22", "22222222222")
	criarViagemTeste(t, db, 1, m1.ID, "da transportadora 1")
	criarViagemTeste(t, db, 2, m2.ID, "da transportadora 2")

	req := httptest.NewRequest(http.MethodGet, "/viagens", nil).WithContext(ctxAdmin(1))
	rr := httptest.NewRecorder()
	h.Listar(rr, req)

	var resp struct {
		Data []Viagem `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decodificar resposta: %v", err)
	}
	list := resp.Data
	if len(list) != 1 || list[0].TransportadoraID != 1 {
		t.Errorf("admin só deveria ver viagens da própria transportadora: %+v", list)
	}
}

func TestBuscarViagemDeOutroMotorista(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)

	m1 := criarMotoristaTeste(t, db, 1, "111.111.111-11", "11111111111")
	m2 := criarMotoristaTeste(t, db, 1, "222.222.222-22", "22222222222")
	v := criarViagemTeste(t, db, 1, m2.ID, "viagem do m2")

	req := httptest.NewRequest(http.MethodGet, "/viagens/1", nil).WithContext(ctxMotorista(1, m1.ID))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.BuscarPorID(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, quer 404", rr.Code)
	}
	if strings.Contains(rr.Body.String(), v.Descricao) {
		t.Error("dados da viagem vazaram na resposta")
	}
}

func TestCriarViagemMotoristaDeOutraTransportadora(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)

	alheio := criarMotoristaTeste(t, db, 2, "222.222.222-22", "22222222222")

	body := `{"descricao":"SP para BH","motoristaId":` + itoa(alheio.ID) + `}`
	req := httptest.NewRequest(http.MethodPost, "/viagens", strings.NewReader(body)).
		WithContext(ctxAdmin(1))
	rr := httptest.NewRecorder()
	h.Criar(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, quer 404", rr.Code)
	}
	var total int64
	db.Model(&Viagem{}).Count(&total)
	if total != 0 {
		t.Error("viagem não deveria ter sido criada")
	}
}

func TestDeletarViagemComLancamentos(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)

	m := criarMotoristaTeste(t, db, 1, "111.111.111-11", "11111111111")
	v := criarViagemTeste(t, db, 1, m.ID, "com receita")
	db.Create(&receita.Receita{Descricao: "frete", Valor: decimal.RequireFromString("2500.00"), ViagemID: v.ID})

	req := httptest.NewRequest(http.MethodDelete, "/viagens/1", nil).WithContext(ctxAdmin(1))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.Deletar(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, quer 409", rr.Code)
	}
	var total int64
	db.Model(&Viagem{}).Count(&total)
	if total != 1 {
		t.Error("viagem com lançamentos não deveria ser excluída")
	}
}

func TestAtualizarStatusSegueMaquinaDeEstados(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)

	m := criarMotoristaTeste(t, db, 1, "111.111.111-11", "11111111111")
	criarViagemTeste(t, db, 1, m.ID, "SP para RJ")

	patch := func(status string) *httptest.ResponseRecorder {
		body := `{"status":"` + status + `"}`
		req := httptest.NewRequest(http.MethodPatch, "/viagens/1/status", strings.NewReader(body)).
			WithContext(ctxAdmin(1))
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rr := httptest.NewRecorder()
		h.AtualizarStatus(rr, req)
		return rr
	}

	if rr := patch(StatusFinalizada); rr.Code != http.StatusBadRequest {
		t.Errorf("PLANEJADA → FINALIZADA deveria ser 400, veio %d", rr.Code)
	}
	if rr := patch(StatusEmAndamento); rr.Code != http.StatusOK {
		t.Fatalf("PLANEJADA → EM_ANDAMENTO deveria ser 200, veio %d", rr.Code)
	}
	if rr := patch(StatusFinalizada); rr.Code != http.StatusOK {
		t.Fatalf("EM_ANDAMENTO → FINALIZADA deveria ser 200, veio %d", rr.Code)
	}

	var v Viagem
	db.First(&v, 1)
	if v.Status != StatusFinalizada {
		t.Errorf("status final = %s", v.Status)
	}
	if v.DataFim == nil {
		t.Error("finalizar deveria carimbar a data de término")
	}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
