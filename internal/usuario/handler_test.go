package usuario

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LogiFrete/api-transportadora/internal/auth"
	"github.com/LogiFrete/api-transportadora/internal/models"
	"github.com/LogiFrete/api-transportadora/internal/motorista"
	"github.com/LogiFrete/api-transportadora/internal/transportadora"
	"github.com/LogiFrete/api-transportadora/internal/utils"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func abrirBancoTeste(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrir banco: %v", err)
	}
	err = db.AutoMigrate(&transportadora.Transportadora{}, &motorista.Motorista{}, &Usuario{})
	if err != nil {
		t.Fatalf("migrar: %v", err)
	}
	return db
}

func criarTransportadoraTeste(t *testing.T, db *gorm.DB) *transportadora.Transportadora {
	t.Helper()
	tr := transportadora.Transportadora{Nome: "Translog", CNPJ: "12.345.678/0001-00"}
	if err := db.Create(&tr).Error; err != nil {
		t.Fatalf("criar transportadora: %v", err)
	}
	return &tr
}

func ctxAdmin(transportadoraID uint) context.Context {
	ctx := context.WithValue(context.Background(), auth.CtxUsuarioID, uint(99))
	ctx = context.WithValue(ctx, auth.CtxPerfil, models.PerfilAdminTransportadora)
	return context.WithValue(ctx, auth.CtxTransportadoraID, transportadoraID)
}

func requisicaoLoginMotorista(transportadoraID uint, id, corpo string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/motoristas/"+id+"/login", strings.NewReader(corpo))
	req = req.WithContext(ctxAdmin(transportadoraID))
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestRegistroELoginDeAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	db := abrirBancoTeste(t)
	h := NewHandler(db)
	criarTransportadoraTeste(t, db)

	body := `{"email":"dono@translog.com","senha":"forte123","perfil":"ADMIN_TRANSPORTADORA","transportadoraId":1}`
	req := httptest.NewRequest(http.MethodPost, "/auth/registro", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Registro(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("registro: status = %d: %s", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "forte123") {
		t.Fatal("senha vazou na resposta")
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"dono@translog.com","senha":"forte123"}`))
	rr = httptest.NewRecorder()
	h.Login(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: status = %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decodificar resposta: %v", err)
	}
	claims, err := auth.ValidarToken(resp["token"])
	if err != nil {
		t.Fatalf("token inválido: %v", err)
	}
	if claims.TransportadoraID != 1 {
		t.Errorf("claims sem transportadora: %+v", claims)
	}

	temCookie := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.NomeCookieToken && c.Value != "" && c.HttpOnly {
			temCookie = true
		}
	}
	if !temCookie {
		t.Error("login deveria gravar cookie HttpOnly de sessão")
	}
}

func TestLoginComSenhaErrada(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	db := abrirBancoTeste(t)
	h := NewHandler(db)
	criarTransportadoraTeste(t, db)

	body := `{"email":"dono@translog.com","senha":"forte123","perfil":"ADMIN_TRANSPORTADORA","transportadoraId":1}`
	h.Registro(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/auth/registro", strings.NewReader(body)))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"dono@translog.com","senha":"errada"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, quer 401", rr.Code)
	}
}

func TestRegistroEmailDuplicado(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)
	criarTransportadoraTeste(t, db)

	body := `{"email":"dono@translog.com","senha":"forte123","perfil":"ADMIN_TRANSPORTADORA","transportadoraId":1}`
	h.Registro(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/auth/registro", strings.NewReader(body)))

	rr := httptest.NewRecorder()
	h.Registro(rr, httptest.NewRequest(http.MethodPost, "/auth/registro", strings.NewReader(body)))
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, quer 409", rr.Code)
	}
	var total int64
	db.Model(&Usuario{}).Count(&total)
	if total != 1 {
		t.Errorf("conflito não deveria criar linha; total = %d", total)
	}
}

func TestRegistroMotoristaVinculaTransportadora(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)
	tr := criarTransportadoraTeste(t, db)
	m := motorista.Motorista{Nome: "João", CPF: "111.222.333-44", CNH: "99887766554", TransportadoraID: tr.ID}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("criar motorista: %v", err)
	}

	body := `{"email":"joao@translog.com","senha":"forte123","perfil":"MOTORISTA","motoristaId":1}`
	rr := httptest.NewRecorder()
	h.Registro(rr, httptest.NewRequest(http.MethodPost, "/auth/registro", strings.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	var u Usuario
	if err := db.First(&u).Error; err != nil {
		t.Fatalf("buscar usuário: %v", err)
	}
	if u.TransportadoraID == nil || *u.TransportadoraID != tr.ID {
		t.Error("registro de motorista deveria herdar a transportadora do vínculo")
	}

	// segundo login para o mesmo motorista é rejeitado
	rr = httptest.NewRecorder()
	outro := `{"email":"joao2@translog.com","senha":"forte123","perfil":"MOTORISTA","motoristaId":1}`
	h.Registro(rr, httptest.NewRequest(http.MethodPost, "/auth/registro", strings.NewReader(outro)))
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, quer 409", rr.Code)
	}
}

func TestCriarLoginMotoristaGeraSenhaTemporaria(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)
	tr := criarTransportadoraTeste(t, db)
	m := motorista.Motorista{Nome: "João", CPF: "111.222.333-44", CNH: "99887766554", TransportadoraID: tr.ID}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("criar motorista: %v", err)
	}

	rr := httptest.NewRecorder()
	h.CriarLoginMotorista(rr, requisicaoLoginMotorista(tr.ID, "1", `{"email":"joao@translog.com"}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data loginMotoristaResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decodificar resposta: %v", err)
	}
	if len(resp.Data.SenhaTemporaria) != 12 {
		t.Errorf("senha temporária com %d caracteres, quer 12", len(resp.Data.SenhaTemporaria))
	}

	var u Usuario
	if err := db.First(&u).Error; err != nil {
		t.Fatalf("buscar usuário: %v", err)
	}
	if u.Perfil != models.PerfilMotorista || u.MotoristaID == nil || *u.MotoristaID != m.ID {
		t.Errorf("login criado sem vínculo de motorista: %+v", u)
	}
	if u.TransportadoraID == nil || *u.TransportadoraID != tr.ID {
		t.Error("login deveria herdar a transportadora do motorista")
	}
	if !utils.VerificarSenha(u.Senha, resp.Data.SenhaTemporaria) {
		t.Error("senha temporária retornada não confere com o hash gravado")
	}

	// segundo login para o mesmo motorista é rejeitado
	rr = httptest.NewRecorder()
	h.CriarLoginMotorista(rr, requisicaoLoginMotorista(tr.ID, "1", `{"email":"joao2@translog.com"}`))
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, quer 409", rr.Code)
	}
}

func TestCriarLoginMotoristaDeOutraTransportadora(t *testing.T) {
	db := abrirBancoTeste(t)
	h := NewHandler(db)
	tr := criarTransportadoraTeste(t, db)
	m := motorista.Motorista{Nome: "João", CPF: "111.222.333-44", CNH: "99887766554", TransportadoraID: tr.ID}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("criar motorista: %v", err)
	}

	rr := httptest.NewRecorder()
	h.CriarLoginMotorista(rr, requisicaoLoginMotorista(tr.ID+1, "1", `{"email":"joao@translog.com"}`))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, quer 404", rr.Code)
	}
	var total int64
	db.Model(&Usuario{}).Count(&total)
	if total != 0 {
		t.Errorf("não deveria criar login fora da transportadora; total = %d", total)
	}
}
