package acerto

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/LogiFrete/api-transportadora/internal/autorizacao"
	"github.com/LogiFrete/api-transportadora/internal/despesa"
	"github.com/LogiFrete/api-transportadora/internal/receita"
	"github.com/LogiFrete/api-transportadora/internal/utils"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type criarAcertoRequest struct {
	// Valor é opcional: ausente, o acerto é calculado das receitas e despesas.
	Valor      *decimal.Decimal `json:"valor"`
	Observacao string           `json:"observacao"`
}

type atualizarAcertoRequest struct {
	Pago       *bool   `json:"pago"`
	Observacao *string `json:"observacao"`
}

// Handler encapsula DB, repository e os repositórios de lançamentos da viagem.
type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	Receitas   receita.Repository
	Despesas   despesa.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(db),
		Receitas:   receita.NewRepository(),
		Despesas:   despesa.NewRepository(),
	}
}

// valorDaViagem calcula o saldo atual da viagem a partir dos lançamentos.
func (h *Handler) valorDaViagem(viagemID uint) (decimal.Decimal, error) {
	receitas, err := h.Receitas.ListarPorViagem(h.DB, viagemID)
	if err != nil {
		return decimal.Zero, err
	}
	despesas, err := h.Despesas.ListarPorViagem(h.DB, viagemID)
	if err != nil {
		return decimal.Zero, err
	}
	return CalcularValor(receitas, despesas), nil
}

// CriarParaViagem cria o acerto de uma viagem; sem valor explícito, o saldo é
// calculado das receitas e despesas.
// POST /viagens/{id}/acerto
func (h *Handler) CriarParaViagem(w http.ResponseWriter, r *http.Request) {
	perfil, err := autorizacao.PerfilDoContexto(r.Context())
	if err != nil {
		utils.RespondErro(w, http.StatusUnauthorized, "não autenticado")
		return
	}
	viagemID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}

	cadeia, err := autorizacao.CadeiaDaViagem(h.DB, uint(viagemID))
	if err != nil || !perfil.PodeAcessar(cadeia) {
		utils.RespondErro(w, http.StatusNotFound, "viagem não encontrada")
		return
	}
	if !autorizacao.EhAdmin(r.Context()) {
		utils.RespondErro(w, http.StatusForbidden, "acesso restrito ao administrador")
		return
	}

	if existe, err := h.Repository.ExisteParaViagem(uint(viagemID)); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao verificar acerto")
		return
	} else if existe {
		utils.RespondErro(w, http.StatusConflict, "viagem já possui acerto")
		return
	}

	// corpo vazio é permitido: o valor é calculado dos lançamentos
	var req criarAcertoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	var valor decimal.Decimal
	if req.Valor != nil {
		valor = *req.Valor
	} else {
		valor, err = h.valorDaViagem(uint(viagemID))
		if err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao calcular acerto")
			return
		}
	}

	a := Acerto{
		Valor:      valor,
		Observacao: req.Observacao,
		ViagemID:   uint(viagemID),
	}
	if err := h.Repository.Create(&a); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar acerto")
		return
	}
	utils.RespondDados(w, http.StatusCreated, a)
}

// BuscarPorViagem retorna o acerto de uma viagem visível ao chamador.
// GET /viagens/{id}/acerto
func (h *Handler) BuscarPorViagem(w http.ResponseWriter, r *http.Request) {
	perfil, err := autorizacao.PerfilDoContexto(r.Context())
	if err != nil {
		utils.RespondErro(w, http.StatusUnauthorized, "não autenticado")
		return
	}
	viagemID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}

	cadeia, err := autorizacao.CadeiaDaViagem(h.DB, uint(viagemID))
	if err != nil || !perfil.PodeAcessar(cadeia) {
		utils.RespondErro(w, http.StatusNotFound, "viagem não encontrada")
		return
	}

	a, err := h.Repository.FindByViagem(uint(viagemID))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "acerto não encontrado")
		return
	}
	utils.RespondDados(w, http.StatusOK, a)
}

// Recalcular sobrescreve o valor do acerto com o saldo atual da viagem.
// O status de pago não é alterado.
// POST /viagens/{id}/acerto/recalcular
func (h *Handler) Recalcular(w http.ResponseWriter, r *http.Request) {
	perfil, err := autorizacao.PerfilDoContexto(r.Context())
	if err != nil {
		utils.RespondErro(w, http.StatusUnauthorized, "não autenticado")
		return
	}
	viagemID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}

	cadeia, err := autorizacao.CadeiaDaViagem(h.DB, uint(viagemID))
	if err != nil || !perfil.PodeAcessar(cadeia) {
		utils.RespondErro(w, http.StatusNotFound, "viagem não encontrada")
		return
	}
	if !autorizacao.EhAdmin(r.Context()) {
		utils.RespondErro(w, http.StatusForbidden, "acesso restrito ao administrador")
		return
	}

	a, err := h.Repository.FindByViagem(uint(viagemID))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "acerto não encontrado")
		return
	}

	valor, err := h.valorDaViagem(uint(viagemID))
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao calcular acerto")
		return
	}
	if err := h.Repository.UpdateValor(a.ID, valor); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar acerto")
		return
	}
	a.Valor = valor
	utils.RespondDados(w, http.StatusOK, a)
}

// Atualizar altera pago e observação; o valor só muda via recálculo.
// PUT /acertos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	perfil, err := autorizacao.PerfilDoContexto(r.Context())
	if err != nil {
		utils.RespondErro(w, http.StatusUnauthorized, "não autenticado")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}

	a, err := h.Repository.FindByID(uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "acerto não encontrado")
		return
	}
	cadeia, err := autorizacao.CadeiaDaViagem(h.DB, a.ViagemID)
	if err != nil || !perfil.PodeAcessar(cadeia) {
		utils.RespondErro(w, http.StatusNotFound, "acerto não encontrado")
		return
	}
	if !autorizacao.EhAdmin(r.Context()) {
		utils.RespondErro(w, http.StatusForbidden, "acesso restrito ao administrador")
		return
	}

	var req atualizarAcertoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Pago != nil {
		a.Pago = *req.Pago
	}
	if req.Observacao != nil {
		a.Observacao = *req.Observacao
	}

	if err := h.Repository.Update(a); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar acerto")
		return
	}
	utils.RespondDados(w, http.StatusOK, a)
}

// Deletar remove um acerto.
// DELETE /acertos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	perfil, err := autorizacao.PerfilDoContexto(r.Context())
	if err != nil {
		utils.RespondErro(w, http.StatusUnauthorized, "não autenticado")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}

	a, err := h.Repository.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondErro(w, http.StatusNotFound, "acerto não encontrado")
		return
	}
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao buscar acerto")
		return
	}
	cadeia, err := autorizacao.CadeiaDaViagem(h.DB, a.ViagemID)
	if err != nil || !perfil.PodeAcessar(cadeia) {
		utils.RespondErro(w, http.StatusNotFound, "acerto não encontrado")
		return
	}
	if !autorizacao.EhAdmin(r.Context()) {
		utils.RespondErro(w, http.StatusForbidden, "acesso restrito ao administrador")
		return
	}

	if err := h.Repository.Delete(a); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir acerto")
		return
	}
	utils.RespondMensagem(w, http.StatusOK, "acerto excluído com sucesso")
}
