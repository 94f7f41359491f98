package transportadora

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/LogiFrete/api-transportadora/internal/autorizacao"
	"github.com/LogiFrete/api-transportadora/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarTransportadoraRequest struct {
	Nome     string `json:"nome"`
	CNPJ     string `json:"cnpj"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
}

type atualizarTransportadoraRequest struct {
	Nome     *string `json:"nome"`
	CNPJ     *string `json:"cnpj"`
	Email    *string `json:"email"`
	Telefone *string `json:"telefone"`
	Endereco *string `json:"endereco"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

func cadeiaDaTransportadora(id uint) autorizacao.Cadeia {
	return autorizacao.Cadeia{TransportadoraID: id}
}

// Criar cadastra uma transportadora (rota pública, usada no onboarding).
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarTransportadoraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if strings.TrimSpace(req.Nome) == "" || strings.TrimSpace(req.CNPJ) == "" {
		utils.RespondErro(w, http.StatusBadRequest, "nome e cnpj são obrigatórios")
		return
	}

	if existe, err := h.Repository.ExisteCNPJ(h.DB, req.CNPJ, 0); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar cnpj")
		return
	} else if existe {
		utils.RespondErro(w, http.StatusConflict, "cnpj já cadastrado")
		return
	}

	t := Transportadora{
		Nome:     req.Nome,
		CNPJ:     req.CNPJ,
		Email:    req.Email,
		Telefone: req.Telefone,
		Endereco: req.Endereco,
	}
	if err := h.Repository.Salvar(h.DB, &t); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar transportadora")
		return
	}
	utils.RespondDados(w, http.StatusCreated, t)
}

// Listar retorna todas as transportadoras (rota pública, alimenta o cadastro).
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarTodas(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar transportadoras")
		return
	}
	utils.RespondDados(w, http.StatusOK, list)
}

// BuscarPorID retorna a transportadora do chamador, com vínculos carregados.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
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
	if !perfil.PodeAcessar(cadeiaDaTransportadora(uint(id))) {
		utils.RespondErro(w, http.StatusNotFound, "transportadora não encontrada")
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "transportadora não encontrada")
		return
	}
	utils.RespondDados(w, http.StatusOK, obj)
}

// Resumo retorna os números consolidados da transportadora.
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
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
	if !perfil.PodeAcessar(cadeiaDaTransportadora(uint(id))) {
		utils.RespondErro(w, http.StatusNotFound, "transportadora não encontrada")
		return
	}

	var t Transportadora
	if err := h.DB.First(&t, id).Error; err != nil {
		utils.RespondErro(w, http.StatusNotFound, "transportadora não encontrada")
		return
	}
	dto, err := h.Repository.MontarResumo(h.DB, &t)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao montar resumo")
		return
	}
	utils.RespondDados(w, http.StatusOK, dto)
}

// Atualizar altera dados da própria transportadora (somente administrador).
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
	if !perfil.PodeAcessar(cadeiaDaTransportadora(uint(id))) {
		utils.RespondErro(w, http.StatusNotFound, "transportadora não encontrada")
		return
	}
	if !autorizacao.EhAdmin(r.Context()) {
		utils.RespondErro(w, http.StatusForbidden, "acesso restrito ao administrador")
		return
	}

	var t Transportadora
	if err := h.DB.First(&t, id).Error; err != nil {
		utils.RespondErro(w, http.StatusNotFound, "transportadora não encontrada")
		return
	}

	var req atualizarTransportadoraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	if req.CNPJ != nil && *req.CNPJ != t.CNPJ {
		if existe, err := h.Repository.ExisteCNPJ(h.DB, *req.CNPJ, t.ID); err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar cnpj")
			return
		} else if existe {
			utils.RespondErro(w, http.StatusConflict, "cnpj já cadastrado")
			return
		}
		t.CNPJ = *req.CNPJ
	}
	if req.Nome != nil {
		if strings.TrimSpace(*req.Nome) == "" {
			utils.RespondErro(w, http.StatusBadRequest, "nome é obrigatório")
			return
		}
		t.Nome = *req.Nome
	}
	if req.Email != nil {
		t.Email = *req.Email
	}
	if req.Telefone != nil {
		t.Telefone = *req.Telefone
	}
	if req.Endereco != nil {
		t.Endereco = *req.Endereco
	}

	if err := h.Repository.Atualizar(h.DB, &t); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar transportadora")
		return
	}
	utils.RespondDados(w, http.StatusOK, t)
}

// Deletar remove uma transportadora sem motoristas nem viagens.
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
	if !perfil.PodeAcessar(cadeiaDaTransportadora(uint(id))) {
		utils.RespondErro(w, http.StatusNotFound, "transportadora não encontrada")
		return
	}
	if !autorizacao.EhAdmin(r.Context()) {
		utils.RespondErro(w, http.StatusForbidden, "acesso restrito ao administrador")
		return
	}

	var t Transportadora
	if err := h.DB.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondErro(w, http.StatusNotFound, "transportadora não encontrada")
			return
		}
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao buscar transportadora")
		return
	}

	total, err := h.Repository.ContarDependentes(h.DB, t.ID)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao verificar vínculos")
		return
	}
	if total > 0 {
		utils.RespondErro(w, http.StatusConflict, "transportadora possui motoristas ou viagens e não pode ser excluída")
		return
	}

	if err := h.Repository.Deletar(h.DB, t.ID); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir transportadora")
		return
	}
	utils.RespondMensagem(w, http.StatusOK, "transportadora excluída com sucesso")
}
