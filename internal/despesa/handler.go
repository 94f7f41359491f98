package despesa

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/LogiFrete/api-transportadora/internal/autorizacao"
	"github.com/LogiFrete/api-transportadora/internal/utils"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type despesaRequest struct {
	Descricao *string          `json:"descricao"`
	Valor     *decimal.Decimal `json:"valor"`
	ViagemID  *uint            `json:"viagemId"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// CriarParaViagem registra uma despesa na viagem da rota.
// POST /viagens/{id}/despesas
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

	var req despesaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Descricao == nil || strings.TrimSpace(*req.Descricao) == "" {
		utils.RespondErro(w, http.StatusBadRequest, "descrição é obrigatória")
		return
	}
	if req.Valor == nil || !req.Valor.IsPositive() {
		utils.RespondErro(w, http.StatusBadRequest, "valor deve ser positivo")
		return
	}

	desp := Despesa{
		Descricao: *req.Descricao,
		Valor:     *req.Valor,
		ViagemID:  uint(viagemID),
	}
	if err := h.Repository.Salvar(h.DB, &desp); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar despesa")
		return
	}
	utils.RespondDados(w, http.StatusCreated, desp)
}

// ListarPorViagem lista as despesas de uma viagem visível ao chamador.
// GET /viagens/{id}/despesas
func (h *Handler) ListarPorViagem(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.Repository.ListarPorViagem(h.DB, uint(viagemID))
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar despesas")
		return
	}
	utils.RespondDados(w, http.StatusOK, list)
}

// Atualizar altera uma despesa; mudança de viagem revalida a cadeia de posse.
// PUT /despesas/{id}
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

	desp, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "despesa não encontrada")
		return
	}
	cadeia, err := autorizacao.CadeiaDaViagem(h.DB, desp.ViagemID)
	if err != nil || !perfil.PodeAcessar(cadeia) {
		utils.RespondErro(w, http.StatusNotFound, "despesa não encontrada")
		return
	}

	var req despesaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.ViagemID != nil && *req.ViagemID != desp.ViagemID {
		novaCadeia, err := autorizacao.CadeiaDaViagem(h.DB, *req.ViagemID)
		if err != nil {
			utils.RespondErro(w, http.StatusNotFound, "viagem de destino não encontrada")
			return
		}
		if !perfil.PodeAcessar(novaCadeia) {
			utils.RespondErro(w, http.StatusForbidden, "sem acesso à viagem de destino")
			return
		}
		desp.ViagemID = *req.ViagemID
	}
	if req.Descricao != nil {
		if strings.TrimSpace(*req.Descricao) == "" {
			utils.RespondErro(w, http.StatusBadRequest, "descrição é obrigatória")
			return
		}
		desp.Descricao = *req.Descricao
	}
	if req.Valor != nil {
		if !req.Valor.IsPositive() {
			utils.RespondErro(w, http.StatusBadRequest, "valor deve ser positivo")
			return
		}
		desp.Valor = *req.Valor
	}

	if err := h.Repository.Atualizar(h.DB, desp); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar despesa")
		return
	}
	utils.RespondDados(w, http.StatusOK, desp)
}

// Deletar remove uma despesa.
// DELETE /despesas/{id}
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

	desp, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "despesa não encontrada")
		return
	}
	cadeia, err := autorizacao.CadeiaDaViagem(h.DB, desp.ViagemID)
	if err != nil || !perfil.PodeAcessar(cadeia) {
		utils.RespondErro(w, http.StatusNotFound, "despesa não encontrada")
		return
	}

	if err := h.Repository.Deletar(h.DB, desp.ID); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir despesa")
		return
	}
	utils.RespondMensagem(w, http.StatusOK, "despesa excluída com sucesso")
}
