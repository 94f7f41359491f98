package receita

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

type receitaRequest struct {
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

// CriarParaViagem registra uma receita na viagem da rota.
// POST /viagens/{id}/receitas
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

	var req receitaRequest
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

	rec := Receita{
		Descricao: *req.Descricao,
		Valor:     *req.Valor,
		ViagemID:  uint(viagemID),
	}
	if err := h.Repository.Salvar(h.DB, &rec); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar receita")
		return
	}
	utils.RespondDados(w, http.StatusCreated, rec)
}

// ListarPorViagem lista as receitas de uma viagem visível ao chamador.
// GET /viagens/{id}/receitas
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
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar receitas")
		return
	}
	utils.RespondDados(w, http.StatusOK, list)
}

// Atualizar altera uma receita; mudança de viagem revalida a cadeia de posse.
// PUT /receitas/{id}
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

	rec, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "receita não encontrada")
		return
	}
	cadeia, err := autorizacao.CadeiaDaViagem(h.DB, rec.ViagemID)
	if err != nil || !perfil.PodeAcessar(cadeia) {
		utils.RespondErro(w, http.StatusNotFound, "receita não encontrada")
		return
	}

	var req receitaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.ViagemID != nil && *req.ViagemID != rec.ViagemID {
		novaCadeia, err := autorizacao.CadeiaDaViagem(h.DB, *req.ViagemID)
		if err != nil {
			utils.RespondErro(w, http.StatusNotFound, "viagem de destino não encontrada")
			return
		}
		if !perfil.PodeAcessar(novaCadeia) {
			utils.RespondErro(w, http.StatusForbidden, "sem acesso à viagem de destino")
			return
		}
		rec.ViagemID = *req.ViagemID
	}
	if req.Descricao != nil {
		if strings.TrimSpace(*req.Descricao) == "" {
			utils.RespondErro(w, http.StatusBadRequest, "descrição é obrigatória")
			return
		}
		rec.Descricao = *req.Descricao
	}
	if req.Valor != nil {
		if !req.Valor.IsPositive() {
			utils.RespondErro(w, http.StatusBadRequest, "valor deve ser positivo")
			return
		}
		rec.Valor = *req.Valor
	}

	if err := h.Repository.Atualizar(h.DB, rec); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar receita")
		return
	}
	utils.RespondDados(w, http.StatusOK, rec)
}

// Deletar remove uma receita.
// DELETE /receitas/{id}
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

	rec, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "receita não encontrada")
		return
	}
	cadeia, err := autorizacao.CadeiaDaViagem(h.DB, rec.ViagemID)
	if err != nil || !perfil.PodeAcessar(cadeia) {
		utils.RespondErro(w, http.StatusNotFound, "receita não encontrada")
		return
	}

	if err := h.Repository.Deletar(h.DB, rec.ID); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir receita")
		return
	}
	utils.RespondMensagem(w, http.StatusOK, "receita excluída com sucesso")
}
