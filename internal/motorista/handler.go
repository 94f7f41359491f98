package motorista

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LogiFrete/api-transportadora/internal/auth"
	"github.com/LogiFrete/api-transportadora/internal/autorizacao"
	"github.com/LogiFrete/api-transportadora/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarMotoristaRequest struct {
	Nome         string     `json:"nome"`
	CPF          string     `json:"cpf"`
	CNH          string     `json:"cnh"`
	CategoriaCNH string     `json:"categoriaCnh"`
	ValidadeCNH  *time.Time `json:"validadeCnh"`
	Telefone     string     `json:"telefone"`
}

type atualizarMotoristaRequest struct {
	Nome         *string    `json:"nome"`
	CPF          *string    `json:"cpf"`
	CNH          *string    `json:"cnh"`
	CategoriaCNH *string    `json:"categoriaCnh"`
	ValidadeCNH  *time.Time `json:"validadeCnh"`
	Telefone     *string    `json:"telefone"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

func cadeiaDoMotorista(m *Motorista) autorizacao.Cadeia {
	return autorizacao.Cadeia{TransportadoraID: m.TransportadoraID, MotoristaID: m.ID}
}

// Criar cadastra um motorista na transportadora do administrador logado.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	if !autorizacao.EhAdmin(r.Context()) {
		utils.RespondErro(w, http.StatusForbidden, "acesso restrito ao administrador")
		return
	}
	transportadoraID, ok := r.Context().Value(auth.CtxTransportadoraID).(uint)
	if !ok {
		utils.RespondErro(w, http.StatusUnauthorized, "não autenticado")
		return
	}

	var req criarMotoristaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if strings.TrimSpace(req.Nome) == "" || strings.TrimSpace(req.CPF) == "" || strings.TrimSpace(req.CNH) == "" {
		utils.RespondErro(w, http.StatusBadRequest, "nome, cpf e cnh são obrigatórios")
		return
	}

	if existe, err := h.Repository.ExisteCPF(h.DB, req.CPF, 0); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar cpf")
		return
	} else if existe {
		utils.RespondErro(w, http.StatusConflict, "cpf já cadastrado")
		return
	}
	if existe, err := h.Repository.ExisteCNH(h.DB, req.CNH, 0); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar cnh")
		return
	} else if existe {
		utils.RespondErro(w, http.StatusConflict, "cnh já cadastrada")
		return
	}

	m := Motorista{
		Nome:             req.Nome,
		CPF:              req.CPF,
		CNH:              req.CNH,
		CategoriaCNH:     req.CategoriaCNH,
		ValidadeCNH:      req.ValidadeCNH,
		Telefone:         req.Telefone,
		TransportadoraID: transportadoraID,
	}
	if err := h.Repository.Salvar(h.DB, &m); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar motorista")
		return
	}
	utils.RespondDados(w, http.StatusCreated, m)
}

// Listar retorna os motoristas da transportadora; motorista vê só o próprio registro.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	transportadoraID, ok := r.Context().Value(auth.CtxTransportadoraID).(uint)
	if !ok {
		utils.RespondErro(w, http.StatusUnauthorized, "não autenticado")
		return
	}

	if !autorizacao.EhAdmin(r.Context()) {
		motoristaID, _ := r.Context().Value(auth.CtxMotoristaID).(uint)
		obj, err := h.Repository.BuscarPorID(h.DB, motoristaID)
		if err != nil {
			utils.RespondErro(w, http.StatusNotFound, "motorista não encontrado")
			return
		}
		utils.RespondDados(w, http.StatusOK, []Motorista{*obj})
		return
	}

	list, err := h.Repository.ListarPorTransportadora(h.DB, transportadoraID)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar motoristas")
		return
	}
	utils.RespondDados(w, http.StatusOK, list)
}

// BuscarPorID retorna um motorista visível ao chamador.
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

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil || !perfil.PodeAcessar(cadeiaDoMotorista(obj)) {
		utils.RespondErro(w, http.StatusNotFound, "motorista não encontrado")
		return
	}
	utils.RespondDados(w, http.StatusOK, obj)
}

// Atualizar altera campos de um motorista (somente administrador).
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

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil || !perfil.PodeAcessar(cadeiaDoMotorista(obj)) {
		utils.RespondErro(w, http.StatusNotFound, "motorista não encontrado")
		return
	}
	if !autorizacao.EhAdmin(r.Context()) {
		utils.RespondErro(w, http.StatusForbidden, "acesso restrito ao administrador")
		return
	}

	var req atualizarMotoristaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	if req.CPF != nil && *req.CPF != obj.CPF {
		if existe, err := h.Repository.ExisteCPF(h.DB, *req.CPF, obj.ID); err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar cpf")
			return
		} else if existe {
			utils.RespondErro(w, http.StatusConflict, "cpf já cadastrado")
			return
		}
		obj.CPF = *req.CPF
	}
	if req.CNH != nil && *req.CNH != obj.CNH {
		if existe, err := h.Repository.ExisteCNH(h.DB, *req.CNH, obj.ID); err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar cnh")
			return
		} else if existe {
			utils.RespondErro(w, http.StatusConflict, "cnh já cadastrada")
			return
		}
		obj.CNH = *req.CNH
	}
	if req.Nome != nil {
		obj.Nome = *req.Nome
	}
	if req.CategoriaCNH != nil {
		obj.CategoriaCNH = *req.CategoriaCNH
	}
	if req.ValidadeCNH != nil {
		obj.ValidadeCNH = req.ValidadeCNH
	}
	if req.Telefone != nil {
		obj.Telefone = *req.Telefone
	}

	if err := h.Repository.Atualizar(h.DB, obj); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar motorista")
		return
	}
	utils.RespondDados(w, http.StatusOK, obj)
}

// Deletar remove um motorista sem viagens associadas.
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

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !perfil.PodeAcessar(cadeiaDoMotorista(obj))) {
		utils.RespondErro(w, http.StatusNotFound, "motorista não encontrado")
		return
	}
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao buscar motorista")
		return
	}
	if !autorizacao.EhAdmin(r.Context()) {
		utils.RespondErro(w, http.StatusForbidden, "acesso restrito ao administrador")
		return
	}

	total, err := h.Repository.ContarViagens(h.DB, obj.ID)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao verificar viagens")
		return
	}
	if total > 0 {
		utils.RespondErro(w, http.StatusConflict, "motorista possui viagens e não pode ser excluído")
		return
	}

	if err := h.Repository.Deletar(h.DB, obj.ID); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir motorista")
		return
	}
	utils.RespondMensagem(w, http.StatusOK, "motorista excluído com sucesso")
}
