package viagem

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LogiFrete/api-transportadora/internal/auth"
	"github.com/LogiFrete/api-transportadora/internal/autorizacao"
	"github.com/LogiFrete/api-transportadora/internal/motorista"
	"github.com/LogiFrete/api-transportadora/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarViagemRequest struct {
	Descricao   string     `json:"descricao"`
	Origem      string     `json:"origem"`
	Destino     string     `json:"destino"`
	DataInicio  *time.Time `json:"dataInicio"`
	MotoristaID uint       `json:"motoristaId"`
}

type atualizarViagemRequest struct {
	Descricao   *string    `json:"descricao"`
	Origem      *string    `json:"origem"`
	Destino     *string    `json:"destino"`
	DataInicio  *time.Time `json:"dataInicio"`
	MotoristaID *uint      `json:"motoristaId"`
}

type atualizarStatusRequest struct {
	Status string `json:"status"`
}

// Handler encapsula DB e repositories
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Motoristas motorista.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Motoristas: motorista.NewRepository(),
	}
}

func cadeiaDaViagem(v *Viagem) autorizacao.Cadeia {
	return autorizacao.Cadeia{TransportadoraID: v.TransportadoraID, MotoristaID: v.MotoristaID}
}

// motoristaDaTransportadora valida que o motorista existe e pertence à
// transportadora; a violação de escopo responde como ausência.
func (h *Handler) motoristaDaTransportadora(motoristaID, transportadoraID uint) (*motorista.Motorista, error) {
	m, err := h.Motoristas.BuscarPorID(h.DB, motoristaID)
	if err != nil {
		return nil, err
	}
	if m.TransportadoraID != transportadoraID {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

// Criar abre uma viagem. Administrador indica o motorista; motorista logado
// cria viagens apenas para si.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	transportadoraID, ok := r.Context().Value(auth.CtxTransportadoraID).(uint)
	if !ok {
		utils.RespondErro(w, http.StatusUnauthorized, "não autenticado")
		return
	}

	var req criarViagemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if strings.TrimSpace(req.Descricao) == "" {
		utils.RespondErro(w, http.StatusBadRequest, "descrição é obrigatória")
		return
	}

	motoristaID := req.MotoristaID
	if autorizacao.EhAdmin(r.Context()) {
		if motoristaID == 0 {
			utils.RespondErro(w, http.StatusBadRequest, "motoristaId é obrigatório")
			return
		}
	} else {
		// motorista só abre viagem para si
		proprioID, _ := r.Context().Value(auth.CtxMotoristaID).(uint)
		if motoristaID != 0 && motoristaID != proprioID {
			utils.RespondErro(w, http.StatusForbidden, "motorista só pode criar viagens próprias")
			return
		}
		motoristaID = proprioID
	}

	if _, err := h.motoristaDaTransportadora(motoristaID, transportadoraID); err != nil {
		utils.RespondErro(w, http.StatusNotFound, "motorista não encontrado")
		return
	}

	v := Viagem{
		Descricao:        req.Descricao,
		Origem:           req.Origem,
		Destino:          req.Destino,
		DataInicio:       req.DataInicio,
		Status:           StatusPlanejada,
		TransportadoraID: transportadoraID,
		MotoristaID:      motoristaID,
	}
	if err := h.Repository.Salvar(h.DB, &v); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar viagem")
		return
	}
	utils.RespondDados(w, http.StatusCreated, v)
}

// Listar retorna as viagens visíveis ao chamador, com lançamentos e acerto.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	transportadoraID, ok := r.Context().Value(auth.CtxTransportadoraID).(uint)
	if !ok {
		utils.RespondErro(w, http.StatusUnauthorized, "não autenticado")
		return
	}

	var (
		list []Viagem
		err  error
	)
	if autorizacao.EhAdmin(r.Context()) {
		list, err = h.Repository.ListarPorTransportadora(h.DB, transportadoraID)
	} else {
		motoristaID, _ := r.Context().Value(auth.CtxMotoristaID).(uint)
		list, err = h.Repository.ListarPorMotorista(h.DB, motoristaID)
	}
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar viagens")
		return
	}
	utils.RespondDados(w, http.StatusOK, list)
}

func (h *Handler) viagemVisivel(r *http.Request) (*Viagem, int, string) {
	perfil, err := autorizacao.PerfilDoContexto(r.Context())
	if err != nil {
		return nil, http.StatusUnauthorized, "não autenticado"
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return nil, http.StatusBadRequest, "ID inválido"
	}
	v, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, http.StatusNotFound, "viagem não encontrada"
	}
	if err != nil {
		return nil, http.StatusInternalServerError, "erro ao buscar viagem"
	}
	if !perfil.PodeAcessar(cadeiaDaViagem(v)) {
		return nil, http.StatusNotFound, "viagem não encontrada"
	}
	return v, 0, ""
}

// BuscarPorID retorna uma viagem visível ao chamador.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	v, status, msg := h.viagemVisivel(r)
	if v == nil {
		utils.RespondErro(w, status, msg)
		return
	}
	utils.RespondDados(w, http.StatusOK, v)
}

// Resumo retorna os totais consolidados da viagem.
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	v, status, msg := h.viagemVisivel(r)
	if v == nil {
		utils.RespondErro(w, status, msg)
		return
	}
	utils.RespondDados(w, http.StatusOK, MontarResumoViagemDTO(*v))
}

// Atualizar altera dados da viagem; troca de motorista é restrita ao
// administrador e revalida o vínculo com a transportadora.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	v, status, msg := h.viagemVisivel(r)
	if v == nil {
		utils.RespondErro(w, status, msg)
		return
	}

	var req atualizarViagemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	if req.MotoristaID != nil && *req.MotoristaID != v.MotoristaID {
		if !autorizacao.EhAdmin(r.Context()) {
			utils.RespondErro(w, http.StatusForbidden, "troca de motorista é restrita ao administrador")
			return
		}
		if _, err := h.motoristaDaTransportadora(*req.MotoristaID, v.TransportadoraID); err != nil {
			utils.RespondErro(w, http.StatusNotFound, "motorista não encontrado")
			return
		}
		v.MotoristaID = *req.MotoristaID
	}
	if req.Descricao != nil {
		if strings.TrimSpace(*req.Descricao) == "" {
			utils.RespondErro(w, http.StatusBadRequest, "descrição é obrigatória")
			return
		}
		v.Descricao = *req.Descricao
	}
	if req.Origem != nil {
		v.Origem = *req.Origem
	}
	if req.Destino != nil {
		v.Destino = *req.Destino
	}
	if req.DataInicio != nil {
		v.DataInicio = req.DataInicio
	}

	if err := h.Repository.Atualizar(h.DB, v); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar viagem")
		return
	}
	utils.RespondDados(w, http.StatusOK, v)
}

// AtualizarStatus aplica uma transição da máquina de estados da viagem.
// Finalizar carimba a data de término.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	v, status, msg := h.viagemVisivel(r)
	if v == nil {
		utils.RespondErro(w, status, msg)
		return
	}

	var req atualizarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if !StatusValido(req.Status) {
		utils.RespondErro(w, http.StatusBadRequest, "status desconhecido")
		return
	}
	if !TransicaoValida(v.Status, req.Status) {
		utils.RespondErro(w, http.StatusBadRequest, "transição de status inválida")
		return
	}

	v.Status = req.Status
	if req.Status == StatusFinalizada {
		agora := time.Now()
		v.DataFim = &agora
	}

	if err := h.Repository.Atualizar(h.DB, v); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar viagem")
		return
	}
	utils.RespondDados(w, http.StatusOK, v)
}

// Deletar remove uma viagem sem lançamentos nem acerto (somente administrador).
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	v, status, msg := h.viagemVisivel(r)
	if v == nil {
		utils.RespondErro(w, status, msg)
		return
	}
	if !autorizacao.EhAdmin(r.Context()) {
		utils.RespondErro(w, http.StatusForbidden, "acesso restrito ao administrador")
		return
	}

	total, err := h.Repository.ContarDependentes(h.DB, v.ID)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao verificar lançamentos")
		return
	}
	if total > 0 {
		utils.RespondErro(w, http.StatusConflict, "viagem possui lançamentos ou acerto e não pode ser excluída")
		return
	}

	if err := h.Repository.Deletar(h.DB, v.ID); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir viagem")
		return
	}
	utils.RespondMensagem(w, http.StatusOK, "viagem excluída com sucesso")
}
