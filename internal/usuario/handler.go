package usuario

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LogiFrete/api-transportadora/internal/auth"
	"github.com/LogiFrete/api-transportadora/internal/autorizacao"
	"github.com/LogiFrete/api-transportadora/internal/models"
	"github.com/LogiFrete/api-transportadora/internal/motorista"
	"github.com/LogiFrete/api-transportadora/internal/transportadora"
	"github.com/LogiFrete/api-transportadora/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type registroRequest struct {
	Email            string `json:"email"`
	Senha            string `json:"senha"`
	Perfil           string `json:"perfil"`
	TransportadoraID uint   `json:"transportadoraId"`
	MotoristaID      uint   `json:"motoristaId"`
}

// Handler encapsula DB e os repositórios usados no cadastro.
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

func derefOuZero(p *uint) uint {
	if p == nil {
		return 0
	}
	return *p
}

func gravarCookieToken(w http.ResponseWriter, token string, validade time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.NomeCookieToken,
		Value:    token,
		Path:     "/",
		Expires:  validade,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Login autentica por email e senha e grava o cookie de sessão.
// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		utils.RespondErro(w, http.StatusUnauthorized, "credenciais inválidas")
		return
	}
	if !utils.VerificarSenha(u.Senha, req.Senha) {
		utils.RespondErro(w, http.StatusUnauthorized, "credenciais inválidas")
		return
	}

	token, err := auth.GerarToken(u.ID, u.Perfil, derefOuZero(u.TransportadoraID), derefOuZero(u.MotoristaID))
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao gerar token")
		return
	}

	gravarCookieToken(w, token, time.Now().Add(auth.TokenTTL))
	utils.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout expira o cookie de sessão.
// POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	gravarCookieToken(w, "", time.Unix(0, 0))
	utils.RespondMensagem(w, http.StatusOK, "sessão encerrada")
}

// Registro cria um login de administrador ou de motorista.
// POST /auth/registro
func (h *Handler) Registro(w http.ResponseWriter, r *http.Request) {
	var req registroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Senha) == "" {
		utils.RespondErro(w, http.StatusBadRequest, "email e senha são obrigatórios")
		return
	}
	if !models.PerfilValido(req.Perfil) {
		utils.RespondErro(w, http.StatusBadRequest, "perfil desconhecido")
		return
	}

	if existe, err := h.Repository.ExisteEmail(h.DB, req.Email); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar email")
		return
	} else if existe {
		utils.RespondErro(w, http.StatusConflict, "email já cadastrado")
		return
	}

	u := Usuario{
		Email:  req.Email,
		Perfil: req.Perfil,
	}

	switch req.Perfil {
	case models.PerfilAdminTransportadora:
		if req.TransportadoraID == 0 {
			utils.RespondErro(w, http.StatusBadRequest, "transportadoraId é obrigatório")
			return
		}
		var t transportadora.Transportadora
		if err := h.DB.First(&t, req.TransportadoraID).Error; err != nil {
			utils.RespondErro(w, http.StatusNotFound, "transportadora não encontrada")
			return
		}
		u.TransportadoraID = &t.ID

	case models.PerfilMotorista:
		if req.MotoristaID == 0 {
			utils.RespondErro(w, http.StatusBadRequest, "motoristaId é obrigatório")
			return
		}
		m, err := h.Motoristas.BuscarPorID(h.DB, req.MotoristaID)
		if err != nil {
			utils.RespondErro(w, http.StatusNotFound, "motorista não encontrado")
			return
		}
		if vinculado, err := h.Repository.ExisteVinculoMotorista(h.DB, m.ID); err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar vínculo")
			return
		} else if vinculado {
			utils.RespondErro(w, http.StatusConflict, "motorista já possui login")
			return
		}
		u.MotoristaID = &m.ID
		u.TransportadoraID = &m.TransportadoraID
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao processar senha")
		return
	}
	u.Senha = hash

	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar usuário")
		return
	}
	utils.RespondDados(w, http.StatusCreated, u)
}

type loginMotoristaRequest struct {
	Email string `json:"email"`
}

type loginMotoristaResponse struct {
	Usuario         Usuario `json:"usuario"`
	SenhaTemporaria string  `json:"senhaTemporaria"`
}

// CriarLoginMotorista cria o login de um motorista da transportadora do
// administrador, com senha temporária gerada. A senha só aparece nesta resposta.
// POST /motoristas/{id}/login
func (h *Handler) CriarLoginMotorista(w http.ResponseWriter, r *http.Request) {
	transportadoraID, ok := r.Context().Value(auth.CtxTransportadoraID).(uint)
	if !ok {
		utils.RespondErro(w, http.StatusUnauthorized, "não autenticado")
		return
	}
	if !autorizacao.EhAdmin(r.Context()) {
		utils.RespondErro(w, http.StatusForbidden, "acesso restrito ao administrador")
		return
	}
	motoristaID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}

	m, err := h.Motoristas.BuscarPorID(h.DB, uint(motoristaID))
	if err != nil || m.TransportadoraID != transportadoraID {
		utils.RespondErro(w, http.StatusNotFound, "motorista não encontrado")
		return
	}

	var req loginMotoristaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		utils.RespondErro(w, http.StatusBadRequest, "email é obrigatório")
		return
	}

	if existe, err := h.Repository.ExisteEmail(h.DB, req.Email); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar email")
		return
	} else if existe {
		utils.RespondErro(w, http.StatusConflict, "email já cadastrado")
		return
	}
	if vinculado, err := h.Repository.ExisteVinculoMotorista(h.DB, m.ID); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar vínculo")
		return
	} else if vinculado {
		utils.RespondErro(w, http.StatusConflict, "motorista já possui login")
		return
	}

	senha, err := utils.GerarSenhaTemporaria()
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao gerar senha")
		return
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao processar senha")
		return
	}

	u := Usuario{
		Email:            req.Email,
		Senha:            hash,
		Perfil:           models.PerfilMotorista,
		TransportadoraID: &m.TransportadoraID,
		MotoristaID:      &m.ID,
	}
	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar usuário")
		return
	}
	utils.RespondDados(w, http.StatusCreated, loginMotoristaResponse{Usuario: u, SenhaTemporaria: senha})
}

// Me retorna o usuário logado.
// GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(auth.CtxUsuarioID).(uint)
	if !ok {
		utils.RespondErro(w, http.StatusUnauthorized, "não autenticado")
		return
	}
	u, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		return
	}
	utils.RespondDados(w, http.StatusOK, u)
}
