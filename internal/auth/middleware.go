package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUsuarioID        ctxKey = "usuarioID"
	CtxPerfil           ctxKey = "perfil"
	CtxTransportadoraID ctxKey = "transportadoraID"
	CtxMotoristaID      ctxKey = "motoristaID"
)

// NomeCookieToken é o cookie HttpOnly que carrega o token de sessão.
const NomeCookieToken = "token"

func escreverErro(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// tokenDaRequisicao lê o cookie de sessão; aceita também Authorization: Bearer.
func tokenDaRequisicao(r *http.Request) string {
	if c, err := r.Cookie(NomeCookieToken); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// MiddlewareAutenticacao valida o token de sessão e injeta as claims no contexto.
func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		raw := tokenDaRequisicao(r)
		if raw == "" {
			escreverErro(w, http.StatusUnauthorized, "token ausente")
			return
		}
		claims, err := ValidarToken(raw)
		if err != nil {
			escreverErro(w, http.StatusUnauthorized, "token inválido")
			return
		}
		ctx := context.WithValue(r.Context(), CtxUsuarioID, claims.UserID)
		ctx = context.WithValue(ctx, CtxPerfil, claims.Perfil)
		ctx = context.WithValue(ctx, CtxTransportadoraID, claims.TransportadoraID)
		ctx = context.WithValue(ctx, CtxMotoristaID, claims.MotoristaID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
