package utils

import (
	"encoding/json"
	"net/http"
)

// RespondJSON escreve o payload como JSON com o status informado.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type respostaSucesso struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// RespondDados envelopa o payload no formato {"success": true, "data": ...}.
func RespondDados(w http.ResponseWriter, status int, payload any) {
	RespondJSON(w, status, respostaSucesso{Success: true, Data: payload})
}

// RespondMensagem envelopa uma mensagem de mutação bem-sucedida.
func RespondMensagem(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, respostaSucesso{Success: true, Message: msg})
}

// RespondErro escreve um corpo {"error": msg} com o status informado.
func RespondErro(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, map[string]string{"error": msg})
}
