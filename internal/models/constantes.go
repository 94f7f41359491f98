// models/constantes.go
package models

// Perfis de acesso dos usuários do sistema
const (
	PerfilAdminTransportadora = "ADMIN_TRANSPORTADORA"
	PerfilMotorista           = "MOTORISTA"
)

// PerfilValido indica se a string corresponde a um perfil conhecido.
func PerfilValido(p string) bool {
	return p == PerfilAdminTransportadora || p == PerfilMotorista
}
