// Pacote autorizacao concentra a decisão de acesso que antes ficava espalhada
// em desvios por papel dentro de cada handler: um predicado único recebendo a
// cadeia de posse da entidade alvo, com uma variante por perfil.
package autorizacao

import (
	"context"
	"errors"

	"github.com/LogiFrete/api-transportadora/internal/auth"
	"github.com/LogiFrete/api-transportadora/internal/models"
)

// Cadeia descreve a posse de uma entidade: a transportadora dona e, quando a
// entidade pertence (direta ou transitivamente) a uma viagem, o motorista dono.
// MotoristaID zero significa que a entidade não tem vínculo com motorista.
type Cadeia struct {
	TransportadoraID uint
	MotoristaID      uint
}

// Perfil decide se o chamador pode acessar uma entidade a partir da sua cadeia.
type Perfil interface {
	PodeAcessar(c Cadeia) bool
}

// AdminTransportadora acessa tudo que pertence à própria transportadora.
type AdminTransportadora struct {
	Transportadora uint
}

func (a AdminTransportadora) PodeAcessar(c Cadeia) bool {
	return c.TransportadoraID != 0 && c.TransportadoraID == a.Transportadora
}

// Motorista acessa apenas o que pertence ao próprio motorista.
type Motorista struct {
	Transportadora uint
	Motorista      uint
}

func (m Motorista) PodeAcessar(c Cadeia) bool {
	return c.MotoristaID != 0 && c.MotoristaID == m.Motorista
}

var ErrSemIdentidade = errors.New("identidade ausente no contexto")

// PerfilDoContexto constrói a variante de perfil a partir das claims injetadas
// pelo middleware de autenticação.
func PerfilDoContexto(ctx context.Context) (Perfil, error) {
	perfil, ok := ctx.Value(auth.CtxPerfil).(string)
	if !ok {
		return nil, ErrSemIdentidade
	}
	transportadoraID, _ := ctx.Value(auth.CtxTransportadoraID).(uint)
	motoristaID, _ := ctx.Value(auth.CtxMotoristaID).(uint)

	switch perfil {
	case models.PerfilAdminTransportadora:
		return AdminTransportadora{Transportadora: transportadoraID}, nil
	case models.PerfilMotorista:
		return Motorista{Transportadora: transportadoraID, Motorista: motoristaID}, nil
	}
	return nil, ErrSemIdentidade
}

// EhAdmin indica se o chamador tem perfil de administrador de transportadora.
func EhAdmin(ctx context.Context) bool {
	perfil, _ := ctx.Value(auth.CtxPerfil).(string)
	return perfil == models.PerfilAdminTransportadora
}
