package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tempo de vida do token de sessão
const TokenTTL = 24 * time.Hour

// Claims do token de sessão. TransportadoraID e MotoristaID valem zero
// quando o usuário não possui o vínculo correspondente.
type Claims struct {
	UserID           uint   `json:"userId"`
	Perfil           string `json:"perfil"`
	TransportadoraID uint   `json:"transportadoraId"`
	MotoristaID      uint   `json:"motoristaId"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET não definida")
	}
	return []byte(secret), nil
}

// GerarToken gera um JWT HS256 com validade de 24h.
func GerarToken(userID uint, perfil string, transportadoraID, motoristaID uint) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}
	claims := &Claims{
		UserID:           userID,
		Perfil:           perfil,
		TransportadoraID: transportadoraID,
		MotoristaID:      motoristaID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidarToken valida assinatura e expiração e retorna as claims.
func ValidarToken(tokenStr string) (*Claims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("não foi possível extrair claims")
	}
	return claims, nil
}
