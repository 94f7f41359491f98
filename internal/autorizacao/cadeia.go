package autorizacao

import (
	"gorm.io/gorm"
)

// CadeiaDaViagem resolve a cadeia de posse de uma viagem sem carregar o
// registro completo. Retorna gorm.ErrRecordNotFound se a viagem não existe.
func CadeiaDaViagem(db *gorm.DB, viagemID uint) (Cadeia, error) {
	var c Cadeia
	err := db.Table("viagens").
		Select("transportadora_id, motorista_id").
		Where("id = ?", viagemID).
		Take(&c).Error
	return c, err
}
