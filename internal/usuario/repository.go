package usuario

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, u *Usuario) error
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	ExisteEmail(db *gorm.DB, email string) (bool, error)
	ExisteVinculoMotorista(db *gorm.DB, motoristaID uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Create(u).Error
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	err := db.Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	err := db.First(&u, id).Error
	return &u, err
}

func (r *repositoryImpl) ExisteEmail(db *gorm.DB, email string) (bool, error) {
	var total int64
	err := db.Model(&Usuario{}).Where("email = ?", email).Count(&total).Error
	return total > 0, err
}

// ExisteVinculoMotorista indica se o motorista já possui login.
func (r *repositoryImpl) ExisteVinculoMotorista(db *gorm.DB, motoristaID uint) (bool, error) {
	var total int64
	err := db.Model(&Usuario{}).Where("motorista_id = ?", motoristaID).Count(&total).Error
	return total > 0, err
}
