package despesa

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, d *Despesa) error
	BuscarPorID(db *gorm.DB, id uint) (*Despesa, error)
	ListarPorViagem(db *gorm.DB, viagemID uint) ([]Despesa, error)
	Atualizar(db *gorm.DB, d *Despesa) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (repo *repositoryImpl) Salvar(db *gorm.DB, d *Despesa) error {
	return db.Create(d).Error
}

func (repo *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Despesa, error) {
	var desp Despesa
	err := db.First(&desp, id).Error
	return &desp, err
}

func (repo *repositoryImpl) ListarPorViagem(db *gorm.DB, viagemID uint) ([]Despesa, error) {
	list := []Despesa{}
	err := db.Where("viagem_id = ?", viagemID).Find(&list).Error
	return list, err
}

func (repo *repositoryImpl) Atualizar(db *gorm.DB, d *Despesa) error {
	return db.Save(d).Error
}

func (repo *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Despesa{}, id).Error
}
