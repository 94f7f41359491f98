package receita

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, r *Receita) error
	BuscarPorID(db *gorm.DB, id uint) (*Receita, error)
	ListarPorViagem(db *gorm.DB, viagemID uint) ([]Receita, error)
	Atualizar(db *gorm.DB, r *Receita) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (repo *repositoryImpl) Salvar(db *gorm.DB, r *Receita) error {
	return db.Create(r).Error
}

func (repo *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Receita, error) {
	var rec Receita
	err := db.First(&rec, id).Error
	return &rec, err
}

func (repo *repositoryImpl) ListarPorViagem(db *gorm.DB, viagemID uint) ([]Receita, error) {
	list := []Receita{}
	err := db.Where("viagem_id = ?", viagemID).Find(&list).Error
	return list, err
}

func (repo *repositoryImpl) Atualizar(db *gorm.DB, r *Receita) error {
	return db.Save(r).Error
}

func (repo *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Receita{}, id).Error
}
