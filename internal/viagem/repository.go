package viagem

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, v *Viagem) error
	BuscarPorID(db *gorm.DB, id uint) (*Viagem, error)
	ListarPorTransportadora(db *gorm.DB, transportadoraID uint) ([]Viagem, error)
	ListarPorMotorista(db *gorm.DB, motoristaID uint) ([]Viagem, error)
	Atualizar(db *gorm.DB, v *Viagem) error
	Deletar(db *gorm.DB, id uint) error
	ContarDependentes(db *gorm.DB, viagemID uint) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, v *Viagem) error {
	return db.Create(v).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Viagem, error) {
	var v Viagem
	err := db.
		Preload("Receitas").
		Preload("Despesas").
		Preload("Acerto").
		First(&v, id).Error
	return &v, err
}

func (r *repositoryImpl) ListarPorTransportadora(db *gorm.DB, transportadoraID uint) ([]Viagem, error) {
	list := []Viagem{}
	err := db.
		Where("transportadora_id = ?", transportadoraID).
		Preload("Receitas").
		Preload("Despesas").
		Preload("Acerto").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorMotorista(db *gorm.DB, motoristaID uint) ([]Viagem, error) {
	list := []Viagem{}
	err := db.
		Where("motorista_id = ?", motoristaID).
		Preload("Receitas").
		Preload("Despesas").
		Preload("Acerto").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, v *Viagem) error {
	return db.Save(v).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Viagem{}, id).Error
}

// ContarDependentes conta receitas, despesas e acertos que referenciam a viagem.
func (r *repositoryImpl) ContarDependentes(db *gorm.DB, viagemID uint) (int64, error) {
	var total, parcial int64

	if err := db.Table("receitas").Where("viagem_id = ?", viagemID).Count(&parcial).Error; err != nil {
		return 0, err
	}
	total += parcial
	if err := db.Table("despesas").Where("viagem_id = ?", viagemID).Count(&parcial).Error; err != nil {
		return 0, err
	}
	total += parcial
	if err := db.Table("acertos").Where("viagem_id = ?", viagemID).Count(&parcial).Error; err != nil {
		return 0, err
	}
	total += parcial

	return total, nil
}
