package motorista

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, m *Motorista) error
	BuscarPorID(db *gorm.DB, id uint) (*Motorista, error)
	ListarPorTransportadora(db *gorm.DB, transportadoraID uint) ([]Motorista, error)
	Atualizar(db *gorm.DB, m *Motorista) error
	Deletar(db *gorm.DB, id uint) error
	ExisteCPF(db *gorm.DB, cpf string, ignorarID uint) (bool, error)
	ExisteCNH(db *gorm.DB, cnh string, ignorarID uint) (bool, error)
	ContarViagens(db *gorm.DB, motoristaID uint) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, m *Motorista) error {
	return db.Create(m).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Motorista, error) {
	var m Motorista
	err := db.First(&m, id).Error
	return &m, err
}

func (r *repositoryImpl) ListarPorTransportadora(db *gorm.DB, transportadoraID uint) ([]Motorista, error) {
	list := []Motorista{}
	err := db.Where("transportadora_id = ?", transportadoraID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, m *Motorista) error {
	return db.Save(m).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Motorista{}, id).Error
}

func (r *repositoryImpl) ExisteCPF(db *gorm.DB, cpf string, ignorarID uint) (bool, error) {
	var total int64
	err := db.Model(&Motorista{}).
		Where("cpf = ? AND id <> ?", cpf, ignorarID).
		Count(&total).Error
	return total > 0, err
}

func (r *repositoryImpl) ExisteCNH(db *gorm.DB, cnh string, ignorarID uint) (bool, error) {
	var total int64
	err := db.Model(&Motorista{}).
		Where("cnh = ? AND id <> ?", cnh, ignorarID).
		Count(&total).Error
	return total > 0, err
}

// ContarViagens conta pela tabela de viagens para não criar dependência de pacote.
func (r *repositoryImpl) ContarViagens(db *gorm.DB, motoristaID uint) (int64, error) {
	var total int64
	err := db.Table("viagens").Where("motorista_id = ?", motoristaID).Count(&total).Error
	return total, err
}
