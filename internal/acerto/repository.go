package acerto

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Acerto
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create insere um novo acerto
func (r *Repository) Create(a *Acerto) error {
	return r.DB.Create(a).Error
}

// FindByID retorna um acerto pelo ID
func (r *Repository) FindByID(id uint) (*Acerto, error) {
	var a Acerto
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByViagem retorna o acerto de uma viagem, se existir
func (r *Repository) FindByViagem(viagemID uint) (*Acerto, error) {
	var a Acerto
	if err := r.DB.Where("viagem_id = ?", viagemID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ExisteParaViagem indica se a viagem já possui acerto
func (r *Repository) ExisteParaViagem(viagemID uint) (bool, error) {
	var total int64
	err := r.DB.Model(&Acerto{}).Where("viagem_id = ?", viagemID).Count(&total).Error
	return total > 0, err
}

// Update salva alterações em um acerto existente
func (r *Repository) Update(a *Acerto) error {
	return r.DB.Save(a).Error
}

// UpdateValor sobrescreve apenas o valor calculado, preservando o status de pago.
func (r *Repository) UpdateValor(id uint, valor decimal.Decimal) error {
	return r.DB.Model(&Acerto{}).Where("id = ?", id).Update("valor", valor).Error
}

// Delete remove um acerto do banco
func (r *Repository) Delete(a *Acerto) error {
	return r.DB.Delete(a).Error
}
