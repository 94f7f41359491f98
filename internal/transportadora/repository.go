package transportadora

import (
	"github.com/LogiFrete/api-transportadora/internal/viagem"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, t *Transportadora) error
	BuscarPorID(db *gorm.DB, id uint) (*Transportadora, error)
	ListarTodas(db *gorm.DB) ([]Transportadora, error)
	Atualizar(db *gorm.DB, t *Transportadora) error
	Deletar(db *gorm.DB, id uint) error
	ExisteCNPJ(db *gorm.DB, cnpj string, ignorarID uint) (bool, error)
	ContarDependentes(db *gorm.DB, id uint) (int64, error)
	MontarResumo(db *gorm.DB, t *Transportadora) (*ResumoTransportadoraDTO, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, t *Transportadora) error {
	return db.Create(t).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Transportadora, error) {
	var t Transportadora
	err := db.
		Preload("Motoristas").
		Preload("Viagens.Receitas").
		Preload("Viagens.Despesas").
		Preload("Viagens.Acerto").
		First(&t, id).Error
	return &t, err
}

// ListarTodas retorna a lista enxuta, usada no cadastro (rota pública).
func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Transportadora, error) {
	list := []Transportadora{}
	err := db.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, t *Transportadora) error {
	return db.Save(t).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Transportadora{}, id).Error
}

func (r *repositoryImpl) ExisteCNPJ(db *gorm.DB, cnpj string, ignorarID uint) (bool, error) {
	var total int64
	err := db.Model(&Transportadora{}).
		Where("cnpj = ? AND id <> ?", cnpj, ignorarID).
		Count(&total).Error
	return total > 0, err
}

// ContarDependentes conta motoristas e viagens vinculados à transportadora.
func (r *repositoryImpl) ContarDependentes(db *gorm.DB, id uint) (int64, error) {
	var total, parcial int64

	if err := db.Table("motoristas").Where("transportadora_id = ?", id).Count(&parcial).Error; err != nil {
		return 0, err
	}
	total += parcial
	if err := db.Table("viagens").Where("transportadora_id = ?", id).Count(&parcial).Error; err != nil {
		return 0, err
	}
	total += parcial

	return total, nil
}

func (r *repositoryImpl) somaLancamentos(db *gorm.DB, tabela string, transportadoraID uint) (decimal.Decimal, error) {
	var linha struct {
		Total decimal.Decimal
	}
	err := db.Table(tabela).
		Joins("JOIN viagens ON viagens.id = "+tabela+".viagem_id").
		Where("viagens.transportadora_id = ?", transportadoraID).
		Select("COALESCE(SUM(" + tabela + ".valor), 0) AS total").
		Scan(&linha).Error
	return linha.Total, err
}

// MontarResumo consolida contagens e somatórios da transportadora.
func (r *repositoryImpl) MontarResumo(db *gorm.DB, t *Transportadora) (*ResumoTransportadoraDTO, error) {
	dto := &ResumoTransportadoraDTO{
		ID:   t.ID,
		Nome: t.Nome,
		CNPJ: t.CNPJ,
	}

	if err := db.Table("motoristas").Where("transportadora_id = ?", t.ID).Count(&dto.TotalMotoristas).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&viagem.Viagem{}).Where("transportadora_id = ?", t.ID).Count(&dto.TotalViagens).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&viagem.Viagem{}).
		Where("transportadora_id = ? AND status = ?", t.ID, viagem.StatusEmAndamento).
		Count(&dto.ViagensEmAndamento).Error; err != nil {
		return nil, err
	}

	var err error
	if dto.TotalReceitas, err = r.somaLancamentos(db, "receitas", t.ID); err != nil {
		return nil, err
	}
	if dto.TotalDespesas, err = r.somaLancamentos(db, "despesas", t.ID); err != nil {
		return nil, err
	}
	if dto.SaldoAcertos, err = r.somaLancamentos(db, "acertos", t.ID); err != nil {
		return nil, err
	}
	if err := db.Table("acertos").
		Joins("JOIN viagens ON viagens.id = acertos.viagem_id").
		Where("viagens.transportadora_id = ? AND acertos.pago = ?", t.ID, false).
		Count(&dto.AcertosPendentes).Error; err != nil {
		return nil, err
	}

	return dto, nil
}
