package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xisaabi/internal/models/db_models"
)

type IPlanRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Plan, error)
	GetByCode(ctx context.Context, code string) (*db_models.Plan, error)
	GetDefault(ctx context.Context) (*db_models.Plan, error)
	ListActive(ctx context.Context) ([]db_models.Plan, error)
	Create(ctx context.Context, plan *db_models.Plan) error
	Save(ctx context.Context, plan *db_models.Plan) error
	// ClearDefault unsets every default flag; SetDefault is implemented by the
	// plan service as ClearDefault + Save inside one unit of work so at most
	// one plan is default at a time.
	ClearDefault(ctx context.Context) error
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

func (p *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Plan, error) {
	var plan db_models.Plan
	err := p.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (p *PlanRepository) GetByCode(ctx context.Context, code string) (*db_models.Plan, error) {
	var plan db_models.Plan
	err := p.db.WithContext(ctx).First(&plan, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (p *PlanRepository) GetDefault(ctx context.Context) (*db_models.Plan, error) {
	var plan db_models.Plan
	err := p.db.WithContext(ctx).First(&plan, "is_default = TRUE AND is_active = TRUE").Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (p *PlanRepository) ListActive(ctx context.Context) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := p.db.WithContext(ctx).Where("is_active = TRUE").Order("price ASC").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (p *PlanRepository) Create(ctx context.Context, plan *db_models.Plan) error {
	return p.db.WithContext(ctx).Create(plan).Error
}

func (p *PlanRepository) Save(ctx context.Context, plan *db_models.Plan) error {
	return p.db.WithContext(ctx).Save(plan).Error
}

func (p *PlanRepository) ClearDefault(ctx context.Context) error {
	return p.db.WithContext(ctx).
		Model(&db_models.Plan{}).
		Where("is_default = TRUE").
		Update("is_default", false).Error
}
