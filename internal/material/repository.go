package material

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(m *Material) error
	FindByID(id uuid.UUID) (*Material, error)
	ListByCourse(courseID uuid.UUID) ([]*Material, error)
	Update(m *Material) error
	Delete(id uuid.UUID) error
}

type materialRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(m *Material) error {
	return r.db.Create(m).Error
}

func (r *materialRepository) FindByID(id uuid.UUID) (*Material, error) {
	var m Material
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *materialRepository) ListByCourse(courseID uuid.UUID) ([]*Material, error) {
	var materials []*Material
	if err := r.db.
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) Update(m *Material) error {
	return r.db.Save(m).Error
}

func (r *materialRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Material{}, "id = ?", id).Error
}
