package repository

import (
	"context"

	"github.com/BlackWidow29/Entrevista-Docket/internal/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// RegistrySortColumns maps sortable Registry JSON fields to columns
var RegistrySortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"postalCode":    "postal_code",
	"streetAddress": "street_address",
	"neighborhood":  "neighborhood",
	"city":          "city",
	"state":         "state",
}

// RegistryStore is the persistence contract the HTTP layer depends on
type RegistryStore interface {
	Create(ctx context.Context, registry *model.Registry) error
	Update(ctx context.Context, registry *model.Registry) error
	FindAll(ctx context.Context, sorts ...Sort) ([]model.Registry, error)
	FindByID(ctx context.Context, id int64) (*model.Registry, error)
	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// RegistryRepository persists registries in the registry table
type RegistryRepository struct {
	*Repository[model.Registry]
}

var _ RegistryStore = (*RegistryRepository)(nil)

// NewRegistryRepository creates a gorm-backed registry repository
func NewRegistryRepository(db *gorm.DB, opts ...Option) *RegistryRepository {
	return &RegistryRepository{
		Repository: newRepository[model.Registry](db, "registry",
			[]string{"name", "postal_code", "street_address", "neighborhood", "city", "state"}, opts...),
	}
}

// DeleteByID detaches the registry's certificates and removes the registry
// in one transaction. A missing row is not an error.
func (r *RegistryRepository) DeleteByID(ctx context.Context, id int64) (err error) {
	ctx, end := r.begin(ctx, "delete")
	defer func() { end(err) }()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Certificate{}).
			Where("registry_id = ?", id).
			Update("registry_id", nil).Error; err != nil {
			return errors.Wrap(err, "registry: detach certificates")
		}
		if err := tx.Delete(&model.Registry{}, id).Error; err != nil {
			return errors.Wrap(err, "registry: delete")
		}
		return nil
	})
	return err
}
