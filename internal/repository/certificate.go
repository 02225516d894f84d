package repository

import (
	"context"

	"github.com/BlackWidow29/Entrevista-Docket/internal/model"
	"gorm.io/gorm"
)

// CertificateStore is the persistence contract for certificates
type CertificateStore interface {
	Create(ctx context.Context, certificate *model.Certificate) error
	Update(ctx context.Context, certificate *model.Certificate) error
	FindAll(ctx context.Context, sorts ...Sort) ([]model.Certificate, error)
	FindByID(ctx context.Context, id int64) (*model.Certificate, error)
	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// CertificateRepository persists certificates in the certificate table
type CertificateRepository struct {
	*Repository[model.Certificate]
}

var _ CertificateStore = (*CertificateRepository)(nil)

// NewCertificateRepository creates a gorm-backed certificate repository
func NewCertificateRepository(db *gorm.DB, opts ...Option) *CertificateRepository {
	return &CertificateRepository{
		Repository: newRepository[model.Certificate](db, "certificate",
			[]string{"name", "registry_id"}, opts...),
	}
}

// FindAll returns every certificate with its owning registry loaded
func (r *CertificateRepository) FindAll(ctx context.Context, sorts ...Sort) (certificates []model.Certificate, err error) {
	ctx, end := r.begin(ctx, "find_all")
	defer func() { end(err) }()

	return r.findAll(r.db.WithContext(ctx).Preload("Registry"), sorts)
}

// FindByID returns the certificate with its owning registry loaded
func (r *CertificateRepository) FindByID(ctx context.Context, id int64) (certificate *model.Certificate, err error) {
	ctx, end := r.begin(ctx, "find_by_id")
	defer func() { end(err) }()

	return r.findByID(r.db.WithContext(ctx).Preload("Registry"), id)
}
