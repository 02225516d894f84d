package repository

import (
	"context"
	"time"

	"github.com/BlackWidow29/Entrevista-Docket/pkg/logger"
	"github.com/BlackWidow29/Entrevista-Docket/prometheus"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Option configures a repository
type Option func(*options)

type options struct {
	metrics *prometheus.Metrics
	tracer  trace.Tracer
}

// WithMetrics records the duration of every database operation
func WithMetrics(m *prometheus.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracer opens one span per database operation
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// Repository provides create/read/update/delete access to one entity type
type Repository[T any] struct {
	db      *gorm.DB
	entity  string
	mutable []string
	metrics *prometheus.Metrics
	tracer  trace.Tracer
}

// newRepository builds a Repository for T. mutable lists the columns an
// update replaces.
func newRepository[T any](db *gorm.DB, entity string, mutable []string, opts ...Option) *Repository[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = noop.NewTracerProvider().Tracer("repository")
	}

	return &Repository[T]{
		db:      db,
		entity:  entity,
		mutable: mutable,
		metrics: o.metrics,
		tracer:  o.tracer,
	}
}

// begin starts a span and a timer for operation; the returned func ends both
func (r *Repository[T]) begin(ctx context.Context, operation string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, r.entity+"."+operation,
		trace.WithAttributes(attribute.String("db.sql.table", r.entity)))

	return ctx, func(err error) {
		if err != nil && !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.FromContext(ctx).Debug("Database operation failed",
				zap.String("entity", r.entity),
				zap.String("operation", operation),
				zap.Duration("latency", time.Since(start)),
				zap.Error(err))
		}
		span.End()
		if r.metrics != nil {
			r.metrics.TrackDBOperation(r.entity, operation)(start)
		}
	}
}

// Create inserts entity; the store assigns its identifier
func (r *Repository[T]) Create(ctx context.Context, entity *T) (err error) {
	ctx, end := r.begin(ctx, "create")
	defer func() { end(err) }()

	if err = r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return errors.Wrapf(err, "%s: create", r.entity)
	}
	return nil
}

// Update replaces the mutable columns of the row matching entity's identifier
func (r *Repository[T]) Update(ctx context.Context, entity *T) (err error) {
	ctx, end := r.begin(ctx, "update")
	defer func() { end(err) }()

	result := r.db.WithContext(ctx).Model(entity).Select(r.mutable).Updates(entity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrMissingWhereClause) {
			return ErrMissingID
		}
		return errors.Wrapf(result.Error, "%s: update", r.entity)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll returns every row in the given order
func (r *Repository[T]) FindAll(ctx context.Context, sorts ...Sort) (entities []T, err error) {
	ctx, end := r.begin(ctx, "find_all")
	defer func() { end(err) }()

	return r.findAll(r.db.WithContext(ctx), sorts)
}

func (r *Repository[T]) findAll(query *gorm.DB, sorts []Sort) ([]T, error) {
	for _, s := range sorts {
		query = query.Order(s.orderBy())
	}

	entities := make([]T, 0)
	if err := query.Find(&entities).Error; err != nil {
		return nil, errors.Wrapf(err, "%s: find all", r.entity)
	}
	return entities, nil
}

// FindByID returns the row with the given identifier or ErrNotFound
func (r *Repository[T]) FindByID(ctx context.Context, id int64) (entity *T, err error) {
	ctx, end := r.begin(ctx, "find_by_id")
	defer func() { end(err) }()

	return r.findByID(r.db.WithContext(ctx), id)
}

func (r *Repository[T]) findByID(query *gorm.DB, id int64) (*T, error) {
	var entity T
	if err := query.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "%s: find by id", r.entity)
	}
	return &entity, nil
}

// DeleteByID removes the row if present. A missing row is not an error.
func (r *Repository[T]) DeleteByID(ctx context.Context, id int64) (err error) {
	ctx, end := r.begin(ctx, "delete")
	defer func() { end(err) }()

	var entity T
	if err = r.db.WithContext(ctx).Delete(&entity, id).Error; err != nil {
		return errors.Wrapf(err, "%s: delete", r.entity)
	}
	return nil
}

// Count returns the number of rows
func (r *Repository[T]) Count(ctx context.Context) (count int64, err error) {
	ctx, end := r.begin(ctx, "count")
	defer func() { end(err) }()

	var entity T
	if err = r.db.WithContext(ctx).Model(&entity).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "%s: count", r.entity)
	}
	return count, nil
}
