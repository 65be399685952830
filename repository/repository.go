package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"villa-backend/utils"
)

// Filter is a predicate over one entity table, expressed as a gorm scope.
// A nil Filter matches every row.
type Filter func(*gorm.DB) *gorm.DB

// Where builds a Filter from a gorm condition.
func Where(query any, args ...any) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// And combines filters; nil entries are skipped.
func And(filters ...Filter) Filter {
	return func(db *gorm.DB) *gorm.DB {
		for _, f := range filters {
			if f != nil {
				db = f(db)
			}
		}
		return db
	}
}

/*
Repository gives CRUD plus filtered, paginated reads over a single entity
type T:

	• Create(ctx, *T)
	• GetOne(ctx, filter, includes...) (*T, error)   nil, nil when nothing matches
	• GetMany(ctx, filter, page, includes...) ([]T, error)
	• Update(ctx, *T)                                  replaces every column but created_at
	• Remove(ctx, *T)

Reads return detached values; gorm keeps no tracked copy, so a value read
before a replace cannot be applied twice. Constraint violations are
translated into validation errors; every other storage fault is returned
as is.
*/
type Repository[T any] struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRepository[T any](db *gorm.DB, logger *zap.Logger) *Repository[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	var zero T
	return &Repository[T]{db: db, logger: logger.With(zap.String("entity", fmt.Sprintf("%T", zero)))}
}

// fail translates err and logs it: constraint violations at debug, since
// they surface to the client as validation errors, anything else as a
// storage fault.
func (r *Repository[T]) fail(op string, err error) error {
	translated := translateError(err)
	var appErr *utils.AppError
	if errors.As(translated, &appErr) {
		r.logger.Debug("constraint violation", zap.String("op", op), zap.Error(err))
	} else {
		r.logger.Error("storage fault", zap.String("op", op), zap.Error(err))
	}
	return translated
}

func (r *Repository[T]) query(ctx context.Context, filter Filter, includes []string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	if filter != nil {
		q = filter(q)
	}
	for _, path := range splitIncludes(includes) {
		q = q.Preload(path)
	}
	return q
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return r.fail("create", err)
	}
	return nil
}

func (r *Repository[T]) GetOne(ctx context.Context, filter Filter, includes ...string) (*T, error) {
	var entity T
	err := r.query(ctx, filter, includes).Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("get", err)
	}
	return &entity, nil
}

func (r *Repository[T]) GetMany(ctx context.Context, filter Filter, page Page, includes ...string) ([]T, error) {
	entities := make([]T, 0)
	if page.Unreachable() {
		return entities, nil
	}
	q := r.query(ctx, filter, includes).
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}}).
		Scopes(page.Scope())
	if err := q.Find(&entities).Error; err != nil {
		return nil, r.fail("list", err)
	}
	return entities, nil
}

func (r *Repository[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	var n int64
	if err := r.query(ctx, filter, nil).Count(&n).Error; err != nil {
		return 0, r.fail("count", err)
	}
	return n, nil
}

// Update writes every column of entity, zero values included, so the row
// ends up exactly as given.
func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	err := r.db.WithContext(ctx).
		Model(entity).
		Select("*").
		Omit(clause.Associations, "CreatedAt").
		Updates(entity).Error
	if err != nil {
		return r.fail("update", err)
	}
	return nil
}

func (r *Repository[T]) Remove(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Delete(entity).Error; err != nil {
		return r.fail("remove", err)
	}
	return nil
}

// splitIncludes accepts both "Villa" and "Villa,Villa.Owner" forms.
func splitIncludes(includes []string) []string {
	var out []string
	for _, inc := range includes {
		for _, part := range strings.Split(inc, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
