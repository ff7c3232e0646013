package store

import (
	"context"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormBackend[T any] struct {
	db       *gorm.DB
	name     string
	notifier Notifier
}

func (g *gormBackend[T]) scoped(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx).Table(g.name)
}

func (g *gormBackend[T]) find(ctx context.Context, q Query) ([]T, error) {
	tx := g.scoped(ctx)
	for _, f := range q.Filters {
		switch f.Op {
		case OpIn:
			values, _ := f.Value.([]interface{})
			if len(values) == 0 {
				return []T{}, nil
			}
			tx = tx.Where(clause.IN{Column: clause.Column{Name: f.Field}, Values: values})
		default:
			tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Field}, Value: f.Value})
		}
	}
	if q.OrderBy != "" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy}, Desc: q.Desc})
	} else {
		tx = tx.Order("created_at").Order("id")
	}

	var recs []T
	if err := tx.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (g *gormBackend[T]) get(ctx context.Context, id string) (*T, error) {
	var rec T
	res := g.scoped(ctx).Where("id = ?", id).Limit(1).Find(&rec)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &rec, nil
}

func (g *gormBackend[T]) create(ctx context.Context, rec *T) error {
	if err := g.scoped(ctx).Create(rec).Error; err != nil {
		return err
	}
	g.announce(ctx)
	return nil
}

func (g *gormBackend[T]) update(ctx context.Context, id string, fields Fields) error {
	res := g.scoped(ctx).Where("id = ?", id).Updates(map[string]interface{}(fields))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	g.announce(ctx)
	return nil
}

func (g *gormBackend[T]) remove(ctx context.Context, id string) error {
	res := g.scoped(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		g.announce(ctx)
	}
	return nil
}

func (g *gormBackend[T]) watch(ctx context.Context, q Query) (<-chan struct{}, func()) {
	return g.notifier.Listen(g.name)
}

// announce is best effort: the write already happened, so a failed
// notification only delays subscribers until the next change.
func (g *gormBackend[T]) announce(ctx context.Context) {
	if err := g.notifier.Notify(ctx, g.name); err != nil {
		log.Printf("store: change notification for %s failed: %v", g.name, err)
	}
}
