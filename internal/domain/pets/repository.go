package pets

import (
	"context"
	"math"
)

// ListFilter: Query vacío => sin filtro. Page es 1-based.
type ListFilter struct {
	Query    string
	Page     int
	PageSize int
}

// Offset satura en math.MaxInt en vez de desbordar.
func (f ListFilter) Offset() int {
	if f.Page < 1 || f.PageSize <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.PageSize {
		return math.MaxInt
	}
	return (f.Page - 1) * f.PageSize
}

type ListPage struct {
	Items []Pet
	Total int
}

// Repository: cada operación es atómica sobre un solo registro.
// Update/Delete devuelven ErrNotFound si el id no existe.
// List ordena por CreatedAt desc y matchea Query (case-insensitive)
// contra Name u OwnerName.
type Repository interface {
	Create(ctx context.Context, p Pet) (Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) (ListPage, error)
}
