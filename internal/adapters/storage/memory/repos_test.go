package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softpet/internal/domain/pets"
	"softpet/internal/domain/users"
)

func TestUserRepo_UniqueEmailUnderConcurrency(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		taken   int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, users.User{Email: "Ana@Example.com", Name: "Ana"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, users.ErrEmailTaken):
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 19, taken)

	u, err := repo.GetByEmail(ctx, " ana@example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, byID)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestPetRepo_CRUD(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	p, err := repo.Create(ctx, pets.Pet{Name: "Rex", OwnerUserID: 7, CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	p.Name = "Rex II"
	p.OwnerUserID = 8
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex II", got.Name)
	assert.Equal(t, int64(7), got.OwnerUserID, "owner must be immutable")

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), pets.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, p), pets.ErrNotFound)
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestPetRepo_ListFiltersAndPaginates(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		owner := "Carla"
		if i%2 == 0 {
			owner = "Bruno"
		}
		_, err := repo.Create(ctx, pets.Pet{
			Name:      fmt.Sprintf("Pet%d", i),
			OwnerName: owner,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, pets.ListFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Pet4", page.Items[0].Name)
	assert.Equal(t, "Pet3", page.Items[1].Name)

	last, _ := repo.List(ctx, pets.ListFilter{Page: 3, PageSize: 2})
	require.Len(t, last.Items, 1)
	assert.Equal(t, "Pet0", last.Items[0].Name)

	beyond, _ := repo.List(ctx, pets.ListFilter{Page: 9, PageSize: 2})
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 5, beyond.Total)

	bruno, _ := repo.List(ctx, pets.ListFilter{Query: "bRuNo", Page: 1, PageSize: 10})
	assert.Equal(t, 3, bruno.Total)

	byName, _ := repo.List(ctx, pets.ListFilter{Query: "pet3", Page: 1, PageSize: 10})
	require.Equal(t, 1, byName.Total)
	assert.Equal(t, "Pet3", byName.Items[0].Name)
}

func TestPetRepo_ListHugePage(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	_, err := repo.Create(ctx, pets.Pet{Name: "Rex", CreatedAt: time.Now()})
	require.NoError(t, err)

	page, err := repo.List(ctx, pets.ListFilter{Page: 576460752303423489, PageSize: 16})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Total)
}
