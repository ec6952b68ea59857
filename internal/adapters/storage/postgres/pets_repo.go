package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"softpet/internal/domain/pets"
)

const petColumns = `id, owner_user_id, name, type, breed, owner_name, owner_phone, birth_date, created_at, updated_at`

// filtro compartido por count y page: $1 = patrón ILIKE, vacío => todos
const petSearch = `($1 = '' OR name ILIKE $1 OR owner_name ILIKE $1)`

type PetsRepo struct {
	db DB
}

func NewPetsRepo(db DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO pets (
			owner_user_id,
			name, type, breed,
			owner_name, owner_phone, birth_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		p.OwnerUserID,
		p.Name,
		string(p.Type),
		p.Breed,
		p.OwnerName,
		p.OwnerPhone,
		p.BirthDate,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return pets.Pet{}, oops.Code("PET_INSERT_FAILED").With("owner_user_id", p.OwnerUserID).Wrap(err)
	}
	return p, nil
}

// Update no toca owner_user_id ni created_at.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE pets
		SET
			name = $2,
			type = $3,
			breed = $4,
			owner_name = $5,
			owner_phone = $6,
			birth_date = $7,
			updated_at = $8
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Type),
		p.Breed,
		p.OwnerName,
		p.OwnerPhone,
		p.BirthDate,
		p.UpdatedAt,
	)
	if err != nil {
		return oops.Code("PET_UPDATE_FAILED").With("pet_id", p.ID).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return oops.Code("PET_DELETE_FAILED").With("pet_id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRow(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, oops.Code("PET_QUERY_FAILED").With("pet_id", id).Wrap(err)
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context, f pets.ListFilter) (pets.ListPage, error) {
	pattern := likePattern(f.Query)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM pets WHERE `+petSearch, pattern).Scan(&total); err != nil {
		return pets.ListPage{}, oops.Code("PET_COUNT_FAILED").With("query", f.Query).Wrap(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE `+petSearch+`
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, pattern, f.PageSize, f.Offset())
	if err != nil {
		return pets.ListPage{}, oops.Code("PET_LIST_FAILED").With("query", f.Query).Wrap(err)
	}
	defer rows.Close()

	out := make([]pets.Pet, 0, f.PageSize)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return pets.ListPage{}, oops.Code("PET_SCAN_FAILED").Wrap(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return pets.ListPage{}, oops.Code("PET_LIST_FAILED").Wrap(err)
	}

	return pets.ListPage{Items: out, Total: total}, nil
}

func scanPet(row pgx.Row) (pets.Pet, error) {
	var (
		p       pets.Pet
		petType string
	)
	err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&petType,
		&p.Breed,
		&p.OwnerName,
		&p.OwnerPhone,
		&p.BirthDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Type = pets.Type(petType)
	return p, err
}

// likePattern escapa comodines: "50%" busca literalmente "50%".
func likePattern(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
