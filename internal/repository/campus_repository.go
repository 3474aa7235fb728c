package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/timtruong/timtruong-backend/internal/model"
)

type CampusRepository interface {
	List(ctx context.Context, filter model.CampusFilter) ([]model.Campus, error)
	GetByID(ctx context.Context, id int) (*model.Campus, error)
	// NameTaken reports whether universityID already has a campus called name (id != excludeID).
	NameTaken(ctx context.Context, universityID int, name string, excludeID int) (bool, error)
	Create(ctx context.Context, c *model.Campus) error
	Update(ctx context.Context, c *model.Campus) error
	Delete(ctx context.Context, id int) error
}

type campusRepository struct {
	pool *pgxpool.Pool
}

func NewCampusRepository(pool *pgxpool.Pool) CampusRepository {
	return &campusRepository{pool: pool}
}

const campusSelect = `
	SELECT c.id, c.university_id, u.name, u.code, c.name, c.address, c.city, c.district,
		c.old_address, c.old_city, c.created_at, c.updated_at
	FROM campuses c
	JOIN universities u ON u.id = c.university_id`

func scanCampus(row pgx.Row) (*model.Campus, error) {
	c := &model.Campus{}
	err := row.Scan(&c.ID, &c.UniversityID, &c.UniversityName, &c.UniversityCode, &c.Name, &c.Address,
		&c.City, &c.District, &c.OldAddress, &c.OldCity, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *campusRepository) List(ctx context.Context, filter model.CampusFilter) ([]model.Campus, error) {
	query := campusSelect
	var conds []string
	var args []interface{}
	argIdx := 1

	if s := strings.TrimSpace(filter.Search); s != "" {
		p := `$` + strconv.Itoa(argIdx)
		conds = append(conds, `(c.name ILIKE `+p+` OR c.address ILIKE `+p+` OR u.name ILIKE `+p+`)`)
		args = append(args, "%"+s+"%")
		argIdx++
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		conds = append(conds, `c.city ILIKE $`+strconv.Itoa(argIdx))
		args = append(args, "%"+city+"%")
		argIdx++
	}
	if code := strings.TrimSpace(filter.University); code != "" {
		conds = append(conds, `u.code = $`+strconv.Itoa(argIdx))
		args = append(args, strings.ToUpper(code))
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY u.name ASC, c.name ASC, c.id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campuses := []model.Campus{}
	for rows.Next() {
		c, err := scanCampus(rows)
		if err != nil {
			return nil, err
		}
		campuses = append(campuses, *c)
	}
	return campuses, rows.Err()
}

func (r *campusRepository) GetByID(ctx context.Context, id int) (*model.Campus, error) {
	c, err := scanCampus(r.pool.QueryRow(ctx, campusSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *campusRepository) NameTaken(ctx context.Context, universityID int, name string, excludeID int) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM campuses WHERE university_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3)`,
		universityID, name, excludeID,
	).Scan(&taken)
	return taken, err
}

func (r *campusRepository) Create(ctx context.Context, c *model.Campus) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO campuses (university_id, name, address, city, district, old_address, old_city)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		c.UniversityID, c.Name, c.Address, c.City, c.District, c.OldAddress, c.OldCity,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *campusRepository) Update(ctx context.Context, c *model.Campus) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE campuses
		 SET university_id = $1, name = $2, address = $3, city = $4, district = $5,
		     old_address = $6, old_city = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8
		 RETURNING created_at, updated_at`,
		c.UniversityID, c.Name, c.Address, c.City, c.District, c.OldAddress, c.OldCity, c.ID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return notFound(err)
}

func (r *campusRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campuses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
