package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/timtruong/timtruong-backend/internal/model"
)

type UniversityRepository interface {
	List(ctx context.Context, filter model.UniversityFilter) ([]model.University, error)
	ListSimple(ctx context.Context) ([]model.UniversitySimple, error)
	GetByID(ctx context.Context, id int) (*model.University, error)
	GetByCode(ctx context.Context, code string) (*model.University, error)
	// NameTaken reports whether another university (id != excludeID) already uses name, ignoring case.
	NameTaken(ctx context.Context, name string, excludeID int) (bool, error)
	Create(ctx context.Context, u *model.University) error
	Update(ctx context.Context, u *model.University) error
	Delete(ctx context.Context, id int) error
}

type universityRepository struct {
	pool *pgxpool.Pool
}

func NewUniversityRepository(pool *pgxpool.Pool) UniversityRepository {
	return &universityRepository{pool: pool}
}

const universityColumns = `u.id, u.name, u.short_name, u.english_name, u.code, u.type, u.image_url, u.created_at, u.updated_at`

func scanUniversity(row pgx.Row) (*model.University, error) {
	u := &model.University{}
	err := row.Scan(&u.ID, &u.Name, &u.ShortName, &u.EnglishName, &u.Code, &u.Type, &u.ImageURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *universityRepository) List(ctx context.Context, filter model.UniversityFilter) ([]model.University, error) {
	query := `SELECT ` + universityColumns + ` FROM universities u`
	var conds []string
	var args []interface{}
	argIdx := 1

	if s := strings.TrimSpace(filter.Search); s != "" {
		conds = append(conds, `(u.name ILIKE $`+strconv.Itoa(argIdx)+` OR u.code ILIKE $`+strconv.Itoa(argIdx)+`)`)
		args = append(args, "%"+s+"%")
		argIdx++
	}
	if filter.Type != "" {
		conds = append(conds, `u.type = $`+strconv.Itoa(argIdx))
		args = append(args, string(filter.Type))
		argIdx++
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		conds = append(conds, `EXISTS (SELECT 1 FROM campuses c WHERE c.university_id = u.id AND c.city ILIKE $`+strconv.Itoa(argIdx)+`)`)
		args = append(args, "%"+city+"%")
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY u.name ASC, u.id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	universities := []model.University{}
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		universities = append(universities, *u)
	}
	return universities, rows.Err()
}

func (r *universityRepository) ListSimple(ctx context.Context) ([]model.UniversitySimple, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, code FROM universities ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.UniversitySimple{}
	for rows.Next() {
		var u model.UniversitySimple
		if err := rows.Scan(&u.ID, &u.Name, &u.Code); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *universityRepository) GetByID(ctx context.Context, id int) (*model.University, error) {
	u, err := scanUniversity(r.pool.QueryRow(ctx, `SELECT `+universityColumns+` FROM universities u WHERE u.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *universityRepository) GetByCode(ctx context.Context, code string) (*model.University, error) {
	u, err := scanUniversity(r.pool.QueryRow(ctx, `SELECT `+universityColumns+` FROM universities u WHERE u.code = $1`, code))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *universityRepository) NameTaken(ctx context.Context, name string, excludeID int) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM universities WHERE LOWER(name) = LOWER($1) AND id <> $2)`,
		name, excludeID,
	).Scan(&taken)
	return taken, err
}

func (r *universityRepository) Create(ctx context.Context, u *model.University) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO universities (name, short_name, english_name, code, type, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.ShortName, u.EnglishName, u.Code, string(u.Type), u.ImageURL,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *universityRepository) Update(ctx context.Context, u *model.University) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE universities
		 SET name = $1, short_name = $2, english_name = $3, code = $4, type = $5, image_url = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7
		 RETURNING created_at, updated_at`,
		u.Name, u.ShortName, u.EnglishName, u.Code, string(u.Type), u.ImageURL, u.ID,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	return notFound(err)
}

func (r *universityRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM universities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
