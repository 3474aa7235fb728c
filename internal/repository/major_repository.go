package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/timtruong/timtruong-backend/internal/model"
)

type MajorRepository interface {
	ListByUniversity(ctx context.Context, universityID int) ([]model.Major, error)
	GetByID(ctx context.Context, id int) (*model.Major, error)
	// FindByName looks a major up by its name within one university, ignoring case.
	FindByName(ctx context.Context, universityID int, name string) (*model.Major, error)
	Create(ctx context.Context, major *model.Major) error
	Update(ctx context.Context, major *model.Major) error
	Delete(ctx context.Context, id int) error
}

type majorRepository struct {
	db *pgxpool.Pool
}

func NewMajorRepository(db *pgxpool.Pool) MajorRepository {
	return &majorRepository{db: db}
}

const majorColumns = `id, university_id, name, code, field_of_study, tuition_fee, enrollment_quota, created_at, updated_at`

func scanMajor(row pgx.Row) (*model.Major, error) {
	m := &model.Major{}
	err := row.Scan(&m.ID, &m.UniversityID, &m.Name, &m.Code, &m.FieldOfStudy, &m.TuitionFee,
		&m.EnrollmentQuota, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *majorRepository) ListByUniversity(ctx context.Context, universityID int) ([]model.Major, error) {
	rows, err := r.db.Query(ctx, `SELECT `+majorColumns+` FROM majors WHERE university_id = $1 ORDER BY name ASC, id ASC`, universityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	majors := []model.Major{}
	for rows.Next() {
		m, err := scanMajor(rows)
		if err != nil {
			return nil, err
		}
		majors = append(majors, *m)
	}
	return majors, rows.Err()
}

func (r *majorRepository) GetByID(ctx context.Context, id int) (*model.Major, error) {
	m, err := scanMajor(r.db.QueryRow(ctx, `SELECT `+majorColumns+` FROM majors WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

func (r *majorRepository) FindByName(ctx context.Context, universityID int, name string) (*model.Major, error) {
	m, err := scanMajor(r.db.QueryRow(ctx,
		`SELECT `+majorColumns+` FROM majors WHERE university_id = $1 AND LOWER(name) = LOWER($2) ORDER BY id LIMIT 1`,
		universityID, name))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

func (r *majorRepository) Create(ctx context.Context, major *model.Major) error {
	query := `
		INSERT INTO majors (university_id, name, code, field_of_study, tuition_fee, enrollment_quota)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, major.UniversityID, major.Name, major.Code, major.FieldOfStudy,
		major.TuitionFee, major.EnrollmentQuota).Scan(&major.ID, &major.CreatedAt, &major.UpdatedAt)
}

func (r *majorRepository) Update(ctx context.Context, major *model.Major) error {
	query := `
		UPDATE majors
		SET name = $1, code = $2, field_of_study = $3, tuition_fee = $4, enrollment_quota = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING university_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, major.Name, major.Code, major.FieldOfStudy, major.TuitionFee,
		major.EnrollmentQuota, major.ID).Scan(&major.UniversityID, &major.CreatedAt, &major.UpdatedAt)
	return notFound(err)
}

// Delete removes the major; its admission requirements go with it (ON DELETE CASCADE).
func (r *majorRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM majors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
