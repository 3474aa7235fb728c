package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/timtruong/timtruong-backend/internal/model"
)

// AdmissionStore is the read side the recommendation engine depends on.
type AdmissionStore interface {
	// ListByExamType returns every requirement of the exam type joined to its
	// major and that major's university. Order is unspecified.
	ListByExamType(ctx context.Context, examType model.ExamType) ([]model.AdmissionRecord, error)
}

// AdmissionRequirementRepository is the full CRUD surface over admission_requirements.
type AdmissionRequirementRepository interface {
	AdmissionStore
	ListByMajor(ctx context.Context, majorID int) ([]model.AdmissionRequirement, error)
	GetByID(ctx context.Context, id int) (*model.AdmissionRequirement, error)
	Create(ctx context.Context, req *model.AdmissionRequirement) error
	Update(ctx context.Context, req *model.AdmissionRequirement) error
	Delete(ctx context.Context, id int) error
	// Upsert inserts or replaces the requirement identified by
	// (major, exam type, combination, year). Used by the spreadsheet import.
	Upsert(ctx context.Context, req *model.AdmissionRequirement) (inserted bool, err error)
}

type admissionRequirementRepository struct {
	pool *pgxpool.Pool
}

// NewAdmissionRequirementRepository creates the PostgreSQL-backed repository.
func NewAdmissionRequirementRepository(pool *pgxpool.Pool) AdmissionRequirementRepository {
	return &admissionRequirementRepository{pool: pool}
}

const requirementColumns = `ar.id, ar.major_id, ar.exam_type, ar.score, ar.subject_combination, ar.year, ar.enum_version, ar.created_at, ar.updated_at`

func (r *admissionRequirementRepository) ListByExamType(ctx context.Context, examType model.ExamType) ([]model.AdmissionRecord, error) {
	query := `
		SELECT ` + requirementColumns + `,
			m.id, m.university_id, m.name, m.code, m.field_of_study, m.tuition_fee, m.enrollment_quota,
			u.id, u.name, u.short_name, u.english_name, u.code, u.type, u.image_url
		FROM admission_requirements ar
		JOIN majors m ON m.id = ar.major_id
		JOIN universities u ON u.id = m.university_id
		WHERE ar.exam_type = $1`

	rows, err := r.pool.Query(ctx, query, string(examType.Canonical()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AdmissionRecord
	for rows.Next() {
		var rec model.AdmissionRecord
		var examRaw string
		var combo *string
		m, u := &rec.Major, &rec.University
		if err := rows.Scan(
			&rec.Requirement.ID, &rec.Requirement.MajorID, &examRaw, &rec.Requirement.Score, &combo,
			&rec.Requirement.Year, &rec.Requirement.EnumVersion, &rec.Requirement.CreatedAt, &rec.Requirement.UpdatedAt,
			&m.ID, &m.UniversityID, &m.Name, &m.Code, &m.FieldOfStudy, &m.TuitionFee, &m.EnrollmentQuota,
			&u.ID, &u.Name, &u.ShortName, &u.EnglishName, &u.Code, &u.Type, &u.ImageURL,
		); err != nil {
			return nil, err
		}
		if err := decodeEnums(&rec.Requirement, examRaw, combo); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *admissionRequirementRepository) ListByMajor(ctx context.Context, majorID int) ([]model.AdmissionRequirement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+requirementColumns+` FROM admission_requirements ar
		 WHERE ar.major_id = $1
		 ORDER BY ar.year DESC, ar.exam_type, ar.subject_combination NULLS FIRST, ar.id`, majorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := []model.AdmissionRequirement{}
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

func (r *admissionRequirementRepository) GetByID(ctx context.Context, id int) (*model.AdmissionRequirement, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+requirementColumns+` FROM admission_requirements ar WHERE ar.id = $1`, id)
	req, err := scanRequirement(row)
	if err != nil {
		return nil, notFound(err)
	}
	return req, nil
}

func (r *admissionRequirementRepository) Create(ctx context.Context, req *model.AdmissionRequirement) error {
	req.EnumVersion = model.EnumVersion
	return r.pool.QueryRow(ctx,
		`INSERT INTO admission_requirements (major_id, exam_type, score, subject_combination, year, enum_version)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		req.MajorID, string(req.ExamType), req.Score, comboArg(req.SubjectCombination), req.Year, req.EnumVersion,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *admissionRequirementRepository) Update(ctx context.Context, req *model.AdmissionRequirement) error {
	req.EnumVersion = model.EnumVersion
	err := r.pool.QueryRow(ctx,
		`UPDATE admission_requirements
		 SET exam_type = $1, score = $2, subject_combination = $3, year = $4, enum_version = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6
		 RETURNING created_at, updated_at`,
		string(req.ExamType), req.Score, comboArg(req.SubjectCombination), req.Year, req.EnumVersion, req.ID,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	return notFound(err)
}

func (r *admissionRequirementRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admission_requirements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *admissionRequirementRepository) Upsert(ctx context.Context, req *model.AdmissionRequirement) (bool, error) {
	req.EnumVersion = model.EnumVersion
	var inserted bool
	// xmax = 0 only for freshly inserted tuples.
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admission_requirements (major_id, exam_type, score, subject_combination, year, enum_version)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (major_id, exam_type, COALESCE(subject_combination, ''), year) DO UPDATE
		 SET score = EXCLUDED.score, enum_version = EXCLUDED.enum_version, updated_at = NOW()
		 RETURNING id, created_at, updated_at, (xmax = 0)`,
		req.MajorID, string(req.ExamType), req.Score, comboArg(req.SubjectCombination), req.Year, req.EnumVersion,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt, &inserted)
	return inserted, err
}

func scanRequirement(row pgx.Row) (*model.AdmissionRequirement, error) {
	req := &model.AdmissionRequirement{}
	var examRaw string
	var combo *string
	if err := row.Scan(&req.ID, &req.MajorID, &examRaw, &req.Score, &combo, &req.Year,
		&req.EnumVersion, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeEnums(req, examRaw, combo); err != nil {
		return nil, err
	}
	return req, nil
}

// decodeEnums maps stored codes onto the closed enums. Unknown codes are an
// error rather than being coerced to some other member.
func decodeEnums(req *model.AdmissionRequirement, examRaw string, combo *string) error {
	if req.EnumVersion > model.EnumVersion {
		return fmt.Errorf("requirement %d: enum version %d: %w", req.ID, req.EnumVersion, ErrUnknownEnumCode)
	}
	examType, err := model.ParseExamType(examRaw)
	if err != nil {
		return fmt.Errorf("requirement %d: %v: %w", req.ID, err, ErrUnknownEnumCode)
	}
	req.ExamType = examType
	req.SubjectCombination = nil
	if combo != nil && *combo != "" {
		sc, err := model.ParseSubjectCombination(*combo)
		if err != nil {
			return fmt.Errorf("requirement %d: %v: %w", req.ID, err, ErrUnknownEnumCode)
		}
		req.SubjectCombination = &sc
	}
	return nil
}

func comboArg(sc *model.SubjectCombination) *string {
	if sc == nil {
		return nil
	}
	s := string(*sc)
	return &s
}
