package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/repository"
)

type AdmissionRequirementService interface {
	ListByMajor(ctx context.Context, majorID int) ([]model.AdmissionRequirement, error)
	Get(ctx context.Context, id int) (*model.AdmissionRequirement, error)
	Create(ctx context.Context, majorID int, req model.AdmissionRequirementRequest) (*model.AdmissionRequirement, error)
	Update(ctx context.Context, id int, req model.AdmissionRequirementRequest) (*model.AdmissionRequirement, error)
	Delete(ctx context.Context, id int) error
}

type admissionRequirementService struct {
	repo      repository.AdmissionRequirementRepository
	majorRepo repository.MajorRepository
	log       zerolog.Logger
}

func NewAdmissionRequirementService(repo repository.AdmissionRequirementRepository, majorRepo repository.MajorRepository, log zerolog.Logger) AdmissionRequirementService {
	return &admissionRequirementService{
		repo:      repo,
		majorRepo: majorRepo,
		log:       log.With().Str("component", "admission_requirement_service").Logger(),
	}
}

func (s *admissionRequirementService) ListByMajor(ctx context.Context, majorID int) ([]model.AdmissionRequirement, error) {
	if _, err := s.majorRepo.GetByID(ctx, majorID); err != nil {
		return nil, mapNotFound(err, ErrMajorNotFound)
	}
	return s.repo.ListByMajor(ctx, majorID)
}

func (s *admissionRequirementService) Get(ctx context.Context, id int) (*model.AdmissionRequirement, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	return r, nil
}

func (s *admissionRequirementService) Create(ctx context.Context, majorID int, req model.AdmissionRequirementRequest) (*model.AdmissionRequirement, error) {
	if _, err := s.majorRepo.GetByID(ctx, majorID); err != nil {
		return nil, mapNotFound(err, ErrMajorNotFound)
	}
	r, err := NewAdmissionRequirement(req)
	if err != nil {
		return nil, err
	}
	r.MajorID = majorID
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info().Int("requirement_id", r.ID).Int("major_id", majorID).Str("exam_type", string(r.ExamType)).Msg("Admission requirement created")
	return r, nil
}

func (s *admissionRequirementService) Update(ctx context.Context, id int, req model.AdmissionRequirementRequest) (*model.AdmissionRequirement, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	r, err := NewAdmissionRequirement(req)
	if err != nil {
		return nil, err
	}
	r.ID, r.MajorID = existing.ID, existing.MajorID
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	return r, nil
}

func (s *admissionRequirementService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrNotFound)
	}
	return nil
}

// Admission years accepted on write; matches the request binding.
const (
	MinAdmissionYear = 2000
	MaxAdmissionYear = 2100
)

// NewAdmissionRequirement converts a request into a requirement, enforcing
// that THPTQG rows carry a subject combination and ĐGNL rows do not, that
// the score fits the exam's scale and that the year is plausible.
func NewAdmissionRequirement(req model.AdmissionRequirementRequest) (*model.AdmissionRequirement, error) {
	examType, err := model.ParseExamType(req.ExamType)
	if err != nil {
		return nil, err
	}
	if req.Year < MinAdmissionYear || req.Year > MaxAdmissionYear {
		return nil, fmt.Errorf("year %d outside [%d, %d]: %w", req.Year, MinAdmissionYear, MaxAdmissionYear, ErrYearOutOfRange)
	}
	if req.Score <= 0 || req.Score > examType.MaxScore() {
		return nil, fmt.Errorf("score %g outside the %s scale (0, %g]: %w", req.Score, examType, examType.MaxScore(), ErrScoreOutOfRange)
	}

	r := &model.AdmissionRequirement{
		ExamType:    examType,
		Score:       req.Score,
		Year:        req.Year,
		EnumVersion: model.EnumVersion,
	}

	hasCombination := req.SubjectCombination != nil && *req.SubjectCombination != ""
	if hasCombination != examType.RequiresSubjectCombination() {
		return nil, ErrCombinationMismatch
	}
	if hasCombination {
		sc, err := model.ParseSubjectCombination(*req.SubjectCombination)
		if err != nil {
			return nil, err
		}
		r.SubjectCombination = &sc
	}
	return r, nil
}
