package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/repository"
)

type MajorService interface {
	ListByUniversity(ctx context.Context, universityID int) ([]model.Major, error)
	Get(ctx context.Context, id int) (*model.Major, error)
	Create(ctx context.Context, universityID int, req model.MajorRequest) (*model.Major, error)
	Update(ctx context.Context, id int, req model.MajorRequest) (*model.Major, error)
	Delete(ctx context.Context, id int) error
}

type majorService struct {
	majorRepo      repository.MajorRepository
	universityRepo repository.UniversityRepository
	log            zerolog.Logger
}

func NewMajorService(majorRepo repository.MajorRepository, universityRepo repository.UniversityRepository, log zerolog.Logger) MajorService {
	return &majorService{
		majorRepo:      majorRepo,
		universityRepo: universityRepo,
		log:            log.With().Str("component", "major_service").Logger(),
	}
}

func (s *majorService) ListByUniversity(ctx context.Context, universityID int) ([]model.Major, error) {
	if _, err := s.universityRepo.GetByID(ctx, universityID); err != nil {
		return nil, mapNotFound(err, ErrUniversityNotFound)
	}
	return s.majorRepo.ListByUniversity(ctx, universityID)
}

func (s *majorService) Get(ctx context.Context, id int) (*model.Major, error) {
	m, err := s.majorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrMajorNotFound)
	}
	return m, nil
}

func (s *majorService) Create(ctx context.Context, universityID int, req model.MajorRequest) (*model.Major, error) {
	if _, err := s.universityRepo.GetByID(ctx, universityID); err != nil {
		return nil, mapNotFound(err, ErrUniversityNotFound)
	}

	major := applyMajorRequest(&model.Major{UniversityID: universityID}, req)
	if err := s.majorRepo.Create(ctx, major); err != nil {
		return nil, err
	}
	s.log.Info().Int("major_id", major.ID).Int("university_id", universityID).Msg("Major created")
	return major, nil
}

func (s *majorService) Update(ctx context.Context, id int, req model.MajorRequest) (*model.Major, error) {
	major, err := s.majorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrMajorNotFound)
	}
	applyMajorRequest(major, req)
	if err := s.majorRepo.Update(ctx, major); err != nil {
		return nil, mapNotFound(err, ErrMajorNotFound)
	}
	return major, nil
}

// Delete removes the major together with its admission requirements.
func (s *majorService) Delete(ctx context.Context, id int) error {
	if err := s.majorRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrMajorNotFound)
	}
	s.log.Info().Int("major_id", id).Msg("Major deleted")
	return nil
}

func applyMajorRequest(m *model.Major, req model.MajorRequest) *model.Major {
	m.Name = strings.TrimSpace(req.Name)
	m.Code = trimOptional(req.Code)
	m.FieldOfStudy = trimOptional(req.FieldOfStudy)
	m.TuitionFee = req.TuitionFee
	m.EnrollmentQuota = req.EnrollmentQuota
	return m
}
