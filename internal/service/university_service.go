package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/repository"
)

type UniversityService interface {
	List(ctx context.Context, filter model.UniversityFilter) ([]model.University, error)
	ListSimple(ctx context.Context) ([]model.UniversitySimple, error)
	Get(ctx context.Context, id int) (*model.University, error)
	Create(ctx context.Context, req model.UniversityRequest) (*model.University, error)
	Update(ctx context.Context, id int, req model.UniversityRequest) (*model.University, error)
	Delete(ctx context.Context, id int) error
}

type universityService struct {
	repo repository.UniversityRepository
	log  zerolog.Logger
}

func NewUniversityService(repo repository.UniversityRepository, log zerolog.Logger) UniversityService {
	return &universityService{
		repo: repo,
		log:  log.With().Str("component", "university_service").Logger(),
	}
}

func (s *universityService) List(ctx context.Context, filter model.UniversityFilter) ([]model.University, error) {
	// An unknown type filter is ignored rather than matching nothing.
	if filter.Type != "" && !filter.Type.Valid() {
		filter.Type = ""
	}
	return s.repo.List(ctx, filter)
}

func (s *universityService) ListSimple(ctx context.Context) ([]model.UniversitySimple, error) {
	return s.repo.ListSimple(ctx)
}

func (s *universityService) Get(ctx context.Context, id int) (*model.University, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrUniversityNotFound)
	}
	return u, nil
}

func (s *universityService) Create(ctx context.Context, req model.UniversityRequest) (*model.University, error) {
	u := applyUniversityRequest(&model.University{}, req)
	if err := s.checkUnique(ctx, u, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info().Int("university_id", u.ID).Str("code", u.Code).Msg("University created")
	return u, nil
}

func (s *universityService) Update(ctx context.Context, id int, req model.UniversityRequest) (*model.University, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrUniversityNotFound)
	}
	applyUniversityRequest(u, req)
	if err := s.checkUnique(ctx, u, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, mapNotFound(err, ErrUniversityNotFound)
	}
	return u, nil
}

func (s *universityService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrUniversityNotFound)
	}
	s.log.Info().Int("university_id", id).Msg("University deleted")
	return nil
}

func (s *universityService) checkUnique(ctx context.Context, u *model.University, excludeID int) error {
	existing, err := s.repo.GetByCode(ctx, u.Code)
	switch {
	case err == nil && existing.ID != excludeID:
		return conflict("code", "University with code '%s' already exists", u.Code)
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return err
	}

	taken, err := s.repo.NameTaken(ctx, u.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("name", "University with name '%s' already exists", u.Name)
	}
	return nil
}

func applyUniversityRequest(u *model.University, req model.UniversityRequest) *model.University {
	u.Name = strings.TrimSpace(req.Name)
	u.ShortName = trimOptional(req.ShortName)
	u.EnglishName = trimOptional(req.EnglishName)
	u.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	u.Type = model.UniversityType(req.Type)
	u.ImageURL = trimOptional(req.ImageURL)
	return u
}

// trimOptional trims s and maps blank strings to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
