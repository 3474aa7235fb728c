package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/repository"
)

type CampusService interface {
	List(ctx context.Context, filter model.CampusFilter) ([]model.Campus, error)
	Get(ctx context.Context, id int) (*model.Campus, error)
	Create(ctx context.Context, req model.CreateCampusRequest) (*model.Campus, error)
	Update(ctx context.Context, id int, req model.UpdateCampusRequest) (*model.Campus, error)
	Delete(ctx context.Context, id int) error
}

type campusService struct {
	campusRepo     repository.CampusRepository
	universityRepo repository.UniversityRepository
	log            zerolog.Logger
}

func NewCampusService(campusRepo repository.CampusRepository, universityRepo repository.UniversityRepository, log zerolog.Logger) CampusService {
	return &campusService{
		campusRepo:     campusRepo,
		universityRepo: universityRepo,
		log:            log.With().Str("component", "campus_service").Logger(),
	}
}

func (s *campusService) List(ctx context.Context, filter model.CampusFilter) ([]model.Campus, error) {
	return s.campusRepo.List(ctx, filter)
}

func (s *campusService) Get(ctx context.Context, id int) (*model.Campus, error) {
	c, err := s.campusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	return c, nil
}

func (s *campusService) Create(ctx context.Context, req model.CreateCampusRequest) (*model.Campus, error) {
	uni, err := s.universityByCode(ctx, req.UniversityCode)
	if err != nil {
		return nil, err
	}

	c := &model.Campus{
		UniversityID:   uni.ID,
		UniversityName: uni.Name,
		UniversityCode: uni.Code,
		Name:           strings.TrimSpace(req.Name),
		Address:        trimOptional(req.Address),
		City:           strings.TrimSpace(req.City),
		District:       trimOptional(req.District),
		OldAddress:     trimOptional(req.OldAddress),
		OldCity:        strings.TrimSpace(req.OldCity),
	}
	if err := s.checkName(ctx, c, 0); err != nil {
		return nil, err
	}
	if err := s.campusRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info().Int("campus_id", c.ID).Int("university_id", uni.ID).Msg("Campus created")
	return c, nil
}

func (s *campusService) Update(ctx context.Context, id int, req model.UpdateCampusRequest) (*model.Campus, error) {
	c, err := s.campusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}

	c.Name = strings.TrimSpace(req.Name)
	c.Address = trimOptional(req.Address)
	c.City = strings.TrimSpace(req.City)
	c.District = trimOptional(req.District)
	c.OldAddress = trimOptional(req.OldAddress)
	c.OldCity = strings.TrimSpace(req.OldCity)

	if code := trimOptional(req.UniversityCode); code != nil {
		uni, err := s.universityByCode(ctx, *code)
		if err != nil {
			return nil, err
		}
		if uni.ID != c.UniversityID {
			s.log.Info().Int("campus_id", id).Int("from", c.UniversityID).Int("to", uni.ID).Msg("Campus changes university")
		}
		c.UniversityID, c.UniversityName, c.UniversityCode = uni.ID, uni.Name, uni.Code
	}

	if err := s.checkName(ctx, c, id); err != nil {
		return nil, err
	}
	if err := s.campusRepo.Update(ctx, c); err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	return c, nil
}

func (s *campusService) Delete(ctx context.Context, id int) error {
	if err := s.campusRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrNotFound)
	}
	return nil
}

func (s *campusService) universityByCode(ctx context.Context, code string) (*model.University, error) {
	uni, err := s.universityRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, mapNotFound(err, ErrUniversityNotFound)
	}
	return uni, nil
}

func (s *campusService) checkName(ctx context.Context, c *model.Campus, excludeID int) error {
	taken, err := s.campusRepo.NameTaken(ctx, c.UniversityID, c.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("name", "Campus '%s' already exists for university '%s'", c.Name, c.UniversityCode)
	}
	return nil
}
