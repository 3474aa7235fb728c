package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/config"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/repository"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrMissingSubjectCombination is returned under the strict legacy policy when
// a THPTQG requirement without a subject combination is read.
var ErrMissingSubjectCombination = errors.New("THPTQG admission requirement has no subject combination")

// noCombination is shown for thresholds that are not scoped to a combination.
const noCombination = "N/A"

// RecommendationService matches a student's score against historical
// admission thresholds. It holds no mutable state and is safe for concurrent use.
type RecommendationService struct {
	store  repository.AdmissionStore
	policy config.LegacyCombinationPolicy
	log    zerolog.Logger
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(store repository.AdmissionStore, policy config.LegacyCombinationPolicy, log zerolog.Logger) *RecommendationService {
	return &RecommendationService{
		store:  store,
		policy: policy,
		log:    log.With().Str("component", "recommendation_service").Logger(),
	}
}

// Recommend returns every university with at least one major whose threshold
// the query's score meets, universities by name and majors by score descending.
// The query must already have passed validator.ValidateRecommendation.
func (s *RecommendationService) Recommend(ctx context.Context, q model.RecommendationQuery) (*model.RecommendationResponse, error) {
	s.log.Debug().Str("exam_type", string(q.ExamType)).Float64("score", q.Score).Msg("Getting recommendations")

	records, err := s.store.ListByExamType(ctx, q.ExamType)
	if err != nil {
		s.log.Error().Err(err).Str("exam_type", string(q.ExamType)).Float64("score", q.Score).Msg("Failed to read admission requirements")
		return nil, fmt.Errorf("list admission requirements: %w", err)
	}

	matched, legacy, err := s.filter(records, q)
	if err != nil {
		s.log.Error().Err(err).Str("exam_type", string(q.ExamType)).Float64("score", q.Score).Msg("Admission data violates combination policy")
		return nil, err
	}
	if legacy > 0 && s.policy != config.LegacyStrict {
		s.log.Warn().Int("count", legacy).Str("policy", string(s.policy)).Msg("THPTQG requirements without subject combination")
	}

	resp := &model.RecommendationResponse{Recommendations: group(matched)}

	s.log.Info().
		Str("exam_type", string(q.ExamType)).
		Int("universities", len(resp.Recommendations)).
		Int("majors", len(matched)).
		Msg("Recommendations computed")
	return resp, nil
}

// filter keeps the records of the requested exam type whose threshold is at
// or below the score and, for THPTQG, whose combination equals the requested one.
func (s *RecommendationService) filter(records []model.AdmissionRecord, q model.RecommendationQuery) ([]model.AdmissionRecord, int, error) {
	needsCombination := q.ExamType.RequiresSubjectCombination()
	legacy := 0
	var matched []model.AdmissionRecord

	for _, rec := range records {
		req := rec.Requirement
		if req.ExamType.Canonical() != q.ExamType.Canonical() {
			continue
		}

		if needsCombination {
			if req.SubjectCombination == nil {
				legacy++
				switch s.policy {
				case config.LegacyStrict:
					return nil, legacy, fmt.Errorf("requirement %d: %w", req.ID, ErrMissingSubjectCombination)
				case config.LegacyMatchAny:
				default:
					continue
				}
			} else if q.SubjectCombination == nil || *req.SubjectCombination != *q.SubjectCombination {
				continue
			}
		}

		if req.Score > q.Score {
			continue
		}
		matched = append(matched, rec)
	}
	return matched, legacy, nil
}

// group builds the nested response. Every ordering key ends in an id so the
// output does not depend on the order the store returned rows in.
func group(records []model.AdmissionRecord) []model.UniversityRecommendation {
	type bucket struct {
		university model.University
		records    []model.AdmissionRecord
	}
	buckets := make(map[int]*bucket)
	for _, rec := range records {
		b, ok := buckets[rec.University.ID]
		if !ok {
			b = &bucket{university: rec.University}
			buckets[rec.University.ID] = b
		}
		b.records = append(b.records, rec)
	}

	unis := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		unis = append(unis, b)
	}

	// Collators keep per-instance buffers, so each call gets its own.
	col := collate.New(language.Vietnamese)
	sort.Slice(unis, func(i, j int) bool {
		a, b := unis[i].university, unis[j].university
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	out := make([]model.UniversityRecommendation, 0, len(unis))
	for _, b := range unis {
		sort.Slice(b.records, func(i, j int) bool {
			x, y := b.records[i], b.records[j]
			if x.Requirement.Score != y.Requirement.Score {
				return x.Requirement.Score > y.Requirement.Score
			}
			if x.Major.ID != y.Major.ID {
				return x.Major.ID < y.Major.ID
			}
			if x.Requirement.Year != y.Requirement.Year {
				return x.Requirement.Year > y.Requirement.Year
			}
			return x.Requirement.ID < y.Requirement.ID
		})

		majors := make([]model.MajorRecommendation, 0, len(b.records))
		for _, rec := range b.records {
			majors = append(majors, toMajorRecommendation(rec))
		}

		u := b.university
		out = append(out, model.UniversityRecommendation{
			UniversityID:       u.ID,
			UniversityName:     u.Name,
			UniversityCode:     u.Code,
			UniversityType:     string(u.Type),
			UniversityImageURL: u.ImageURL,
			Majors:             majors,
		})
	}
	return out
}

func toMajorRecommendation(rec model.AdmissionRecord) model.MajorRecommendation {
	combination := noCombination
	if rec.Requirement.SubjectCombination != nil {
		combination = string(*rec.Requirement.SubjectCombination)
	}
	var field string
	if rec.Major.FieldOfStudy != nil {
		field = *rec.Major.FieldOfStudy
	}
	return model.MajorRecommendation{
		MajorID:            rec.Major.ID,
		MajorName:          rec.Major.Name,
		MajorCode:          rec.Major.Code,
		FieldOfStudy:       field,
		TuitionFee:         rec.Major.TuitionFee,
		EnrollmentQuota:    rec.Major.EnrollmentQuota,
		AdmissionScore:     rec.Requirement.Score,
		SubjectCombination: combination,
		Year:               rec.Requirement.Year,
	}
}
