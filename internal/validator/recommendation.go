package validator

import (
	"fmt"

	"github.com/timtruong/timtruong-backend/internal/model"
)

// ValidateRecommendation applies the exam-specific search rules that struct
// tags cannot express and returns the request in canonical form.
// A non-nil map means the request must be rejected; it is keyed by JSON field
// and holds every error the input allows to be determined.
func ValidateRecommendation(req model.RecommendationRequest) (model.RecommendationQuery, map[string]string) {
	fields := make(map[string]string)

	examType, err := model.ParseExamType(req.ExamType)
	known := err == nil
	if !known {
		fields["examType"] = "examType must be THPTQG or ĐGNL"
	}

	switch {
	case req.Score == nil:
		fields["score"] = "Score is required"
	case *req.Score <= 0:
		fields["score"] = "Score must be greater than 0"
	case known && *req.Score > examType.MaxScore():
		fields["score"] = fmt.Sprintf("Score for %s must not exceed %g", examType, examType.MaxScore())
	}

	query := model.RecommendationQuery{ExamType: examType}
	if req.Score != nil {
		query.Score = *req.Score
	}

	hasCombination := req.SubjectCombination != nil && *req.SubjectCombination != ""
	switch {
	case known && !examType.RequiresSubjectCombination():
		// ĐGNL thresholds carry no combination, so a supplied one is dropped unchecked.
	case known && !hasCombination:
		fields["subjectCombination"] = fmt.Sprintf("SubjectCombination is required for %s exam type", examType)
	case hasCombination:
		// Without a known exam type only the code itself can be checked.
		sc, err := model.ParseSubjectCombination(*req.SubjectCombination)
		if err != nil {
			fields["subjectCombination"] = fmt.Sprintf("%q is not a known subject combination", *req.SubjectCombination)
		} else {
			query.SubjectCombination = &sc
		}
	}

	if len(fields) > 0 {
		return model.RecommendationQuery{}, fields
	}
	return query, nil
}
