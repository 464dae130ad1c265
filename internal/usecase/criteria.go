package usecase

import (
	"context"
	"strings"

	"github.com/fadilmartias/job-matcher/internal/dto"
	"go.uber.org/zap"
)

var criteriaLabels = []string{"location", "job title", "company", "job type", "salary"}

const criteriaThreshold = 0.5

// ExtractCriteria guesses structured filter fields from a free-text query by
// classifying each whitespace-separated token against the fixed label set.
// A token is assigned only when its top score exceeds the threshold; later
// tokens overwrite earlier ones. Best effort: multi-word phrases are split
// apart and classifier failures on individual tokens are skipped.
func (uc *SearchUsecase) ExtractCriteria(ctx context.Context, query string) *dto.FilterCriteria {
	criteria := &dto.FilterCriteria{}

	for _, word := range strings.Fields(query) {
		result, err := uc.classifier.Classify(ctx, word, criteriaLabels)
		if err != nil {
			uc.logger.Warn("token classification failed",
				zap.String("token", word),
				zap.Error(err))
			continue
		}

		label, score := result.Top()
		if score <= criteriaThreshold {
			continue
		}

		switch label {
		case "location":
			criteria.Location = word
		case "job title":
			criteria.JobTitle = word
		case "company":
			criteria.Company = word
		case "job type":
			criteria.JobType = word
		case "salary":
			criteria.Salary = word
		}
	}

	return criteria
}
