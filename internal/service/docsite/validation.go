package docsite

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"beacon/internal/config"
	"beacon/internal/domain"
	"beacon/internal/domain/models"
	"beacon/internal/domain/services"
)

var segmentPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// validateRenderRequest enforces the addressing contract before any store
// lookup: a bad request is a ValidationError, never a NotFound.
func validateRenderRequest(req *services.RenderRequest) error {
	if !req.Collection.Valid() {
		return &domain.ValidationError{
			Message: fmt.Sprintf("unknown collection %q", req.Collection),
		}
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Slug,
			validation.Required,
			validation.Length(1, config.MaxSlugLength),
			validation.Match(segmentPattern).Error("slug must be lowercase alphanumeric with hyphens"),
		),
		validation.Field(&req.Topic,
			validation.Length(0, config.MaxSlugLength),
			validation.When(req.Topic != "",
				validation.Match(segmentPattern).Error("topic must be lowercase alphanumeric with hyphens")),
		),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}

	switch req.Collection {
	case models.CollectionCourses:
		if req.Topic == "" {
			return &domain.ValidationError{Message: "courses require a topic"}
		}
	case models.CollectionChallenges:
		if req.Topic != "" {
			return &domain.ValidationError{Message: "challenges do not have topics"}
		}
	}

	return nil
}
