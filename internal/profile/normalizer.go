// Package profile turns raw applicant input into the canonical
// models.ApplicantProfile.
//
// Input may be keyed by canonical field names ("bmi_category") or by the
// labels of the original applicant form ("BMI Category"). Values must already
// lie inside the declared domains; nothing is coerced or defaulted.
package profile

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/validation"
	"premium-estimator/internal/models"
)

const codeDuplicateField = "DUPLICATE_FIELD"

var labelToField = func() map[string]string {
	m := make(map[string]string, len(models.FormLabels))
	for field, label := range models.FormLabels {
		m[label] = field
	}
	return m
}()

type Normalizer struct {
	validator *validation.Validator
}

func NewNormalizer() (*Normalizer, error) {
	v, err := validation.NewValidator(profileSchema())
	if err != nil {
		return nil, fmt.Errorf("profile schema: %w", err)
	}
	return &Normalizer{validator: v}, nil
}

// Normalize validates raw and builds the profile. Any violation returns a
// PROFILE_VALIDATION_FAILED *errors.StandardError whose Metadata["errors"]
// lists every offending field.
func (n *Normalizer) Normalize(raw map[string]interface{}) (models.ApplicantProfile, error) {
	canonical, dupes := canonicalize(raw)

	result, err := n.validator.Validate(canonical)
	if err != nil {
		return models.ApplicantProfile{}, err
	}

	fieldErrs := append(dupes, result.Errors...)
	if len(fieldErrs) > 0 {
		sort.SliceStable(fieldErrs, func(i, j int) bool { return fieldErrs[i].Field < fieldErrs[j].Field })
		summary := &validation.ValidationResult{Errors: fieldErrs}
		return models.ApplicantProfile{}, errors.NewProfileValidationFailedError(
			fmt.Sprintf("invalid fields: %s", strings.Join(summary.Fields(), ", ")),
			fieldErrs,
		)
	}

	// The document already matches the schema, so this cannot lose data.
	payload, err := json.Marshal(canonical)
	if err != nil {
		return models.ApplicantProfile{}, fmt.Errorf("encode profile: %w", err)
	}
	var p models.ApplicantProfile
	if err := json.Unmarshal(payload, &p); err != nil {
		return models.ApplicantProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// canonicalize rewrites form labels to canonical names. A field supplied
// under both spellings is reported once as a duplicate.
func canonicalize(raw map[string]interface{}) (map[string]interface{}, []validation.ValidationError) {
	out := make(map[string]interface{}, len(raw))
	var dupes []validation.ValidationError

	// Canonical keys win; labels fill in afterwards.
	for k, v := range raw {
		if _, ok := models.FormLabels[k]; ok {
			out[k] = v
		}
	}
	for k, v := range raw {
		if _, ok := models.FormLabels[k]; ok {
			continue
		}
		field, isLabel := labelToField[k]
		if !isLabel {
			out[k] = v
			continue
		}
		if _, exists := out[field]; exists {
			dupes = append(dupes, validation.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("given both as %q and %q", field, k),
				Code:    codeDuplicateField,
			})
			continue
		}
		out[field] = v
	}

	return out, dupes
}
