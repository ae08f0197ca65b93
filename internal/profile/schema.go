package profile

import (
	"premium-estimator/internal/common/validation"
	"premium-estimator/internal/models"
)

// profileSchema is derived from the model domains so the two never drift.
func profileSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			models.FieldAge: {
				Type:    "integer",
				Minimum: validation.Float(models.MinAge),
				Maximum: validation.Float(models.MaxAge),
			},
			models.FieldDependents: {
				Type:    "integer",
				Minimum: validation.Float(models.MinDependents),
				Maximum: validation.Float(models.MaxDependents),
			},
			models.FieldIncome: {
				Type:        "number",
				Description: "annual income in lakhs",
				Minimum:     validation.Float(models.MinIncomeLakhs),
				Maximum:     validation.Float(models.MaxIncomeLakhs),
			},
			models.FieldGeneticalRisk: {
				Type:    "integer",
				Minimum: validation.Float(models.MinGeneticalRisk),
				Maximum: validation.Float(models.MaxGeneticalRisk),
			},
			models.FieldBMICategory:      {Type: "string", Enum: validation.StringEnum(models.BMICategories)},
			models.FieldSmokingStatus:    {Type: "string", Enum: validation.StringEnum(models.SmokingStatuses)},
			models.FieldGender:           {Type: "string", Enum: validation.StringEnum(models.Genders)},
			models.FieldMaritalStatus:    {Type: "string", Enum: validation.StringEnum(models.MaritalStatuses)},
			models.FieldMedicalHistory:   {Type: "string", Enum: validation.StringEnum(models.MedicalHistories)},
			models.FieldInsurancePlan:    {Type: "string", Enum: validation.StringEnum(models.InsurancePlans)},
			models.FieldEmploymentStatus: {Type: "string", Enum: validation.StringEnum(models.EmploymentStatuses)},
			models.FieldRegion:           {Type: "string", Enum: validation.StringEnum(models.Regions)},
		},
		Required: []string{
			models.FieldAge,
			models.FieldDependents,
			models.FieldIncome,
			models.FieldGeneticalRisk,
			models.FieldBMICategory,
			models.FieldSmokingStatus,
			models.FieldGender,
			models.FieldMaritalStatus,
			models.FieldMedicalHistory,
			models.FieldInsurancePlan,
			models.FieldEmploymentStatus,
			models.FieldRegion,
		},
		AdditionalProperties: false,
	}
}
