// internal/models/applicant.go
package models

// BMICategory is the applicant's body-mass-index bucket.
type BMICategory string

const (
	BMIOverweight  BMICategory = "Overweight"
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIObesity     BMICategory = "Obesity"
)

type SmokingStatus string

const (
	SmokingRegular    SmokingStatus = "Regular"
	SmokingNone       SmokingStatus = "No Smoking"
	SmokingOccasional SmokingStatus = "Occasional"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type MaritalStatus string

const (
	MaritalUnmarried MaritalStatus = "Unmarried"
	MaritalMarried   MaritalStatus = "Married"
)

// MedicalHistory is one of the fixed condition conjunctions offered by the form.
type MedicalHistory string

const (
	HistoryHighBloodPressure             MedicalHistory = "High blood pressure"
	HistoryNoDisease                     MedicalHistory = "No Disease"
	HistoryDiabetesHighBloodPressure     MedicalHistory = "Diabetes & High blood pressure"
	HistoryDiabetesHeartDisease          MedicalHistory = "Diabetes & Heart disease"
	HistoryDiabetes                      MedicalHistory = "Diabetes"
	HistoryDiabetesThyroid               MedicalHistory = "Diabetes & Thyroid"
	HistoryHeartDisease                  MedicalHistory = "Heart disease"
	HistoryThyroid                       MedicalHistory = "Thyroid"
	HistoryHighBloodPressureHeartDisease MedicalHistory = "High blood pressure & Heart disease"
)

type InsurancePlan string

const (
	PlanSilver InsurancePlan = "Silver"
	PlanBronze InsurancePlan = "Bronze"
	PlanGold   InsurancePlan = "Gold"
)

type EmploymentStatus string

const (
	EmploymentSelfEmployed EmploymentStatus = "Self-Employed"
	EmploymentFreelancer   EmploymentStatus = "Freelancer"
	EmploymentSalaried     EmploymentStatus = "Salaried"
)

type Region string

const (
	RegionNortheast Region = "Northeast"
	RegionNorthwest Region = "Northwest"
	RegionSoutheast Region = "Southeast"
	RegionSouthwest Region = "Southwest"
)

// Allowed domains, in form order.
var (
	BMICategories      = []BMICategory{BMIOverweight, BMIUnderweight, BMINormal, BMIObesity}
	SmokingStatuses    = []SmokingStatus{SmokingRegular, SmokingNone, SmokingOccasional}
	Genders            = []Gender{GenderMale, GenderFemale}
	MaritalStatuses    = []MaritalStatus{MaritalUnmarried, MaritalMarried}
	InsurancePlans     = []InsurancePlan{PlanSilver, PlanBronze, PlanGold}
	EmploymentStatuses = []EmploymentStatus{EmploymentSelfEmployed, EmploymentFreelancer, EmploymentSalaried}
	Regions            = []Region{RegionNortheast, RegionNorthwest, RegionSoutheast, RegionSouthwest}
)

var MedicalHistories = []MedicalHistory{
	HistoryHighBloodPressure,
	HistoryNoDisease,
	HistoryDiabetesHighBloodPressure,
	HistoryDiabetesHeartDisease,
	HistoryDiabetes,
	HistoryDiabetesThyroid,
	HistoryHeartDisease,
	HistoryThyroid,
	HistoryHighBloodPressureHeartDisease,
}

// Numeric bounds of the applicant form.
const (
	MinAge           = 18
	MaxAge           = 100
	MinDependents    = 0
	MaxDependents    = 5
	MinIncomeLakhs   = 0.0
	MaxIncomeLakhs   = 100.0
	MinGeneticalRisk = 0
	MaxGeneticalRisk = 5
)

// ApplicantProfile is the canonical record of one assessment request.
// It is built once per request by the profile normalizer and never mutated.
type ApplicantProfile struct {
	Age              int              `json:"age"`
	Dependents       int              `json:"dependents"`
	IncomeLakhs      float64          `json:"income"`
	GeneticalRisk    int              `json:"genetical_risk"`
	BMICategory      BMICategory      `json:"bmi_category"`
	SmokingStatus    SmokingStatus    `json:"smoking_status"`
	Gender           Gender           `json:"gender"`
	MaritalStatus    MaritalStatus    `json:"marital_status"`
	MedicalHistory   MedicalHistory   `json:"medical_history"`
	InsurancePlan    InsurancePlan    `json:"insurance_plan"`
	EmploymentStatus EmploymentStatus `json:"employment_status"`
	Region           Region           `json:"region"`
}

// Canonical field names.
const (
	FieldAge              = "age"
	FieldDependents       = "dependents"
	FieldIncome           = "income"
	FieldGeneticalRisk    = "genetical_risk"
	FieldBMICategory      = "bmi_category"
	FieldSmokingStatus    = "smoking_status"
	FieldGender           = "gender"
	FieldMaritalStatus    = "marital_status"
	FieldMedicalHistory   = "medical_history"
	FieldInsurancePlan    = "insurance_plan"
	FieldEmploymentStatus = "employment_status"
	FieldRegion           = "region"
)

// FormLabels maps each canonical field to the label the model was trained on.
// The labels are kept byte-for-byte, including the "Maritial" spelling.
var FormLabels = map[string]string{
	FieldAge:              "Age",
	FieldDependents:       "Number of Dependents",
	FieldIncome:           "Income in Lakhs",
	FieldGeneticalRisk:    "Genetical Risk",
	FieldInsurancePlan:    "Insurance Plan",
	FieldEmploymentStatus: "Employment Status",
	FieldGender:           "Gender",
	FieldMaritalStatus:    "Maritial Status",
	FieldBMICategory:      "BMI Category",
	FieldSmokingStatus:    "Smoking status",
	FieldRegion:           "Region",
	FieldMedicalHistory:   "Medical History",
}

// Features returns the profile as the labelled mapping the premium model expects.
func (p ApplicantProfile) Features() map[string]interface{} {
	return map[string]interface{}{
		FormLabels[FieldAge]:              p.Age,
		FormLabels[FieldDependents]:       p.Dependents,
		FormLabels[FieldIncome]:           p.IncomeLakhs,
		FormLabels[FieldGeneticalRisk]:    p.GeneticalRisk,
		FormLabels[FieldInsurancePlan]:    string(p.InsurancePlan),
		FormLabels[FieldEmploymentStatus]: string(p.EmploymentStatus),
		FormLabels[FieldGender]:           string(p.Gender),
		FormLabels[FieldMaritalStatus]:    string(p.MaritalStatus),
		FormLabels[FieldBMICategory]:      string(p.BMICategory),
		FormLabels[FieldSmokingStatus]:    string(p.SmokingStatus),
		FormLabels[FieldRegion]:           string(p.Region),
		FormLabels[FieldMedicalHistory]:   string(p.MedicalHistory),
	}
}
