package observation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checklist answers are stored the way field staff fill them in
const (
	Yes = "Ya"
	No  = "Tidak"
)

const (
	ResultValid   = "Valid"
	ResultInvalid = "Invalid"
)

// ObservationRecord holds the field observation of a complaint. One per complaint.
type ObservationRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ComplaintID     primitive.ObjectID `bson:"complaint_id" json:"complaint_id"`
	ObserverID      string             `bson:"observer_id,omitempty" json:"observer_id,omitempty"`
	ObserverName    string             `bson:"observer_name,omitempty" json:"observer_name,omitempty"`
	ObservationDate *time.Time         `bson:"observation_date,omitempty" json:"observation_date,omitempty"`

	ObservationResult string `bson:"observation_result,omitempty" json:"observation_result,omitempty" validate:"omitempty,oneof=Valid Invalid"`

	// Germination checklist
	IsGerminationIssue    string `bson:"is_germination_issue,omitempty" json:"is_germination_issue,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	GerminationBelow85    string `bson:"germination_below_85,omitempty" json:"germination_below_85,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	SeedNotFound          string `bson:"seed_not_found,omitempty" json:"seed_not_found,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	SeedNotGrowSoil       string `bson:"seed_not_grow_soil,omitempty" json:"seed_not_grow_soil,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	ChemicalDamage        string `bson:"chemical_damage,omitempty" json:"chemical_damage,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	InsectDamage          string `bson:"insect_damage,omitempty" json:"insect_damage,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	FungalInfection       string `bson:"fungal_infection,omitempty" json:"fungal_infection,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	SeedExcavatedByAnimal string `bson:"seed_excavated_by_animal,omitempty" json:"seed_excavated_by_animal,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	ExtraSeedTreatment    string `bson:"extra_seed_treatment,omitempty" json:"extra_seed_treatment,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	SeedPreSoaked         string `bson:"seed_pre_soaked,omitempty" json:"seed_pre_soaked,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	PlantingDepthOver7cm  string `bson:"planting_depth_over_7cm,omitempty" json:"planting_depth_over_7cm,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	HasPurchaseProof      string `bson:"has_purchase_proof,omitempty" json:"has_purchase_proof,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	HasPackaging          string `bson:"has_packaging,omitempty" json:"has_packaging,omitempty" validate:"omitempty,oneof=Ya Tidak"`

	GerminationPercentage *float64 `bson:"germination_percentage,omitempty" json:"germination_percentage,omitempty" validate:"omitempty,min=0,max=100"`

	PlantingDate      *time.Time `bson:"planting_date,omitempty" json:"planting_date,omitempty"`
	DaysAfterPlanting *int       `bson:"days_after_planting,omitempty" json:"days_after_planting,omitempty" validate:"omitempty,min=0"`
	PurchaseDate      *time.Time `bson:"purchase_date,omitempty" json:"purchase_date,omitempty"`
	LabelExpiredDate  *time.Time `bson:"label_expired_date,omitempty" json:"label_expired_date,omitempty"`

	ReplacementQty    *int   `bson:"replacement_qty,omitempty" json:"replacement_qty,omitempty" validate:"omitempty,min=1"`
	ReplacementHybrid string `bson:"replacement_hybrid,omitempty" json:"replacement_hybrid,omitempty"`

	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	UpdatedBy string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// InvestigationRecord holds the investigator's findings
type InvestigationRecord struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ComplaintID       primitive.ObjectID `bson:"complaint_id" json:"complaint_id"`
	InvestigatorID    string             `bson:"investigator_id,omitempty" json:"investigator_id,omitempty"`
	InvestigatorName  string             `bson:"investigator_name,omitempty" json:"investigator_name,omitempty"`
	InvestigationDate *time.Time         `bson:"investigation_date,omitempty" json:"investigation_date,omitempty"`

	FieldVisitConducted string `bson:"field_visit_conducted,omitempty" json:"field_visit_conducted,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	FarmerInterviewed   string `bson:"farmer_interviewed,omitempty" json:"farmer_interviewed,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	SampleCollected     string `bson:"sample_collected,omitempty" json:"sample_collected,omitempty" validate:"omitempty,oneof=Ya Tidak"`
	LotNumber           string `bson:"lot_number,omitempty" json:"lot_number,omitempty"`
	RootCause           string `bson:"root_cause,omitempty" json:"root_cause,omitempty"`
	Findings            string `bson:"findings,omitempty" json:"findings,omitempty"`
	Recommendation      string `bson:"recommendation,omitempty" json:"recommendation,omitempty"`
	Conclusion          string `bson:"conclusion,omitempty" json:"conclusion,omitempty" validate:"omitempty,oneof=Valid Invalid"`

	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	UpdatedBy string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// LabTestingRecord compares the market sample against the retained guard sample
type LabTestingRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ComplaintID primitive.ObjectID `bson:"complaint_id" json:"complaint_id"`
	TesterID    string             `bson:"tester_id,omitempty" json:"tester_id,omitempty"`
	TesterName  string             `bson:"tester_name,omitempty" json:"tester_name,omitempty"`
	TestDate    *time.Time         `bson:"test_date,omitempty" json:"test_date,omitempty"`
	LotNumber   string             `bson:"lot_number,omitempty" json:"lot_number,omitempty"`

	MarketSampleGermination *float64 `bson:"market_sample_germination,omitempty" json:"market_sample_germination,omitempty" validate:"omitempty,min=0,max=100"`
	GuardSampleGermination  *float64 `bson:"guard_sample_germination,omitempty" json:"guard_sample_germination,omitempty" validate:"omitempty,min=0,max=100"`
	MarketSamplePurity      *float64 `bson:"market_sample_purity,omitempty" json:"market_sample_purity,omitempty" validate:"omitempty,min=0,max=100"`
	GuardSamplePurity       *float64 `bson:"guard_sample_purity,omitempty" json:"guard_sample_purity,omitempty" validate:"omitempty,min=0,max=100"`
	MarketSampleMoisture    *float64 `bson:"market_sample_moisture,omitempty" json:"market_sample_moisture,omitempty" validate:"omitempty,min=0,max=100"`
	GuardSampleMoisture     *float64 `bson:"guard_sample_moisture,omitempty" json:"guard_sample_moisture,omitempty" validate:"omitempty,min=0,max=100"`

	Conclusion string `bson:"conclusion,omitempty" json:"conclusion,omitempty" validate:"omitempty,oneof=Valid Invalid"`

	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	UpdatedBy string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ObservationView is the observation record with its derived summary
type ObservationView struct {
	Record  *ObservationRecord `json:"record"`
	Summary Summary            `json:"summary"`
}
