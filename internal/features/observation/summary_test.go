package observation_test

import (
	"testing"
	"time"

	"seedcare/internal/features/observation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSummarizePending(t *testing.T) {
	for _, r := range []*observation.ObservationRecord{nil, {GerminationBelow85: observation.Yes}} {
		s := observation.Summarize(r)
		assert.Equal(t, observation.SummaryPending, s.Status)
		assert.Zero(t, s.TotalIssuesFound)
		assert.Empty(t, s.Issues)
		assert.Nil(t, s.ReplacementProposal)
		assert.Equal(t, "Observasi belum dilakukan", s.ShortSummary)
		assert.NotEmpty(t, s.Narrative)
	}
}

func TestSummarizeReplacementOnlyWhenValid(t *testing.T) {
	record := &observation.ObservationRecord{
		ObservationResult: observation.ResultValid,
		ReplacementQty:    intPtr(50),
		ReplacementHybrid: "XYZ-9",
	}
	s := observation.Summarize(record)
	require.NotNil(t, s.ReplacementProposal)
	assert.Equal(t, "50 unit XYZ-9", *s.ReplacementProposal)
	assert.Contains(t, s.Narrative, "Usulan penggantian: 50 unit XYZ-9")

	record.ObservationResult = observation.ResultInvalid
	s = observation.Summarize(record)
	assert.Nil(t, s.ReplacementProposal)
	assert.NotContains(t, s.Narrative, "Usulan penggantian")
}

func TestSummarizeReplacementNeedsBothFields(t *testing.T) {
	s := observation.Summarize(&observation.ObservationRecord{
		ObservationResult: observation.ResultValid,
		ReplacementQty:    intPtr(50),
	})
	assert.Nil(t, s.ReplacementProposal)

	s = observation.Summarize(&observation.ObservationRecord{
		ObservationResult: observation.ResultValid,
		ReplacementHybrid: "XYZ-9",
	})
	assert.Nil(t, s.ReplacementProposal)
}

func TestSummarizeUnknownResultIsInvalid(t *testing.T) {
	s := observation.Summarize(&observation.ObservationRecord{
		ObservationResult: "valid",
		ReplacementQty:    intPtr(10),
		ReplacementHybrid: "XYZ-9",
	})
	assert.Equal(t, observation.SummaryInvalid, s.Status)
	assert.Nil(t, s.ReplacementProposal)
}

func TestSummarizeCountsAllCriteria(t *testing.T) {
	y := observation.Yes
	s := observation.Summarize(&observation.ObservationRecord{
		ObservationResult:     observation.ResultValid,
		IsGerminationIssue:    y,
		GerminationBelow85:    y,
		SeedNotFound:          y,
		SeedNotGrowSoil:       y,
		ChemicalDamage:        y,
		InsectDamage:          y,
		FungalInfection:       y,
		SeedExcavatedByAnimal: y,
		ExtraSeedTreatment:    y,
		SeedPreSoaked:         y,
		PlantingDepthOver7cm:  y,
		HasPurchaseProof:      y,
	})
	assert.Equal(t, 10, s.TotalIssuesFound)
	assert.Len(t, s.Issues, 10)
	assert.Equal(t, observation.CategorySeedQuality, s.Category)
	assert.Equal(t, observation.SeverityHigh, s.Severity)
}

func TestSummarizeIgnoresNonYesAnswers(t *testing.T) {
	s := observation.Summarize(&observation.ObservationRecord{
		ObservationResult:  observation.ResultInvalid,
		IsGerminationIssue: "ya",
		GerminationBelow85: observation.No,
		ChemicalDamage:     "true",
	})
	assert.Zero(t, s.TotalIssuesFound)
	assert.Equal(t, observation.CategoryNoIssue, s.Category)
	assert.Equal(t, observation.SeverityLow, s.Severity)
}

func TestSummarizeCategoryDecisionTree(t *testing.T) {
	y := observation.Yes
	cases := []struct {
		name     string
		record   observation.ObservationRecord
		category string
		severity observation.Severity
	}{
		{
			name:     "germination below 85 wins over everything",
			record:   observation.ObservationRecord{IsGerminationIssue: y, GerminationBelow85: y, FungalInfection: y, SeedNotFound: y, ChemicalDamage: y},
			category: observation.CategorySeedQuality,
			severity: observation.SeverityHigh,
		},
		{
			name:     "soil",
			record:   observation.ObservationRecord{IsGerminationIssue: y, SeedNotGrowSoil: y, SeedExcavatedByAnimal: y},
			category: observation.CategoryCultivation,
			severity: observation.SeverityMedium,
		},
		{
			name:     "fungal",
			record:   observation.ObservationRecord{IsGerminationIssue: y, FungalInfection: y},
			category: observation.CategoryCultivation,
			severity: observation.SeverityMedium,
		},
		{
			name:     "planting depth",
			record:   observation.ObservationRecord{IsGerminationIssue: y, PlantingDepthOver7cm: y, ChemicalDamage: y},
			category: observation.CategoryCultivation,
			severity: observation.SeverityMedium,
		},
		{
			name:     "animals",
			record:   observation.ObservationRecord{IsGerminationIssue: y, SeedExcavatedByAnimal: y, ExtraSeedTreatment: y},
			category: observation.CategoryExternal,
			severity: observation.SeverityLow,
		},
		{
			name:     "seed not found",
			record:   observation.ObservationRecord{IsGerminationIssue: y, SeedNotFound: y},
			category: observation.CategoryExternal,
			severity: observation.SeverityLow,
		},
		{
			name:     "chemical",
			record:   observation.ObservationRecord{IsGerminationIssue: y, ChemicalDamage: y},
			category: observation.CategoryTreatment,
			severity: observation.SeverityMedium,
		},
		{
			name:     "extra treatment",
			record:   observation.ObservationRecord{IsGerminationIssue: y, ExtraSeedTreatment: y},
			category: observation.CategoryTreatment,
			severity: observation.SeverityMedium,
		},
		{
			name:     "other germination issue",
			record:   observation.ObservationRecord{IsGerminationIssue: y, InsectDamage: y, SeedPreSoaked: y},
			category: observation.CategoryGerminationOK,
			severity: observation.SeverityMedium,
		},
		{
			name:     "no germination issue",
			record:   observation.ObservationRecord{IsGerminationIssue: observation.No, GerminationBelow85: y},
			category: observation.CategoryNoIssue,
			severity: observation.SeverityLow,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.record.ObservationResult = observation.ResultValid
			s := observation.Summarize(&tc.record)
			assert.Equal(t, tc.category, s.Category)
			assert.Equal(t, tc.severity, s.Severity)
		})
	}
}

func TestSummarizeExpiry(t *testing.T) {
	record := &observation.ObservationRecord{
		ObservationResult: observation.ResultValid,
		PurchaseDate:      date(2024, 2, 1),
		LabelExpiredDate:  date(2024, 1, 31),
	}
	s := observation.Summarize(record)
	assert.True(t, s.IsExpired)
	assert.Contains(t, s.Narrative, "kedaluwarsa")

	record.LabelExpiredDate = date(2024, 2, 1)
	assert.False(t, observation.Summarize(record).IsExpired)

	record.LabelExpiredDate = nil
	assert.False(t, observation.Summarize(record).IsExpired)
}

func TestSummarizeNarrative(t *testing.T) {
	s := observation.Summarize(&observation.ObservationRecord{
		ObserverName:       "Andi",
		ObservationDate:    date(2024, 3, 15),
		ObservationResult:  observation.ResultValid,
		IsGerminationIssue: observation.Yes,
		GerminationBelow85: observation.Yes,
		HasPurchaseProof:   observation.Yes,
		PlantingDate:       date(2024, 3, 1),
		ReplacementQty:     intPtr(20),
		ReplacementHybrid:  "BISI-18",
		Notes:              "Petani menanam setelah hujan",
	})

	assert.Equal(t, "Valid - Masalah Kualitas Benih (1 masalah ditemukan)", s.ShortSummary)
	assert.Contains(t, s.Narrative, "Observasi oleh Andi pada 15 Mar 2024")
	assert.Contains(t, s.Narrative, "- Daya tumbuh di bawah 85%")
	assert.Contains(t, s.Narrative, "Bukti pembelian: Ada. Kemasan: Tidak ada.")
	assert.Contains(t, s.Narrative, "Umur tanaman: 14 hari setelah tanam")
	assert.Contains(t, s.Narrative, "VALID")
	assert.Contains(t, s.Narrative, "Catatan: Petani menanam setelah hujan")
}

func TestSummarizeIsDeterministic(t *testing.T) {
	record := &observation.ObservationRecord{
		ObservationResult:  observation.ResultInvalid,
		IsGerminationIssue: observation.Yes,
		FungalInfection:    observation.Yes,
		DaysAfterPlanting:  intPtr(9),
	}
	assert.Equal(t, observation.Summarize(record), observation.Summarize(record))
}
