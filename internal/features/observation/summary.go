package observation

import (
	"fmt"
	"strings"
	"time"
)

type SummaryStatus string

const (
	SummaryValid   SummaryStatus = "Valid"
	SummaryInvalid SummaryStatus = "Invalid"
	SummaryPending SummaryStatus = "Pending"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

const (
	CategorySeedQuality   = "Masalah Kualitas Benih"
	CategoryCultivation   = "Masalah Budidaya/Lingkungan"
	CategoryExternal      = "Masalah Eksternal (Hewan)"
	CategoryTreatment     = "Masalah Treatment/Kimia"
	CategoryGerminationOK = "Masalah Germinasi Lainnya"
	CategoryNoIssue       = "Tidak ada masalah"
)

const (
	pendingSummary   = "Observasi belum dilakukan"
	pendingNarrative = "Belum ada hasil observasi untuk komplain ini. Ringkasan akan tersedia setelah tim observasi mengisi laporan lapangan."
)

// Summary is the display form of an observation
type Summary struct {
	Status              SummaryStatus `json:"status"`
	Category            string        `json:"category"`
	Severity            Severity      `json:"severity"`
	Issues              []string      `json:"issues"`
	TotalIssuesFound    int           `json:"total_issues_found"`
	ReplacementProposal *string       `json:"replacement_proposal"`
	IsExpired           bool          `json:"is_expired"`
	ShortSummary        string        `json:"short_summary"`
	Narrative           string        `json:"narrative"`
}

type criterion struct {
	label string
	value func(*ObservationRecord) string
}

var checklist = []criterion{
	{"Daya tumbuh di bawah 85%", func(r *ObservationRecord) string { return r.GerminationBelow85 }},
	{"Benih tidak ditemukan di lahan", func(r *ObservationRecord) string { return r.SeedNotFound }},
	{"Benih tidak tumbuh karena kondisi tanah", func(r *ObservationRecord) string { return r.SeedNotGrowSoil }},
	{"Kerusakan akibat bahan kimia", func(r *ObservationRecord) string { return r.ChemicalDamage }},
	{"Kerusakan akibat serangga", func(r *ObservationRecord) string { return r.InsectDamage }},
	{"Infeksi jamur", func(r *ObservationRecord) string { return r.FungalInfection }},
	{"Benih digali hewan", func(r *ObservationRecord) string { return r.SeedExcavatedByAnimal }},
	{"Perlakuan benih tambahan", func(r *ObservationRecord) string { return r.ExtraSeedTreatment }},
	{"Benih direndam sebelum tanam", func(r *ObservationRecord) string { return r.SeedPreSoaked }},
	{"Kedalaman tanam lebih dari 7 cm", func(r *ObservationRecord) string { return r.PlantingDepthOver7cm }},
}

func yes(v string) bool {
	return v == Yes
}

// Summarize derives the verdict, issue list, category and narrative of an
// observation. A nil record or one without a result is Pending.
func Summarize(r *ObservationRecord) Summary {
	if r == nil || r.ObservationResult == "" {
		return Summary{
			Status:       SummaryPending,
			Issues:       []string{},
			ShortSummary: pendingSummary,
			Narrative:    pendingNarrative,
		}
	}

	s := Summary{Status: SummaryInvalid, Issues: []string{}}
	if r.ObservationResult == ResultValid {
		s.Status = SummaryValid
	}

	for _, c := range checklist {
		if yes(c.value(r)) {
			s.Issues = append(s.Issues, c.label)
		}
	}
	s.TotalIssuesFound = len(s.Issues)
	s.Category, s.Severity = categorize(r)

	if s.Status == SummaryValid && r.ReplacementQty != nil && *r.ReplacementQty > 0 && strings.TrimSpace(r.ReplacementHybrid) != "" {
		proposal := fmt.Sprintf("%d unit %s", *r.ReplacementQty, strings.TrimSpace(r.ReplacementHybrid))
		s.ReplacementProposal = &proposal
	}

	if r.PurchaseDate != nil && r.LabelExpiredDate != nil {
		s.IsExpired = r.PurchaseDate.After(*r.LabelExpiredDate)
	}

	s.ShortSummary = fmt.Sprintf("%s - %s (%d masalah ditemukan)", s.Status, s.Category, s.TotalIssuesFound)
	s.Narrative = narrative(r, s)
	return s
}

// categorize walks the decision tree top to bottom, first match wins
func categorize(r *ObservationRecord) (string, Severity) {
	if !yes(r.IsGerminationIssue) {
		return CategoryNoIssue, SeverityLow
	}
	switch {
	case yes(r.GerminationBelow85):
		return CategorySeedQuality, SeverityHigh
	case yes(r.SeedNotGrowSoil) || yes(r.FungalInfection) || yes(r.PlantingDepthOver7cm):
		return CategoryCultivation, SeverityMedium
	case yes(r.SeedNotFound) || yes(r.SeedExcavatedByAnimal):
		return CategoryExternal, SeverityLow
	case yes(r.ChemicalDamage) || yes(r.ExtraSeedTreatment):
		return CategoryTreatment, SeverityMedium
	}
	return CategoryGerminationOK, SeverityMedium
}

func daysAfterPlanting(r *ObservationRecord) (int, bool) {
	if r.DaysAfterPlanting != nil {
		return *r.DaysAfterPlanting, true
	}
	if r.PlantingDate != nil && r.ObservationDate != nil {
		return int(r.ObservationDate.Sub(*r.PlantingDate).Hours() / 24), true
	}
	return 0, false
}

func answer(v string) string {
	if yes(v) {
		return "Ada"
	}
	return "Tidak ada"
}

func narrative(r *ObservationRecord, s Summary) string {
	var b strings.Builder

	observer := r.ObserverName
	if observer == "" {
		observer = "petugas observasi"
	}
	if r.ObservationDate != nil {
		fmt.Fprintf(&b, "Observasi oleh %s pada %s.\n", observer, r.ObservationDate.Format("02 Jan 2006"))
	} else {
		fmt.Fprintf(&b, "Observasi oleh %s.\n", observer)
	}

	fmt.Fprintf(&b, "Kategori: %s (tingkat %s).\n", s.Category, s.Severity)
	fmt.Fprintf(&b, "Jumlah masalah ditemukan: %d.\n", s.TotalIssuesFound)
	for _, issue := range s.Issues {
		fmt.Fprintf(&b, "- %s\n", issue)
	}

	fmt.Fprintf(&b, "Bukti pembelian: %s. Kemasan: %s.\n", answer(r.HasPurchaseProof), answer(r.HasPackaging))

	if days, ok := daysAfterPlanting(r); ok {
		fmt.Fprintf(&b, "Umur tanaman: %d hari setelah tanam.\n", days)
	}
	if s.IsExpired {
		fmt.Fprintf(&b, "Peringatan: benih dibeli setelah tanggal kedaluwarsa label (%s).\n", r.LabelExpiredDate.Format(time.DateOnly))
	}
	if s.ReplacementProposal != nil {
		fmt.Fprintf(&b, "Usulan penggantian: %s.\n", *s.ReplacementProposal)
	}

	if s.Status == SummaryValid {
		b.WriteString("Kesimpulan: komplain dinyatakan VALID dan layak ditindaklanjuti dengan penggantian.")
	} else {
		b.WriteString("Kesimpulan: komplain dinyatakan TIDAK VALID berdasarkan hasil observasi lapangan.")
	}

	if notes := strings.TrimSpace(r.Notes); notes != "" {
		fmt.Fprintf(&b, "\nCatatan: %s", notes)
	}
	return b.String()
}
