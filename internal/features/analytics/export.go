package analytics

import (
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary      = "Summary"
	SheetTrend        = "Trend"
	SheetTeam         = "Team"
	SheetDistribution = "Distribution"
)

// ExportToExcel renders a report as an xlsx workbook with one sheet per section
func ExportToExcel(r *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	summary := [][]any{
		{"Periode (hari)", r.PeriodDays},
		{"Dari", r.From.Format(time.DateTime)},
		{"Sampai", r.To.Format(time.DateTime)},
		{"Total komplain", r.Summary.Total},
		{"Selesai", r.Summary.Resolved},
		{"Belum selesai", r.Summary.Pending},
		{"Tingkat penyelesaian (%)", r.Summary.ResolutionRate},
		{"Eskalasi", r.Summary.Escalated},
		{"Tingkat eskalasi (%)", r.Summary.EscalationRate},
		{"Rata-rata waktu penyelesaian (jam)", r.Summary.AvgResolutionHours},
		{"Rata-rata respons pertama (jam)", r.Summary.AvgFirstResponseHours},
		{"Kepatuhan SLA respons pertama (%)", r.SLA.FirstResponse.Compliance},
		{"Kepatuhan SLA penyelesaian (%)", r.SLA.Resolution.Compliance},
		{"Rata-rata CSAT", r.Satisfaction.Average},
		{"Jumlah penilaian", r.Satisfaction.Rated},
		{"Ditugaskan", r.Assignment.Assigned},
		{"Belum ditugaskan", r.Assignment.Unassigned},
		{"Rata-rata waktu penugasan (jam)", r.Assignment.AvgTimeToAssignHours},
		{"Dengan nomor seri produk (%)", r.Products.WithSerialPct},
	}
	if err := writeSheet(f, SheetSummary, []string{"Metrik", "Nilai"}, summary, headerStyle); err != nil {
		return nil, err
	}

	trend := make([][]any, 0, len(r.Trend))
	for _, p := range r.Trend {
		trend = append(trend, []any{p.Date, p.Total, p.Resolved, p.Pending, p.Escalated, p.Critical})
	}
	if err := writeSheet(f, SheetTrend, []string{"Tanggal", "Total", "Selesai", "Belum selesai", "Eskalasi", "Kritis"}, trend, headerStyle); err != nil {
		return nil, err
	}

	team := make([][]any, 0, len(r.Team))
	for _, m := range r.Team {
		team = append(team, []any{
			m.UserID, m.FullName, m.Department, m.Assigned, m.Resolved, m.AvgResolutionTime,
			m.CustomerSatisfactionAvg, m.CurrentLoad, m.MaxLoad, m.Escalated, m.Critical, m.SLABreaches,
		})
	}
	teamHeader := []string{
		"User ID", "Nama", "Departemen", "Ditugaskan", "Selesai", "Rata-rata penyelesaian (jam)",
		"CSAT", "Beban", "Kapasitas", "Eskalasi", "Kritis", "Pelanggaran SLA",
	}
	if err := writeSheet(f, SheetTeam, teamHeader, team, headerStyle); err != nil {
		return nil, err
	}

	var dist [][]any
	dist = appendGroup(dist, "status", r.Distribution.ByStatus)
	dist = appendGroup(dist, "priority", r.Distribution.ByPriority)
	dist = appendGroup(dist, "department", r.Distribution.ByDepartment)
	dist = appendGroup(dist, "complaint_type", r.Distribution.ByComplaintType)
	for _, b := range r.Satisfaction.Distribution {
		dist = append(dist, []any{"rating", b.Rating, b.Count})
	}
	for _, p := range r.Products.TopProducts {
		dist = append(dist, []any{"product", p.Name, p.Count})
	}
	for _, p := range r.ResponseTimeByPriority {
		dist = append(dist, []any{"first_response_hours", p.Priority, p.AvgFirstResponseHours})
	}
	if err := writeSheet(f, SheetDistribution, []string{"Kelompok", "Nilai", "Jumlah"}, dist, headerStyle); err != nil {
		return nil, err
	}

	// NewFile starts with Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if idx, err := f.GetSheetIndex(SheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, header []string, rows [][]any, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(name, cell, h)
		f.SetCellStyle(name, cell, cell, headerStyle)
	}
	for rowIdx, row := range rows {
		for colIdx, v := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(name, cell, v)
		}
	}

	for i := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(name, col, col, 18)
	}
	return nil
}

func appendGroup(rows [][]any, group string, counts map[string]int) [][]any {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, []any{group, k, counts[k]})
	}
	return rows
}
