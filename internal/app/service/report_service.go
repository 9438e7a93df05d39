package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"cmcs_backend/internal/common"
	"cmcs_backend/internal/domain/model"
	"cmcs_backend/internal/domain/repository"

	"github.com/go-pdf/fpdf"
)

type ReportService struct {
	claimRepo repository.ClaimRepository
}

func NewReportService(claimRepo repository.ClaimRepository) *ReportService {
	return &ReportService{claimRepo: claimRepo}
}

// ExportApprovedClaims renders the approved-claims payout report for a
// month/year as a PDF. Filtering to Approved within the period happens in
// the repository query; the renderer itself only formats what it is given.
func (s *ReportService) ExportApprovedClaims(ctx context.Context, year int, month time.Month) ([]byte, string, error) {
	if month < time.January || month > time.December {
		return nil, "", common.Errorf("invalid month %d: %w", month, common.ErrBadRequest)
	}
	claims, err := s.claimRepo.ListApprovedInMonth(ctx, year, int(month))
	if err != nil {
		return nil, "", common.Errorf("failed to list approved claims: %w", err)
	}

	pdfBytes, err := RenderApprovedClaimsPDF(year, month, claims)
	if err != nil {
		return nil, "", common.Errorf("failed to render report: %w", err)
	}
	filename := fmt.Sprintf("approved-claims-%04d-%02d.pdf", year, month)
	return pdfBytes, filename, nil
}

// RenderApprovedClaimsPDF produces the tabular payout document: one row per
// claim plus a total payout footer, or a "no claims found" notice when the
// collection is empty.
func RenderApprovedClaimsPDF(year int, month time.Month, claims []model.Claim) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Approved Claims Report - %s %d", month.String(), year))
	pdf.Ln(14)

	if len(claims) == 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 10, "No claims found for this period.")
		return outputPDF(pdf)
	}

	headers := []string{"Claim ID", "Lecturer", "Date", "Hours", "Amount"}
	widths := []float64{55, 50, 30, 20, 35}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	var total float64
	for _, c := range claims {
		name := ""
		if c.LecturerName != nil {
			name = *c.LecturerName
		}
		pdf.CellFormat(widths[0], 7, c.ID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, c.SubmissionDate.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.1f", c.HoursWorked), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("R %.2f", c.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
		total += c.Amount
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 8, "Total Payout", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, fmt.Sprintf("R %.2f", total), "1", 0, "R", false, 0, "")

	return outputPDF(pdf)
}

func outputPDF(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
