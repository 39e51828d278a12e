// Package document lays out printable artifacts for a fetched entry
// permit: the A4 permit sheet and the 4-up sticker sheet. Row assembly is
// kept separate from rendering so document content stays testable.
package document

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/zaqiyusuf/gatepass/internal/domain"
)

// A4 layout constants, in millimetres.
const (
	pageMarginMM   = 12.0
	tableRowHMM    = 7.0
	titleBlockHMM  = 18.0
	footerHeightMM = 32.0
)

// PermitFilename derives the download name from the registration number,
// falling back to the document number for unregistered permits.
func PermitFilename(p *domain.EntryPermit) string {
	return fmt.Sprintf("permit-%s.pdf", p.DisplayID())
}

// vehicleHeader and personnelHeader are the fixed table headings.
var vehicleHeader = []string{"No", "Plate", "Hull No", "Driver", "Cargo", "Origin", "Start", "End", "Cost"}
var personnelHeader = []string{"No", "Name", "ID Number", "Location", "Period", "Notes"}

// vehicleRows returns one row per vehicle entry, in input order.
func vehicleRows(p *domain.EntryPermit) [][]string {
	rows := make([][]string, 0, len(p.Vehicles))
	for i, v := range p.Vehicles {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			v.PlateNumber,
			v.HullNumber,
			v.DriverName,
			v.Cargo,
			v.Origin,
			v.StartDate,
			v.EndDate,
			formatAmount(v.Cost),
		})
	}
	return rows
}

// personnelRows returns one row per personnel entry, in input order.
func personnelRows(p *domain.EntryPermit) [][]string {
	rows := make([][]string, 0, len(p.Personnel))
	for i, per := range p.Personnel {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			per.Name,
			per.IDNumber,
			per.Location,
			periodLabel(p, per),
			per.Notes,
		})
	}
	return rows
}

// periodLabel resolves the personnel period column. The backend does not
// echo package names into permit records, so the package id stands in.
func periodLabel(p *domain.EntryPermit, per domain.PersonnelEntry) string {
	if per.PackageID != "" {
		return per.PackageID
	}
	return "-"
}

func formatAmount(v int) string {
	if v == 0 {
		return "-"
	}
	return strconv.Itoa(v)
}

// BuildPermitPDF renders the printable permit: title block, details block,
// vehicles table, personnel table, and signature footer.
func BuildPermitPDF(p *domain.EntryPermit) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	pdf.AddPage()

	writeTitleBlock(pdf, p)
	writeDetailsBlock(pdf, p)

	writeSectionTitle(pdf, "Vehicles")
	vw := []float64{10, 24, 24, 26, 22, 22, 20, 20, 18}
	writeTable(pdf, vw, vehicleHeader, vehicleRows(p))

	pdf.Ln(4)
	writeSectionTitle(pdf, "Personnel")
	pw := []float64{10, 40, 36, 36, 30, 34}
	writeTable(pdf, pw, personnelHeader, personnelRows(p))

	writeSignatureFooter(pdf)

	if pdf.Err() {
		return nil, fmt.Errorf("laying out permit document: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering permit document: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTitleBlock(pdf *fpdf.Fpdf, p *domain.EntryPermit) {
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(0, 9, "AREA ENTRY PERMIT", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "No. "+p.DisplayID(), "", 1, "C", false, 0, "")
	pdf.Ln(3)
}

func writeDetailsBlock(pdf *fpdf.Fpdf, p *domain.EntryPermit) {
	details := [][2]string{
		{"Registration Number", p.RegistrationNumber},
		{"Document Number", p.DocumentNumber},
		{"Requester", p.Requester},
		{"Registration Date", p.RegistrationDate},
		{"Status", string(p.Status)},
		{"Total", formatAmount(p.Total)},
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, d := range details {
		value := d[1]
		if value == "" {
			value = "-"
		}
		pdf.CellFormat(48, 5.5, d[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5.5, ": "+value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func writeSectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
}

func writeTable(pdf *fpdf.Fpdf, widths []float64, header []string, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 8)
	for i, h := range header {
		pdf.CellFormat(widths[i], tableRowHMM, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	if len(rows) == 0 {
		total := 0.0
		for _, w := range widths {
			total += w
		}
		pdf.CellFormat(total, tableRowHMM, "(none)", "1", 1, "C", false, 0, "")
		return
	}
	for _, row := range rows {
		for i, cell := range row {
			if cell == "" {
				cell = "-"
			}
			pdf.CellFormat(widths[i], tableRowHMM, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func writeSignatureFooter(pdf *fpdf.Fpdf) {
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	colW := 60.0
	pdf.CellFormat(colW, 5.5, "Issued by,", "", 0, "C", false, 0, "")
	pdf.CellFormat(colW, 5.5, "", "", 0, "C", false, 0, "")
	pdf.CellFormat(colW, 5.5, "Approved by,", "", 1, "C", false, 0, "")
	pdf.Ln(18)
	pdf.CellFormat(colW, 5.5, "(________________)", "", 0, "C", false, 0, "")
	pdf.CellFormat(colW, 5.5, "", "", 0, "C", false, 0, "")
	pdf.CellFormat(colW, 5.5, "(________________)", "", 1, "C", false, 0, "")
}
