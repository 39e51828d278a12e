package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/zaqiyusuf/gatepass/internal/domain"
)

// Placement is one sticker position on the A4 sheet, in millimetres.
type Placement struct {
	X, Y float64
	W, H float64
}

// StickerPlacements returns the fixed 2x2 grid. One physical sheet yields
// exactly four stickers regardless of how many vehicles the permit covers.
func StickerPlacements() []Placement {
	const (
		w    = 90.0
		h    = 130.0
		gapX = 6.0
		gapY = 8.0
		offX = 11.0
		offY = 12.0
	)
	return []Placement{
		{X: offX, Y: offY, W: w, H: h},
		{X: offX + w + gapX, Y: offY, W: w, H: h},
		{X: offX, Y: offY + h + gapY, W: w, H: h},
		{X: offX + w + gapX, Y: offY + h + gapY, W: w, H: h},
	}
}

// StickerFilename derives the sticker sheet download name.
func StickerFilename(p *domain.EntryPermit) string {
	return fmt.Sprintf("sticker-%s.pdf", p.DisplayID())
}

// BuildStickerSheet renders the print-ready 4-up sticker sheet. When
// backgroundPath names an image file it is placed under each sticker;
// otherwise a plain bordered sticker is drawn.
func BuildStickerSheet(p *domain.EntryPermit, backgroundPath string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	for _, pl := range StickerPlacements() {
		drawSticker(pdf, p, pl, backgroundPath)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("laying out sticker sheet: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering sticker sheet: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSticker(pdf *fpdf.Fpdf, p *domain.EntryPermit, pl Placement, backgroundPath string) {
	if backgroundPath != "" {
		pdf.ImageOptions(backgroundPath, pl.X, pl.Y, pl.W, pl.H, false,
			fpdf.ImageOptions{}, 0, "")
	} else {
		pdf.Rect(pl.X, pl.Y, pl.W, pl.H, "D")
	}

	// Registration number and validity overlay the background at fixed
	// offsets within the sticker.
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pl.X+10, pl.Y+pl.H*0.45, p.DisplayID())

	pdf.SetFont("Helvetica", "", 9)
	if len(p.Vehicles) > 0 && p.Vehicles[0].EndDate != "" {
		pdf.Text(pl.X+10, pl.Y+pl.H*0.45+8, "Valid until "+p.Vehicles[0].EndDate)
	}
	if p.RegistrationDate != "" {
		pdf.Text(pl.X+10, pl.Y+pl.H-8, p.RegistrationDate)
	}
}
