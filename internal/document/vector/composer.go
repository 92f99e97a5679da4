package vector

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/kukypng/oliver/internal/document/layout"
	"github.com/kukypng/oliver/internal/document/logo"
)

const (
	pageW    = layout.PageWidthMM
	pageH    = layout.PageHeightMM
	margin   = layout.MarginMM
	contentW = pageW - 2*margin
)

// Composer renders the shared layout description as a single-page A4 PDF.
type Composer struct{}

func NewComposer() *Composer { return &Composer{} }

// Compose draws every section in order and serializes the finished page.
// A nil logoImage renders the placeholder glyph.
func (c *Composer) Compose(doc layout.Document, logoImage *logo.Resolved) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Orçamento de Serviço", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	y := 0.0
	for _, section := range doc.Sections {
		switch s := section.(type) {
		case layout.HeaderSection:
			y = drawHeader(pdf, tr, s, logoImage)
		case layout.TitleSection:
			y = drawTitle(pdf, tr, s, y)
		case layout.DatesSection:
			y = drawDates(pdf, tr, s, y)
		case layout.ClientSection:
			y = drawClient(pdf, tr, s, y)
		case layout.ServiceTableSection:
			y = drawTable(pdf, tr, s, y)
		case layout.PricingSection:
			y = drawPricing(pdf, tr, s, y)
		case layout.WarrantySection:
			y = drawWarranty(pdf, tr, s, y)
		case layout.InclusionsSection:
			y = drawInclusions(pdf, tr, s, y)
		case layout.FooterSection:
			drawFooter(pdf, tr, s)
		default:
			return nil, fmt.Errorf("unknown section kind %q", section.Kind())
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("compose pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func setFill(pdf *gofpdf.Fpdf, c layout.RGB) { pdf.SetFillColor(c.R, c.G, c.B) }
func setText(pdf *gofpdf.Fpdf, c layout.RGB) { pdf.SetTextColor(c.R, c.G, c.B) }
func setDraw(pdf *gofpdf.Fpdf, c layout.RGB) { pdf.SetDrawColor(c.R, c.G, c.B) }

func drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, s layout.HeaderSection, logoImage *logo.Resolved) float64 {
	setFill(pdf, layout.Palette.HeaderBackground)
	pdf.Rect(0, 0, pageW, layout.HeaderHeightMM, "F")

	// Logo container, top-left, rounded.
	box := layout.LogoBoxMM
	boxX, boxY := margin, (layout.HeaderHeightMM-box)/2
	setFill(pdf, layout.Palette.White)
	pdf.RoundedRect(boxX, boxY, box, box, 3, "1234", "F")

	if logoImage != nil {
		drawLogoImage(pdf, logoImage, boxX, boxY, box)
	} else {
		setText(pdf, layout.Palette.HeaderBackground)
		pdf.SetFont("Helvetica", "B", 24)
		pdf.SetXY(boxX, boxY+box/2-5)
		pdf.CellFormat(box, 10, tr(s.PlaceholderGlyph), "", 0, "CM", false, 0, "")
	}

	textX := margin + box + 8
	setText(pdf, layout.Palette.HeaderText)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(textX, 15, tr(s.ShopName))

	setText(pdf, layout.Palette.BandBackground)
	pdf.SetFont("Helvetica", "", 9.5)
	pdf.Text(textX, 22, tr(s.Subtitle))

	infoY := 29.0
	pdf.SetFont("Helvetica", "", 8)
	if s.CNPJ != "" {
		pdf.Text(textX, infoY, tr(s.CNPJ))
		infoY += 5
	}
	if s.ContactLine != "" {
		pdf.Text(textX, infoY, tr(s.ContactLine))
	}

	return layout.HeaderHeightMM + layout.SectionGapMM
}

func drawLogoImage(pdf *gofpdf.Fpdf, logoImage *logo.Resolved, boxX, boxY, box float64) {
	imageType := strings.ToUpper(logoImage.Format)
	if imageType == "JPEG" {
		imageType = "JPG"
	}
	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	pdf.RegisterImageOptionsReader("shop-logo", opts, bytes.NewReader(logoImage.Data))

	// Fit inside the container with a small inset, preserving aspect ratio.
	inset := 2.0
	avail := box - 2*inset
	bounds := logoImage.Image.Bounds()
	w, h := avail, avail
	if bounds.Dx() > bounds.Dy() {
		h = avail * float64(bounds.Dy()) / float64(bounds.Dx())
	} else if bounds.Dy() > bounds.Dx() {
		w = avail * float64(bounds.Dx()) / float64(bounds.Dy())
	}
	x := boxX + (box-w)/2
	y := boxY + (box-h)/2
	pdf.ImageOptions("shop-logo", x, y, w, h, false, opts, 0, "")
}

func drawTitle(pdf *gofpdf.Fpdf, tr func(string) string, s layout.TitleSection, y float64) float64 {
	setFill(pdf, layout.Palette.BandBackground)
	pdf.Rect(margin, y, contentW, layout.TitleHeightMM, "F")

	setText(pdf, layout.Palette.Text)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetXY(margin, y)
	pdf.CellFormat(contentW, layout.TitleHeightMM, tr(s.Text), "", 0, "CM", false, 0, "")

	return y + layout.TitleHeightMM + layout.SectionGapMM
}

func drawDates(pdf *gofpdf.Fpdf, tr func(string) string, s layout.DatesSection, y float64) float64 {
	gap := 4.0
	cellW := (contentW - gap) / 2
	cells := []struct {
		x     float64
		label string
		value string
	}{
		{margin, s.IssuedLabel, s.IssuedValue},
		{margin + cellW + gap, s.ValidLabel, s.ValidValue},
	}

	for _, cell := range cells {
		setFill(pdf, layout.Palette.PanelBackground)
		setDraw(pdf, layout.Palette.Border)
		pdf.Rect(cell.x, y, cellW, layout.DatesHeightMM, "FD")

		setText(pdf, layout.Palette.MutedText)
		pdf.SetFont("Helvetica", "", 7.5)
		pdf.Text(cell.x+4, y+5.5, tr(strings.ToUpper(cell.label)))

		setText(pdf, layout.Palette.Text)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Text(cell.x+4, y+11.5, tr(cell.value))
	}

	return y + layout.DatesHeightMM + layout.SectionGapMM
}

func drawClient(pdf *gofpdf.Fpdf, tr func(string) string, s layout.ClientSection, y float64) float64 {
	setFill(pdf, layout.Palette.PanelBackground)
	setDraw(pdf, layout.Palette.Border)
	pdf.Rect(margin, y, contentW, layout.ClientHeightMM, "FD")

	setText(pdf, layout.Palette.MutedText)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.Text(margin+4, y+6.5, tr(s.Label+":"))

	setText(pdf, layout.Palette.Text)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(margin+22, y+6.5, tr(s.Line))

	return y + layout.ClientHeightMM + layout.SectionGapMM
}

func drawTable(pdf *gofpdf.Fpdf, tr func(string) string, s layout.ServiceTableSection, y float64) float64 {
	itemW := 50.0
	descW := contentW - itemW
	rowH := layout.RowHeightMM

	setFill(pdf, layout.Palette.TableHeader)
	setText(pdf, layout.Palette.TableHeaderText)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(margin, y)
	pdf.CellFormat(itemW, rowH, tr(s.HeaderItem), "", 0, "LM", true, 0, "")
	pdf.CellFormat(descW, rowH, tr(s.HeaderDescription), "", 0, "LM", true, 0, "")
	y += rowH

	setText(pdf, layout.Palette.Text)
	for i, row := range s.Rows {
		if i%2 == 0 {
			setFill(pdf, layout.Palette.White)
		} else {
			setFill(pdf, layout.Palette.RowAlternate)
		}
		pdf.SetXY(margin, y)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(itemW, rowH, tr(row.Item), "", 0, "LM", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(descW, rowH, tr(row.Description), "", 0, "LM", true, 0, "")
		y += rowH
	}

	setDraw(pdf, layout.Palette.Border)
	pdf.Rect(margin, y-4*rowH, contentW, 4*rowH, "D")

	return y + layout.SectionGapMM
}

func drawPricing(pdf *gofpdf.Fpdf, tr func(string) string, s layout.PricingSection, y float64) float64 {
	height := layout.PricingOneMM
	if s.Installment != nil {
		height = layout.PricingTwoMM
	}

	setFill(pdf, layout.Palette.PanelBackground)
	setDraw(pdf, layout.Palette.Border)
	pdf.Rect(margin, y, contentW, height, "FD")

	setText(pdf, layout.Palette.Text)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(margin+4, y+9, tr(s.CashLabel))
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(margin, y+3.5)
	pdf.CellFormat(contentW-4, 9, tr(s.CashValue), "", 0, "RM", false, 0, "")

	if s.Installment != nil {
		setText(pdf, layout.Palette.MutedText)
		pdf.SetFont("Helvetica", "", 9)
		pdf.Text(margin+4, y+18, tr(s.Installment.Label))
		pdf.SetXY(margin, y+13.5)
		pdf.CellFormat(contentW-4, 8, tr(s.Installment.Value+" "+s.Installment.Note), "", 0, "RM", false, 0, "")
	}

	return y + height + layout.SectionGapMM
}

func drawWarranty(pdf *gofpdf.Fpdf, tr func(string) string, s layout.WarrantySection, y float64) float64 {
	setFill(pdf, layout.Palette.PanelBackground)
	setDraw(pdf, layout.Palette.Border)
	pdf.Rect(margin, y, contentW, layout.WarrantyMM, "FD")

	setText(pdf, layout.Palette.Text)
	pdf.SetFont("Helvetica", "B", 10.5)
	pdf.Text(margin+4, y+7.5, tr("Garantia - "+s.Term))

	setText(pdf, layout.Palette.MutedText)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(margin+4, y+10)
	pdf.MultiCell(contentW-8, 4, tr(s.Disclaimer), "", "L", false)

	return y + layout.WarrantyMM + layout.SectionGapMM
}

func drawInclusions(pdf *gofpdf.Fpdf, tr func(string) string, s layout.InclusionsSection, y float64) float64 {
	setDraw(pdf, layout.Palette.Border)
	pdf.Rect(margin, y, contentW, layout.InclusionsMM, "D")

	setText(pdf, layout.Palette.MutedText)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(margin+4, y+6, tr(s.Title))

	setText(pdf, layout.Palette.Text)
	pdf.SetFont("Helvetica", "", 9)
	lineY := y + 12.0
	for _, item := range s.Items {
		pdf.Text(margin+6, lineY, tr("• "+item))
		lineY += 5
	}

	return y + layout.InclusionsMM + layout.SectionGapMM
}

func drawFooter(pdf *gofpdf.Fpdf, tr func(string) string, s layout.FooterSection) {
	setDraw(pdf, layout.Palette.Border)
	pdf.Line(margin, pageH-22, pageW-margin, pageH-22)

	setText(pdf, layout.Palette.MutedText)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetXY(margin, pageH-18)
	pdf.CellFormat(contentW, 8, tr(s.Message), "", 0, "CM", false, 0, "")
}
