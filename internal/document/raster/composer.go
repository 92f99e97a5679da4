package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/kukypng/oliver/internal/document/layout"
	"github.com/kukypng/oliver/internal/document/logo"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Rendering scale: CSS-pixel density at 2x device pixel ratio for crisp
// output on the image-sharing channels this artifact targets.
const (
	pxPerMM = 96.0 / 25.4
	dpr     = 2.0
)

type fontStyle int

const (
	styleRegular fontStyle = iota
	styleBold
	styleItalic
)

// Composer renders the shared layout description as a PNG data URI. It is
// an independent rendering of the same section list the PDF composer
// consumes, not a rasterization of the PDF.
type Composer struct {
	regular *truetype.Font
	bold    *truetype.Font
	italic  *truetype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	style fontStyle
	size  float64
}

func NewComposer() (*Composer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	italic, err := truetype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse italic font: %w", err)
	}
	return &Composer{
		regular: regular,
		bold:    bold,
		italic:  italic,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// Compose draws every section in order and encodes the bitmap as a PNG
// data URI. Either a complete artifact is returned or an error with no
// artifact at all.
func (c *Composer) Compose(doc layout.Document, logoImage *logo.Resolved) (string, error) {
	dc := gg.NewContext(mmInt(layout.PageWidthMM), mmInt(layout.PageHeightMM))
	dc.SetRGB255(255, 255, 255)
	dc.Clear()

	y := 0.0
	for _, section := range doc.Sections {
		switch s := section.(type) {
		case layout.HeaderSection:
			y = c.drawHeader(dc, s, logoImage)
		case layout.TitleSection:
			y = c.drawTitle(dc, s, y)
		case layout.DatesSection:
			y = c.drawDates(dc, s, y)
		case layout.ClientSection:
			y = c.drawClient(dc, s, y)
		case layout.ServiceTableSection:
			y = c.drawTable(dc, s, y)
		case layout.PricingSection:
			y = c.drawPricing(dc, s, y)
		case layout.WarrantySection:
			y = c.drawWarranty(dc, s, y)
		case layout.InclusionsSection:
			y = c.drawInclusions(dc, s, y)
		case layout.FooterSection:
			c.drawFooter(dc, s)
		default:
			return "", fmt.Errorf("unknown section kind %q", section.Kind())
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func mm(v float64) float64 { return v * pxPerMM * dpr }
func mmInt(v float64) int  { return int(mm(v) + 0.5) }

// fontPx converts a PDF point size to canvas pixels at the render scale.
func fontPx(pt float64) float64 { return pt * 96.0 / 72.0 * dpr }

func (c *Composer) face(style fontStyle, sizePt float64) font.Face {
	key := faceKey{style: style, size: sizePt}
	if f, ok := c.faces[key]; ok {
		return f
	}
	var ttf *truetype.Font
	switch style {
	case styleBold:
		ttf = c.bold
	case styleItalic:
		ttf = c.italic
	default:
		ttf = c.regular
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: fontPx(sizePt)})
	c.faces[key] = f
	return f
}

func setColor(dc *gg.Context, col layout.RGB) {
	dc.SetRGB255(col.R, col.G, col.B)
}

func (c *Composer) text(dc *gg.Context, s string, xMM, yMM float64, style fontStyle, sizePt float64, col layout.RGB) {
	setColor(dc, col)
	dc.SetFontFace(c.face(style, sizePt))
	dc.DrawString(s, mm(xMM), mm(yMM))
}

func (c *Composer) textCentered(dc *gg.Context, s string, xMM, yMM, wMM float64, style fontStyle, sizePt float64, col layout.RGB) {
	setColor(dc, col)
	dc.SetFontFace(c.face(style, sizePt))
	dc.DrawStringAnchored(s, mm(xMM+wMM/2), mm(yMM), 0.5, 0.3)
}

func (c *Composer) textRight(dc *gg.Context, s string, rightMM, yMM float64, style fontStyle, sizePt float64, col layout.RGB) {
	setColor(dc, col)
	dc.SetFontFace(c.face(style, sizePt))
	dc.DrawStringAnchored(s, mm(rightMM), mm(yMM), 1, 0)
}

func fillRect(dc *gg.Context, xMM, yMM, wMM, hMM float64, col layout.RGB) {
	setColor(dc, col)
	dc.DrawRectangle(mm(xMM), mm(yMM), mm(wMM), mm(hMM))
	dc.Fill()
}

func strokeRect(dc *gg.Context, xMM, yMM, wMM, hMM float64, col layout.RGB) {
	setColor(dc, col)
	dc.SetLineWidth(dpr)
	dc.DrawRectangle(mm(xMM), mm(yMM), mm(wMM), mm(hMM))
	dc.Stroke()
}

const (
	margin   = layout.MarginMM
	contentW = layout.PageWidthMM - 2*layout.MarginMM
)

func (c *Composer) drawHeader(dc *gg.Context, s layout.HeaderSection, logoImage *logo.Resolved) float64 {
	fillRect(dc, 0, 0, layout.PageWidthMM, layout.HeaderHeightMM, layout.Palette.HeaderBackground)

	box := layout.LogoBoxMM
	boxX := margin
	boxY := (layout.HeaderHeightMM - box) / 2
	setColor(dc, layout.Palette.White)
	dc.DrawRoundedRectangle(mm(boxX), mm(boxY), mm(box), mm(box), mm(3))
	dc.Fill()

	if logoImage != nil {
		drawLogoImage(dc, logoImage, boxX, boxY, box)
	} else {
		setColor(dc, layout.Palette.HeaderBackground)
		dc.SetFontFace(c.face(styleBold, 24))
		dc.DrawStringAnchored(s.PlaceholderGlyph, mm(boxX+box/2), mm(boxY+box/2), 0.5, 0.35)
	}

	textX := margin + box + 8
	c.text(dc, s.ShopName, textX, 15, styleBold, 16, layout.Palette.HeaderText)
	c.text(dc, s.Subtitle, textX, 22, styleRegular, 9.5, layout.Palette.BandBackground)

	infoY := 29.0
	if s.CNPJ != "" {
		c.text(dc, s.CNPJ, textX, infoY, styleRegular, 8, layout.Palette.HeaderText)
		infoY += 5
	}
	if s.ContactLine != "" {
		c.text(dc, s.ContactLine, textX, infoY, styleRegular, 8, layout.Palette.HeaderText)
	}

	return layout.HeaderHeightMM + layout.SectionGapMM
}

func drawLogoImage(dc *gg.Context, logoImage *logo.Resolved, boxXMM, boxYMM, boxMM float64) {
	inset := 2.0
	availPx := mm(boxMM - 2*inset)
	bounds := logoImage.Image.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}
	scale := availPx / float64(bounds.Dx())
	if s := availPx / float64(bounds.Dy()); s < scale {
		scale = s
	}
	w := float64(bounds.Dx()) * scale
	h := float64(bounds.Dy()) * scale
	x := mm(boxXMM) + (mm(boxMM)-w)/2
	y := mm(boxYMM) + (mm(boxMM)-h)/2

	dc.Push()
	dc.Translate(x, y)
	dc.Scale(scale, scale)
	dc.DrawImage(logoImage.Image, 0, 0)
	dc.Pop()
}

func (c *Composer) drawTitle(dc *gg.Context, s layout.TitleSection, y float64) float64 {
	fillRect(dc, margin, y, contentW, layout.TitleHeightMM, layout.Palette.BandBackground)
	c.textCentered(dc, s.Text, margin, y+layout.TitleHeightMM/2, contentW, styleBold, 13, layout.Palette.Text)
	return y + layout.TitleHeightMM + layout.SectionGapMM
}

func (c *Composer) drawDates(dc *gg.Context, s layout.DatesSection, y float64) float64 {
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
		fillRect(dc, cell.x, y, cellW, layout.DatesHeightMM, layout.Palette.PanelBackground)
		strokeRect(dc, cell.x, y, cellW, layout.DatesHeightMM, layout.Palette.Border)
		c.text(dc, strings.ToUpper(cell.label), cell.x+4, y+5.5, styleRegular, 7.5, layout.Palette.MutedText)
		c.text(dc, cell.value, cell.x+4, y+11.5, styleBold, 11, layout.Palette.Text)
	}

	return y + layout.DatesHeightMM + layout.SectionGapMM
}

func (c *Composer) drawClient(dc *gg.Context, s layout.ClientSection, y float64) float64 {
	fillRect(dc, margin, y, contentW, layout.ClientHeightMM, layout.Palette.PanelBackground)
	strokeRect(dc, margin, y, contentW, layout.ClientHeightMM, layout.Palette.Border)
	c.text(dc, s.Label+":", margin+4, y+6.5, styleBold, 8.5, layout.Palette.MutedText)
	c.text(dc, s.Line, margin+22, y+6.5, styleRegular, 10, layout.Palette.Text)
	return y + layout.ClientHeightMM + layout.SectionGapMM
}

func (c *Composer) drawTable(dc *gg.Context, s layout.ServiceTableSection, y float64) float64 {
	itemW := 50.0
	rowH := layout.RowHeightMM
	tableTop := y

	fillRect(dc, margin, y, contentW, rowH, layout.Palette.TableHeader)
	c.text(dc, s.HeaderItem, margin+4, y+rowH-3, styleBold, 9, layout.Palette.TableHeaderText)
	c.text(dc, s.HeaderDescription, margin+itemW+4, y+rowH-3, styleBold, 9, layout.Palette.TableHeaderText)
	y += rowH

	for i, row := range s.Rows {
		rowColor := layout.Palette.White
		if i%2 == 1 {
			rowColor = layout.Palette.RowAlternate
		}
		fillRect(dc, margin, y, contentW, rowH, rowColor)
		c.text(dc, row.Item, margin+4, y+rowH-3, styleBold, 9, layout.Palette.Text)
		c.text(dc, row.Description, margin+itemW+4, y+rowH-3, styleRegular, 9, layout.Palette.Text)
		y += rowH
	}

	strokeRect(dc, margin, tableTop, contentW, 4*rowH, layout.Palette.Border)

	return y + layout.SectionGapMM
}

func (c *Composer) drawPricing(dc *gg.Context, s layout.PricingSection, y float64) float64 {
	height := layout.PricingOneMM
	if s.Installment != nil {
		height = layout.PricingTwoMM
	}

	fillRect(dc, margin, y, contentW, height, layout.Palette.PanelBackground)
	strokeRect(dc, margin, y, contentW, height, layout.Palette.Border)

	c.text(dc, s.CashLabel, margin+4, y+9, styleBold, 10, layout.Palette.Text)
	c.textRight(dc, s.CashValue, margin+contentW-4, y+9, styleBold, 14, layout.Palette.Text)

	if s.Installment != nil {
		c.text(dc, s.Installment.Label, margin+4, y+18, styleRegular, 9, layout.Palette.MutedText)
		c.textRight(dc, s.Installment.Value+" "+s.Installment.Note, margin+contentW-4, y+18, styleRegular, 9, layout.Palette.MutedText)
	}

	return y + height + layout.SectionGapMM
}

func (c *Composer) drawWarranty(dc *gg.Context, s layout.WarrantySection, y float64) float64 {
	fillRect(dc, margin, y, contentW, layout.WarrantyMM, layout.Palette.PanelBackground)
	strokeRect(dc, margin, y, contentW, layout.WarrantyMM, layout.Palette.Border)

	c.text(dc, "Garantia - "+s.Term, margin+4, y+7.5, styleBold, 10.5, layout.Palette.Text)

	setColor(dc, layout.Palette.MutedText)
	dc.SetFontFace(c.face(styleRegular, 8))
	dc.DrawStringWrapped(s.Disclaimer, mm(margin+4), mm(y+10), 0, 0, mm(contentW-8), 1.3, gg.AlignLeft)

	return y + layout.WarrantyMM + layout.SectionGapMM
}

func (c *Composer) drawInclusions(dc *gg.Context, s layout.InclusionsSection, y float64) float64 {
	strokeRect(dc, margin, y, contentW, layout.InclusionsMM, layout.Palette.Border)

	c.text(dc, s.Title, margin+4, y+6, styleBold, 8, layout.Palette.MutedText)

	lineY := y + 12.0
	for _, item := range s.Items {
		c.text(dc, "• "+item, margin+6, lineY, styleRegular, 9, layout.Palette.Text)
		lineY += 5
	}

	return y + layout.InclusionsMM + layout.SectionGapMM
}

func (c *Composer) drawFooter(dc *gg.Context, s layout.FooterSection) {
	setColor(dc, layout.Palette.Border)
	dc.SetLineWidth(dpr)
	dc.DrawLine(mm(margin), mm(layout.PageHeightMM-22), mm(layout.PageWidthMM-margin), mm(layout.PageHeightMM-22))
	dc.Stroke()

	c.textCentered(dc, s.Message, margin, layout.PageHeightMM-15, contentW, styleItalic, 10, layout.Palette.MutedText)
}
