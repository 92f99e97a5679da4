package layout

// RGB is an 8-bit color shared by both composers.
type RGB struct {
	R, G, B int
}

// Palette is the neutral color table every drawing routine uses.
var Palette = struct {
	HeaderBackground RGB
	HeaderText       RGB
	BandBackground   RGB
	PanelBackground  RGB
	RowAlternate     RGB
	TableHeader      RGB
	TableHeaderText  RGB
	Text             RGB
	MutedText        RGB
	Border           RGB
	White            RGB
}{
	HeaderBackground: RGB{31, 41, 55},
	HeaderText:       RGB{255, 255, 255},
	BandBackground:   RGB{229, 231, 235},
	PanelBackground:  RGB{243, 244, 246},
	RowAlternate:     RGB{249, 250, 251},
	TableHeader:      RGB{55, 65, 81},
	TableHeaderText:  RGB{255, 255, 255},
	Text:             RGB{17, 24, 39},
	MutedText:        RGB{107, 114, 128},
	Border:           RGB{209, 213, 219},
	White:            RGB{255, 255, 255},
}

// Page geometry in millimeters (A4 portrait). The raster composer converts
// these to pixels with its own scale factor.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0

	MarginMM       = 12.0
	HeaderHeightMM = 42.0
	TitleHeightMM  = 10.0
	DatesHeightMM  = 14.0
	ClientHeightMM = 10.0
	RowHeightMM    = 9.0
	PricingOneMM   = 16.0
	PricingTwoMM   = 24.0
	WarrantyMM     = 20.0
	InclusionsMM   = 22.0
	SectionGapMM   = 6.0
	LogoBoxMM      = 26.0
)
