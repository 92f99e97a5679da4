package layout

import (
	"fmt"
	"strings"
)

// Fixed copy rendered on every document.
const (
	subtitleText       = "Assistência Técnica Especializada"
	titleText          = "ORÇAMENTO DE SERVIÇO"
	issuedLabel        = "Data de Emissão"
	validLabel         = "Válido Até"
	clientLabel        = "Cliente"
	tableHeaderItem    = "ITEM"
	tableHeaderDesc    = "DESCRIÇÃO"
	cashLabel          = "VALOR À VISTA"
	installmentLabel   = "VALOR PARCELADO"
	warrantyDisclaimer = "A garantia não cobre danos causados por quedas, impactos ou contato com líquidos."
	inclusionsTitle    = "ESTE ORÇAMENTO INCLUI"
	footerMessage      = "Agradecemos pela preferência!"

	fallbackShopName   = "Nome da Empresa"
	fallbackDeviceType = "Smartphone"
)

// Hard-coded inclusions; not derived from the budget record.
var inclusionItems = []string{
	"Busca e entrega do aparelho",
	"Película de proteção de brinde",
}

// Kind identifies a section type for renderers that switch on it.
type Kind string

const (
	KindHeader       Kind = "header"
	KindTitle        Kind = "title"
	KindDates        Kind = "dates"
	KindClient       Kind = "client"
	KindServiceTable Kind = "service_table"
	KindPricing      Kind = "pricing"
	KindWarranty     Kind = "warranty"
	KindInclusions   Kind = "inclusions"
	KindFooter       Kind = "footer"
)

// Section is one typed record in the ordered document description. Both
// composers walk the same list, so content and ordering cannot drift
// between the PDF and the PNG outputs.
type Section interface {
	Kind() Kind
}

type HeaderSection struct {
	ShopName         string
	Subtitle         string
	CNPJ             string
	ContactLine      string
	LogoURL          string
	PlaceholderGlyph string
}

func (HeaderSection) Kind() Kind { return KindHeader }

type TitleSection struct {
	Text string
}

func (TitleSection) Kind() Kind { return KindTitle }

type DatesSection struct {
	IssuedLabel string
	IssuedValue string
	ValidLabel  string
	ValidValue  string
}

func (DatesSection) Kind() Kind { return KindDates }

type ClientSection struct {
	Label string
	Line  string
}

func (ClientSection) Kind() Kind { return KindClient }

type ServiceRow struct {
	Item        string
	Description string
}

type ServiceTableSection struct {
	HeaderItem        string
	HeaderDescription string
	Rows              [3]ServiceRow
}

func (ServiceTableSection) Kind() Kind { return KindServiceTable }

type InstallmentLine struct {
	Label string
	Value string
	Note  string
}

type PricingSection struct {
	CashLabel   string
	CashValue   string
	Installment *InstallmentLine
}

func (PricingSection) Kind() Kind { return KindPricing }

type WarrantySection struct {
	Term       string
	Disclaimer string
}

func (WarrantySection) Kind() Kind { return KindWarranty }

type InclusionsSection struct {
	Title string
	Items []string
}

func (InclusionsSection) Kind() Kind { return KindInclusions }

type FooterSection struct {
	Message string
}

func (FooterSection) Kind() Kind { return KindFooter }

// Document is the renderer-neutral description of one budget document.
type Document struct {
	Sections []Section
}

// Build validates the input and produces the ordered section list.
func Build(input BudgetDocumentInput, profile ShopProfile) (Document, error) {
	if err := ValidateInput(input); err != nil {
		return Document{}, err
	}

	issued, err := FormatDate(input.CreatedAt)
	if err != nil {
		return Document{}, ErrInvalidCreatedAt
	}
	valid, err := FormatDate(input.ValidUntil)
	if err != nil {
		return Document{}, ErrInvalidValidUntil
	}

	sections := []Section{
		buildHeader(profile),
		TitleSection{Text: titleText},
		DatesSection{
			IssuedLabel: issuedLabel,
			IssuedValue: issued,
			ValidLabel:  validLabel,
			ValidValue:  valid,
		},
	}

	if client, ok := buildClient(input); ok {
		sections = append(sections, client)
	}

	deviceType := strings.TrimSpace(input.DeviceType)
	if deviceType == "" {
		deviceType = fallbackDeviceType
	}
	sections = append(sections, ServiceTableSection{
		HeaderItem:        tableHeaderItem,
		HeaderDescription: tableHeaderDesc,
		Rows: [3]ServiceRow{
			{Item: "Aparelho", Description: deviceType},
			{Item: "Modelo", Description: strings.TrimSpace(input.DeviceModel)},
			{Item: "Serviço", Description: strings.TrimSpace(input.Issue)},
		},
	})

	sections = append(sections,
		buildPricing(input),
		WarrantySection{
			Term:       warrantyTerm(input.WarrantyMonths),
			Disclaimer: warrantyDisclaimer,
		},
		InclusionsSection{
			Title: inclusionsTitle,
			Items: append([]string(nil), inclusionItems...),
		},
		FooterSection{Message: footerMessage},
	)

	return Document{Sections: sections}, nil
}

func buildHeader(profile ShopProfile) HeaderSection {
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = fallbackShopName
	}

	contact := strings.TrimSpace(profile.Address)
	if phone := strings.TrimSpace(profile.Phone); phone != "" {
		if contact != "" {
			contact += " • "
		}
		contact += phone
	}

	cnpj := strings.TrimSpace(profile.CNPJ)
	if cnpj != "" {
		cnpj = "CNPJ: " + cnpj
	}

	return HeaderSection{
		ShopName:         name,
		Subtitle:         subtitleText,
		CNPJ:             cnpj,
		ContactLine:      contact,
		LogoURL:          strings.TrimSpace(profile.LogoURL),
		PlaceholderGlyph: placeholderGlyph(name),
	}
}

func buildClient(input BudgetDocumentInput) (ClientSection, bool) {
	name := strings.TrimSpace(input.ClientName)
	phone := strings.TrimSpace(input.ClientPhone)
	switch {
	case name != "" && phone != "":
		return ClientSection{Label: clientLabel, Line: name + " • " + phone}, true
	case name != "":
		return ClientSection{Label: clientLabel, Line: name}, true
	case phone != "":
		return ClientSection{Label: clientLabel, Line: phone}, true
	default:
		return ClientSection{}, false
	}
}

func buildPricing(input BudgetDocumentInput) PricingSection {
	section := PricingSection{
		CashLabel: cashLabel,
		CashValue: FormatCurrency(input.CashPriceCents),
	}
	if input.InstallmentPriceCents != nil && input.Installments != nil && *input.Installments > 1 {
		section.Installment = &InstallmentLine{
			Label: installmentLabel,
			Value: FormatCurrency(*input.InstallmentPriceCents),
			Note:  fmt.Sprintf("em %dx", *input.Installments),
		}
	}
	return section
}

func warrantyTerm(months int) string {
	if months == 1 {
		return "Prazo: 1 mês"
	}
	return fmt.Sprintf("Prazo: %d meses", months)
}

func placeholderGlyph(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return "?"
}
