package raster

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/kukypng/oliver/internal/document/layout"
)

func sampleDoc(t *testing.T) layout.Document {
	t.Helper()
	price := int64(40000)
	installments := 3
	doc, err := layout.Build(layout.BudgetDocumentInput{
		DeviceModel:           "iPhone 12",
		DeviceType:            "Smartphone",
		Issue:                 "Troca de tela",
		CashPriceCents:        35000,
		InstallmentPriceCents: &price,
		Installments:          &installments,
		WarrantyMonths:        3,
		CreatedAt:             "2024-01-10T00:00:00Z",
		ValidUntil:            "2024-01-25T00:00:00Z",
		ClientName:            "Maria Silva",
		ClientPhone:           "11999999999",
	}, layout.ShopProfile{Name: "Oliver Eletrônica"})
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}
	return doc
}

func TestComposeProducesPNGDataURI(t *testing.T) {
	composer, err := NewComposer()
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}

	uri, err := composer.Compose(sampleDoc(t), nil)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("expected data uri prefix, got %q", uri[:32])
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}

	bounds := img.Bounds()
	wantW := mmInt(layout.PageWidthMM)
	wantH := mmInt(layout.PageHeightMM)
	if bounds.Dx() != wantW || bounds.Dy() != wantH {
		t.Fatalf("expected %dx%d canvas, got %dx%d", wantW, wantH, bounds.Dx(), bounds.Dy())
	}
}

func TestComposeWithoutLogoNeverFails(t *testing.T) {
	composer, err := NewComposer()
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}
	if _, err := composer.Compose(sampleDoc(t), nil); err != nil {
		t.Fatalf("compose with placeholder: %v", err)
	}
}
