package pagination

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token := EncodeToken(40)
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if got := DecodeToken(token); got != 40 {
		t.Fatalf("expected offset 40, got %d", got)
	}
}

func TestDecodeMalformedToken(t *testing.T) {
	if got := DecodeToken("not-a-token!!"); got != 0 {
		t.Fatalf("expected malformed token to decode to 0, got %d", got)
	}
}

func TestNormalizeClampsPageSize(t *testing.T) {
	p := Pagination{PageSize: 1000}.Normalize()
	if p.PageSize != 100 {
		t.Fatalf("expected clamp to 100, got %d", p.PageSize)
	}
	p = Pagination{}.Normalize()
	if p.PageSize != 20 {
		t.Fatalf("expected default 20, got %d", p.PageSize)
	}
}
