package pagination

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination is embedded in list query bindings.
type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

// PageInfo is embedded in list responses.
type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	TotalSize     int64  `json:"total_size"`
}

// Normalize clamps the page size into the allowed range.
func (p Pagination) Normalize() Pagination {
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// EncodeToken builds an opaque page token from a row offset.
func EncodeToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte("o:" + strconv.Itoa(offset)))
}

// DecodeToken parses an opaque page token back into a row offset. Malformed
// tokens decode to offset zero rather than failing the request.
func DecodeToken(token string) int {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0
	}
	value := string(raw)
	if !strings.HasPrefix(value, "o:") {
		return 0
	}
	offset, err := strconv.Atoi(strings.TrimPrefix(value, "o:"))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}
