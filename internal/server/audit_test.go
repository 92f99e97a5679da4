package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/kukypng/oliver/internal/audit/domain"
)

func listAuditLogs(t *testing.T, engine *gin.Engine, path string) (entries []struct {
	Action     string
	TargetType string
	TargetID   string
}, nextCursor string) {
	t.Helper()
	rec := doJSON(t, engine, http.MethodGet, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list audit: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data []struct {
			Action     string
			TargetType string
			TargetID   string
		} `json:"data"`
		NextCursor string `json:"next_cursor"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Data, resp.NextCursor
}

func TestAuditLogEndpoint(t *testing.T) {
	_, engine := setupTestServer(t)
	id := createTestBudget(t, engine)
	if rec := doJSON(t, engine, http.MethodDelete, "/v1/budgets/"+id, nil); rec.Code != http.StatusOK {
		t.Fatalf("trash budget: status %d", rec.Code)
	}

	entries, _ := listAuditLogs(t, engine, "/v1/audit")
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[0].Action != auditdomain.ActionBudgetTrashed {
		t.Fatalf("expected newest entry %q first, got %q", auditdomain.ActionBudgetTrashed, entries[0].Action)
	}
	if entries[0].TargetID != id {
		t.Fatalf("expected target id %s, got %s", id, entries[0].TargetID)
	}

	entries, _ = listAuditLogs(t, engine, "/v1/audit?action="+auditdomain.ActionBudgetCreated)
	if len(entries) != 1 || entries[0].Action != auditdomain.ActionBudgetCreated {
		t.Fatalf("expected single %q entry, got %+v", auditdomain.ActionBudgetCreated, entries)
	}
}

func TestAuditLogEndpointPagination(t *testing.T) {
	_, engine := setupTestServer(t)
	createTestBudget(t, engine)
	createTestBudget(t, engine)

	entries, cursor := listAuditLogs(t, engine, "/v1/audit?limit=1")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry on first page, got %d", len(entries))
	}
	if cursor == "" {
		t.Fatal("expected next_cursor on first page")
	}

	second, _ := listAuditLogs(t, engine, "/v1/audit?limit=1&cursor="+cursor)
	if len(second) != 1 {
		t.Fatalf("expected 1 entry on second page, got %d", len(second))
	}
}

func TestAuditLogEndpointRejectsBadInput(t *testing.T) {
	_, engine := setupTestServer(t)

	if rec := doJSON(t, engine, http.MethodGet, "/v1/audit?cursor=garbage", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed cursor, got %d", rec.Code)
	}
	if rec := doJSON(t, engine, http.MethodGet, "/v1/audit?start_at=not-a-time", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed start_at, got %d", rec.Code)
	}
}
