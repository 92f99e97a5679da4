package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/kukypng/oliver/internal/audit/domain"
)

var errInvalidCursor = errors.New("invalid_cursor")

// @Summary      List Audit Logs
// @Description  List recorded actions, newest first
// @Tags         audit
// @Produce      json
// @Param        action       query  string  false  "Action"
// @Param        target_type  query  string  false  "Target Type"
// @Param        target_id    query  string  false  "Target ID"
// @Param        actor_type   query  string  false  "Actor Type"
// @Param        start_at     query  string  false  "Start At (RFC3339)"
// @Param        end_at       query  string  false  "End At (RFC3339)"
// @Param        cursor       query  string  false  "Cursor"
// @Param        limit        query  int     false  "Limit"
// @Success      200  {object}  []auditdomain.AuditLog
// @Router       /audit [get]
func (s *Server) ListAuditLogs(c *gin.Context) {
	var query struct {
		Action     string `form:"action"`
		TargetType string `form:"target_type"`
		TargetID   string `form:"target_id"`
		ActorType  string `form:"actor_type"`
		StartAt    string `form:"start_at"`
		EndAt      string `form:"end_at"`
		Cursor     string `form:"cursor"`
		Limit      int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	filter := auditdomain.ListFilter{
		Action:     strings.TrimSpace(query.Action),
		TargetType: strings.TrimSpace(query.TargetType),
		TargetID:   strings.TrimSpace(query.TargetID),
		ActorType:  strings.TrimSpace(query.ActorType),
		Limit:      query.Limit,
	}

	startAt, err := parseOptionalTime(query.StartAt)
	if err != nil {
		AbortWithError(c, newValidationError("start_at", "invalid_start_at", "invalid start_at"))
		return
	}
	filter.StartAt = startAt

	endAt, err := parseOptionalTime(query.EndAt)
	if err != nil {
		AbortWithError(c, newValidationError("end_at", "invalid_end_at", "invalid end_at"))
		return
	}
	filter.EndAt = endAt

	cursor, err := parseAuditCursor(query.Cursor)
	if err != nil {
		AbortWithError(c, newValidationError("cursor", "invalid_cursor", "invalid cursor"))
		return
	}
	filter.Cursor = cursor

	entries, err := s.auditSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := gin.H{"data": entries}
	if len(entries) > 0 {
		last := entries[len(entries)-1]
		resp["next_cursor"] = encodeAuditCursor(last.ID, last.CreatedAt)
	}
	c.JSON(http.StatusOK, resp)
}

func parseOptionalTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	utc := parsed.UTC()
	return &utc, nil
}

// Audit cursors are "<id>:<created_at unix nanos>", taken verbatim from a
// previous page's next_cursor.
func parseAuditCursor(raw string) (*auditdomain.AuditCursor, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	idPart, nsPart, ok := strings.Cut(raw, ":")
	if !ok {
		return nil, errInvalidCursor
	}
	id, err := snowflake.ParseString(idPart)
	if err != nil {
		return nil, errInvalidCursor
	}
	ns, err := strconv.ParseInt(nsPart, 10, 64)
	if err != nil {
		return nil, errInvalidCursor
	}
	return &auditdomain.AuditCursor{ID: id, CreatedAt: time.Unix(0, ns).UTC()}, nil
}

func encodeAuditCursor(id snowflake.ID, createdAt time.Time) string {
	return id.String() + ":" + strconv.FormatInt(createdAt.UnixNano(), 10)
}
