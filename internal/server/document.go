package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/kukypng/oliver/internal/audit/domain"
	budgetdomain "github.com/kukypng/oliver/internal/budget/domain"
	"github.com/kukypng/oliver/internal/events"
	shopdomain "github.com/kukypng/oliver/internal/shop/domain"
	"go.uber.org/zap"
)

// @Summary      Budget Document
// @Description  Render the budget as a downloadable PDF
// @Tags         documents
// @Produce      application/pdf
// @Param        id  path  string  true  "Budget ID"
// @Success      200  {file}  binary
// @Router       /budgets/{id}/document [get]
func (s *Server) GetBudgetDocument(c *gin.Context) {
	budget, profile, err := s.loadDocumentInputs(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	pdf, err := s.documentSvc.GeneratePDF(c.Request.Context(), budget.DocumentInput(), profile.DocumentProfile())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordDocumentGenerated(c, budget, "pdf")

	c.Header("Content-Disposition", `attachment; filename="orcamento-`+budget.ID.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// @Summary      Budget Document Image
// @Description  Render the budget as a PNG data URI for image-sharing channels
// @Tags         documents
// @Produce      json
// @Param        id  path  string  true  "Budget ID"
// @Success      200  {object}  map[string]string
// @Router       /budgets/{id}/document/image [get]
func (s *Server) GetBudgetDocumentImage(c *gin.Context) {
	budget, profile, err := s.loadDocumentInputs(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	dataURI, err := s.documentSvc.GenerateImage(c.Request.Context(), budget.DocumentInput(), profile.DocumentProfile())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordDocumentGenerated(c, budget, "image")

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"data_uri": dataURI}})
}

func (s *Server) loadDocumentInputs(c *gin.Context) (*budgetdomain.Budget, *shopdomain.ShopProfile, error) {
	ctx := c.Request.Context()
	budget, err := s.budgetSvc.GetByID(ctx, c.Param("id"))
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.shopSvc.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	return budget, profile, nil
}

func (s *Server) recordDocumentGenerated(c *gin.Context, budget *budgetdomain.Budget, format string) {
	ctx := c.Request.Context()
	s.auditSvc.Record(ctx, auditdomain.Entry{
		Action:     auditdomain.ActionDocumentGenerated,
		TargetType: "budget",
		TargetID:   budget.ID.String(),
		Metadata:   map[string]any{"format": format},
	})

	payload := events.DocumentPayload{BudgetID: budget.ID.String(), Format: format}
	if err := s.outbox.Publish(ctx, events.Event{
		Type:    events.EventDocumentGenerated,
		Payload: payload.ToMap(),
	}); err != nil {
		s.log.Warn("outbox publish failed", zap.Error(err))
	}
}
