package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	budgetdomain "github.com/kukypng/oliver/internal/budget/domain"
	"github.com/kukypng/oliver/pkg/db/pagination"
)

// @Summary      List Trash
// @Description  List trashed budgets awaiting purge
// @Tags         trash
// @Produce      json
// @Param        search      query  string  false  "Search"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  budgetdomain.ListBudgetsResponse
// @Router       /trash [get]
func (s *Server) ListTrash(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Search string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.budgetSvc.List(c.Request.Context(), budgetdomain.ListBudgetsRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Search:    query.Search,
		Trashed:   true,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Restore Budget
// @Description  Restore a trashed budget
// @Tags         trash
// @Produce      json
// @Param        id  path  string  true  "Budget ID"
// @Success      200  {object}  budgetdomain.Budget
// @Router       /trash/{id}/restore [post]
func (s *Server) RestoreBudget(c *gin.Context) {
	budget, err := s.budgetSvc.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budget})
}

// @Summary      Purge Budget
// @Description  Permanently delete a trashed budget
// @Tags         trash
// @Produce      json
// @Param        id  path  string  true  "Budget ID"
// @Success      200  {object}  map[string]string
// @Router       /trash/{id} [delete]
func (s *Server) PurgeBudget(c *gin.Context) {
	if err := s.budgetSvc.Purge(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
