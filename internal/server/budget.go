package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	budgetdomain "github.com/kukypng/oliver/internal/budget/domain"
	"github.com/kukypng/oliver/pkg/db/pagination"
)

// @Summary      Create Budget
// @Description  Create a new repair budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        request body budgetdomain.CreateBudgetRequest true "Create Budget Request"
// @Success      200  {object}  budgetdomain.Budget
// @Router       /budgets [post]
func (s *Server) CreateBudget(c *gin.Context) {
	var req budgetdomain.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	budget, err := s.budgetSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budget})
}

// @Summary      List Budgets
// @Description  List active budgets
// @Tags         budgets
// @Produce      json
// @Param        search      query  string  false  "Search"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  budgetdomain.ListBudgetsResponse
// @Router       /budgets [get]
func (s *Server) ListBudgets(c *gin.Context) {
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
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Get Budget
// @Description  Fetch one budget by id
// @Tags         budgets
// @Produce      json
// @Param        id  path  string  true  "Budget ID"
// @Success      200  {object}  budgetdomain.Budget
// @Router       /budgets/{id} [get]
func (s *Server) GetBudget(c *gin.Context) {
	budget, err := s.budgetSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budget})
}

// @Summary      Update Budget
// @Description  Apply a partial update to a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id       path  string                            true  "Budget ID"
// @Param        request  body  budgetdomain.UpdateBudgetRequest  true  "Update Budget Request"
// @Success      200  {object}  budgetdomain.Budget
// @Router       /budgets/{id} [put]
func (s *Server) UpdateBudget(c *gin.Context) {
	var req budgetdomain.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	budget, err := s.budgetSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budget})
}

// @Summary      Trash Budget
// @Description  Move a budget to the trash
// @Tags         budgets
// @Produce      json
// @Param        id  path  string  true  "Budget ID"
// @Success      200  {object}  budgetdomain.Budget
// @Router       /budgets/{id} [delete]
func (s *Server) TrashBudget(c *gin.Context) {
	budget, err := s.budgetSvc.MoveToTrash(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budget})
}
