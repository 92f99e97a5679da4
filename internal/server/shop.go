package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	shopdomain "github.com/kukypng/oliver/internal/shop/domain"
)

// @Summary      Get Shop Profile
// @Description  Fetch the shop settings printed on documents
// @Tags         shop
// @Produce      json
// @Success      200  {object}  shopdomain.ShopProfile
// @Router       /shop [get]
func (s *Server) GetShopProfile(c *gin.Context) {
	profile, err := s.shopSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// @Summary      Update Shop Profile
// @Description  Apply a partial update to the shop settings
// @Tags         shop
// @Accept       json
// @Produce      json
// @Param        request  body  shopdomain.UpdateShopProfileRequest  true  "Update Shop Profile Request"
// @Success      200  {object}  shopdomain.ShopProfile
// @Router       /shop [put]
func (s *Server) UpdateShopProfile(c *gin.Context) {
	var req shopdomain.UpdateShopProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	profile, err := s.shopSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}
