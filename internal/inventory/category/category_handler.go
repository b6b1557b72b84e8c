package category

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"
	"github.com/achmadwirra/inventory-asset/pkg/models"
	"github.com/achmadwirra/inventory-asset/pkg/security"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service *CategoryService
}

func NewCategoryHandler(service *CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/categories", h.GetCategories)
	router.POST("/categories", security.Authorize("staff"), h.CreateCategory)
	router.PUT("/categories/:id", security.Authorize("staff"), h.UpdateCategory)
	router.DELETE("/categories/:id", security.Authorize("admin"), h.DeleteCategory)
	router.POST("/categories/:id/restore", security.Authorize("admin"), h.RestoreCategory)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.GetCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	category, err := h.service.CreateCategory(req, security.CurrentUserID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := categoryIDParam(c)
	if !ok {
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	category, err := h.service.UpdateCategory(categoryID, req, security.CurrentUserID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := categoryIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(categoryID, security.CurrentUserID(c)); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) RestoreCategory(c *gin.Context) {
	categoryID, ok := categoryIDParam(c)
	if !ok {
		return
	}

	category, err := h.service.RestoreCategory(categoryID, security.CurrentUserID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func categoryIDParam(c *gin.Context) (int, bool) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID", "details": err.Error()})
		return 0, false
	}
	return categoryID, true
}

func respondWithError(c *gin.Context, err error) {
	var validation *apperrors.ValidationError
	var notFound *apperrors.NotFoundError
	var conflict *apperrors.ConflictError

	switch {
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": validation.Fields})
	case errors.As(err, &notFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &conflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": conflict.Message})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
	}
}
