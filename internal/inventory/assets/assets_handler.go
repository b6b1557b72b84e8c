package assets

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"
	"github.com/achmadwirra/inventory-asset/pkg/metadata"
	"github.com/achmadwirra/inventory-asset/pkg/models"
	"github.com/achmadwirra/inventory-asset/pkg/security"

	"github.com/gin-gonic/gin"
)

type AuditLogReader interface {
	GetResourceLog(id int, resourceType string) ([]models.AuditLog, error)
}

type AssignmentHistoryReader interface {
	GetAssignmentsByAsset(assetID int) ([]models.AssetAssignment, error)
}

type AssetHandler struct {
	service     *AssetService
	auditReader AuditLogReader
	history     AssignmentHistoryReader
}

func NewAssetHandler(service *AssetService, auditReader AuditLogReader, history AssignmentHistoryReader) *AssetHandler {
	return &AssetHandler{
		service:     service,
		auditReader: auditReader,
		history:     history,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/assets", h.GetAssets)
	router.GET("/assets/:id", h.GetAsset)
	router.POST("/assets", security.Authorize("staff"), h.CreateAsset)
	router.POST("/assets/:id/assign", security.Authorize("staff"), h.AssignAsset)
	router.POST("/assets/:id/return", security.Authorize("staff"), h.ReturnAsset)
	router.PATCH("/assets/:id/status", security.Authorize("staff"), h.ChangeStatus)
	router.GET("/assets/:id/logs", security.Authorize("staff"), h.GetAssetLogs)
	router.GET("/assets/:id/assignments", security.Authorize("staff"), h.GetAssetAssignments)
}

func (h *AssetHandler) GetAssets(c *gin.Context) {
	assets, err := h.service.GetAssets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	assetID, ok := assetIDParam(c)
	if !ok {
		return
	}

	asset, err := h.service.GetAsset(assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req models.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.service.CreateAsset(req, security.CurrentUserID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) AssignAsset(c *gin.Context) {
	assetID, ok := assetIDParam(c)
	if !ok {
		return
	}

	var req models.AssignAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.service.AssignAsset(assetID, req.UserID, security.CurrentUserID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) ReturnAsset(c *gin.Context) {
	assetID, ok := assetIDParam(c)
	if !ok {
		return
	}

	asset, err := h.service.ReturnAsset(assetID, security.CurrentUserID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) ChangeStatus(c *gin.Context) {
	assetID, ok := assetIDParam(c)
	if !ok {
		return
	}

	var req models.ChangeAssetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	status, err := metadata.NewStatus(req.Status)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset status", "details": err.Error()})
		return
	}

	asset, err := h.service.ChangeAssetStatus(assetID, status, security.CurrentUserID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) GetAssetLogs(c *gin.Context) {
	assetID, ok := assetIDParam(c)
	if !ok {
		return
	}

	entries, err := h.auditReader.GetResourceLog(assetID, "asset")
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *AssetHandler) GetAssetAssignments(c *gin.Context) {
	assetID, ok := assetIDParam(c)
	if !ok {
		return
	}

	history, err := h.history.GetAssignmentsByAsset(assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func assetIDParam(c *gin.Context) (int, bool) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID", "details": err.Error()})
		return 0, false
	}
	return assetID, true
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
