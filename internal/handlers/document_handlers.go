package handlers

import (
	"net/http"
	"time"

	"medstock/internal/common"
	"medstock/internal/services"

	"github.com/labstack/echo/v4"
)

// DocumentHandlers handles receiving-document uploads (delivery notes,
// invoices) attached to items.
type DocumentHandlers struct {
	documentService services.DocumentService
}

func NewDocumentHandlers(documentService services.DocumentService) *DocumentHandlers {
	return &DocumentHandlers{documentService: documentService}
}

func (h *DocumentHandlers) UploadDocument(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("itemId"), "item id")
	if err != nil {
		return common.SendValidationError(c, "itemId", err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "file", "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	objectName, err := h.documentService.Upload(ctx, itemID, fileHeader.Filename, contentType, src, fileHeader.Size)
	if err != nil {
		return common.SendServerError(c, "Failed to store document")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"item_id":     itemID,
		"object_name": objectName,
	})
}

func (h *DocumentHandlers) GetDocumentURL(c echo.Context) error {
	objectName := c.QueryParam("object")
	if objectName == "" {
		return common.SendValidationError(c, "object", "object is required")
	}

	url, err := h.documentService.GetPresignedURL(objectName, 15*time.Minute)
	if err != nil {
		return common.SendServerError(c, "Failed to create document URL")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func (h *DocumentHandlers) DeleteDocument(c echo.Context) error {
	ctx := c.Request().Context()

	objectName := c.QueryParam("object")
	if objectName == "" {
		return common.SendValidationError(c, "object", "object is required")
	}

	if err := h.documentService.Delete(ctx, objectName); err != nil {
		return common.SendServerError(c, "Failed to delete document")
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
