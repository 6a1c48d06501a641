package handlers

import (
	"net/http"

	"github.com/matejhrz/pixgram/backend/pkg/blob"
	"github.com/labstack/echo/v4"
)

// FileHandler streams stored images back out of the blob store.
type FileHandler struct {
	blobs blob.Store
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(blobStore blob.Store) *FileHandler {
	return &FileHandler{blobs: blobStore}
}

// RegisterFileRoutes registers the public file-serving route
func (h *FileHandler) RegisterFileRoutes(e *echo.Echo) {
	e.GET("/files/:id", h.GetFile)
}

// GetFile streams the file bytes for a /files/<id> ref.
func (h *FileHandler) GetFile(c echo.Context) error {
	rc, contentType, err := h.blobs.Open(c.Request().Context(), "/files/"+c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "File not found")
	}
	defer rc.Close()

	return c.Stream(http.StatusOK, contentType, rc)
}
