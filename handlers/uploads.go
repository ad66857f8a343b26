package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"study-planner-api/models"
	"study-planner-api/services"
)

// readUpload returns the multipart "file" field. On failure it has already
// written the response.
func readUpload(c *gin.Context, maxSize int64) ([]byte, string, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No file uploaded", err)
		return nil, "", false
	}
	if maxSize > 0 && header.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Error:   "file too large",
			Message: fmt.Sprintf("%s is %d bytes, limit is %d", header.Filename, header.Size, maxSize),
		})
		return nil, "", false
	}

	f, err := header.Open()
	if err != nil {
		internalError(c, "failed to open upload", err)
		return nil, "", false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		internalError(c, "failed to read upload", err)
		return nil, "", false
	}
	return data, header.Filename, true
}

type SubjectHandler struct {
	importer      *services.SubjectImporter
	maxUploadSize int64
}

func NewSubjectHandler(importer *services.SubjectImporter, maxUploadSize int64) *SubjectHandler {
	return &SubjectHandler{
		importer:      importer,
		maxUploadSize: maxUploadSize,
	}
}

// Import reads subjects from an uploaded xlsx workbook.
func (h *SubjectHandler) Import(c *gin.Context) {
	log.Println("SubjectHandler - Import")

	data, name, ok := readUpload(c, h.maxUploadSize)
	if !ok {
		return
	}
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		badRequest(c, "unsupported file type", fmt.Errorf("%s is not an .xlsx workbook", name))
		return
	}

	subjects, err := h.importer.ParseSubjects(bytes.NewReader(data))
	if err != nil {
		log.Printf("Failed to parse %s: %v", name, err)
		badRequest(c, "failed to parse workbook", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}
