package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/service"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/sheet"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FacultyHandler serves the instructor endpoints.
type FacultyHandler struct {
	facultySvc service.FacultyService
}

// NewFacultyHandler builds the FacultyHandler.
func NewFacultyHandler(facultySvc service.FacultyService) *FacultyHandler {
	return &FacultyHandler{facultySvc: facultySvc}
}

// Upload merges an instructor spreadsheet into the store.
// POST /api/v1/faculty/upload
func (h *FacultyHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "spreadsheet file is required")
		return
	}
	pin := c.PostForm("admin_pin")

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10002, "could not read uploaded file")
		return
	}
	defer file.Close()

	resp, err := h.facultySvc.Upload(c.Request.Context(), file, pin)
	if err != nil {
		h.handleFacultyError(c, err)
		return
	}

	response.OK(c, resp)
}

// Enrich augments an uploaded sheet with stored instructor details.
// POST /api/v1/faculty/enrich
func (h *FacultyHandler) Enrich(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "spreadsheet file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10002, "could not read uploaded file")
		return
	}
	defer file.Close()

	buf, filename, err := h.facultySvc.Enrich(c.Request.Context(), file)
	if err != nil {
		h.handleFacultyError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, xlsxContentType, buf.Bytes())
}

// Search looks up instructors by Korean or English name.
// GET /api/v1/faculty/search?name=
func (h *FacultyHandler) Search(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		response.BadRequest(c, 10001, "name query is required")
		return
	}

	results, err := h.facultySvc.Search(c.Request.Context(), name)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": results})
}

// handleFacultyError maps faculty business errors to HTTP responses.
func (h *FacultyHandler) handleFacultyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBadAdminPIN):
		response.Unauthorized(c, 11001, "invalid admin PIN")
	case errors.Is(err, service.ErrBadWorkbook):
		response.BadRequest(c, 10003, "could not parse spreadsheet")
	case errors.Is(err, sheet.ErrNoData):
		response.BadRequest(c, 10004, "spreadsheet is empty")
	case errors.Is(err, service.ErrTooManyRows):
		response.BadRequest(c, 10005, "spreadsheet exceeds the row limit")
	case errors.Is(err, service.ErrMissingKeyColumn):
		response.BadRequest(c, 12001, "spreadsheet needs a Korean_name column")
	default:
		response.InternalError(c)
	}
}
