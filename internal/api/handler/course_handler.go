package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/dto"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/service"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/internal/sheet"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/pkg/response"
)

// CourseHandler serves the course-modality endpoints.
type CourseHandler struct {
	courseSvc service.CourseService
	exportSvc service.ExportService
}

// NewCourseHandler builds the CourseHandler.
func NewCourseHandler(courseSvc service.CourseService, exportSvc service.ExportService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, exportSvc: exportSvc}
}

// Upload merges a course-modality spreadsheet into the store.
// POST /api/v1/courses/upload
func (h *CourseHandler) Upload(c *gin.Context) {
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

	resp, err := h.courseSvc.Upload(c.Request.Context(), file, pin)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, resp)
}

// Search looks up course records by instructor name.
// GET /api/v1/courses/search?name=
func (h *CourseHandler) Search(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		response.BadRequest(c, 10001, "name query is required")
		return
	}

	results, err := h.courseSvc.Search(c.Request.Context(), name)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": results})
}

// Lookup reveals one record after a password check. Read-only.
// POST /api/v1/courses/:id/lookup
func (h *CourseHandler) Lookup(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	var req dto.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "password is required (max 10 characters)")
		return
	}

	course, err := h.courseSvc.Lookup(c.Request.Context(), id, req.Password)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// Apply runs the apply workflow for one record.
// POST /api/v1/courses/:id/apply
func (h *CourseHandler) Apply(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "password is required; action must be save or cancel")
		return
	}

	resp, err := h.courseSvc.Apply(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, resp)
}

// Export streams the whole store as a workbook.
// GET /api/v1/courses/export
func (h *CourseHandler) Export(c *gin.Context) {
	pin := c.Query("admin_pin")
	if pin == "" {
		pin = c.GetHeader("X-Admin-PIN")
	}

	buf, filename, err := h.exportSvc.ExportCourses(c.Request.Context(), pin)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, xlsxContentType, buf.Bytes())
}

func (h *CourseHandler) recordID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, 10001, "record id must be an integer")
		return 0, false
	}
	return uint(id), true
}

// handleCourseError maps course business errors to HTTP responses.
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBadAdminPIN):
		response.Unauthorized(c, 11001, "invalid admin PIN")
	case errors.Is(err, service.ErrWrongPassword):
		response.Unauthorized(c, 13002, "wrong record password")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "course record not found")
	case errors.Is(err, service.ErrMissingReason):
		response.BadRequest(c, 13003, "reason text is required to apply")
	case errors.Is(err, service.ErrBadWorkbook):
		response.BadRequest(c, 10003, "could not parse spreadsheet")
	case errors.Is(err, sheet.ErrNoData):
		response.BadRequest(c, 10004, "spreadsheet is empty")
	case errors.Is(err, service.ErrTooManyRows):
		response.BadRequest(c, 10005, "spreadsheet exceeds the row limit")
	default:
		response.InternalError(c)
	}
}
