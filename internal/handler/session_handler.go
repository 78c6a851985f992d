package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"runsheet/internal/csvexport"
	"runsheet/internal/domain"
	"runsheet/internal/service"
	"runsheet/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SessionHandler handles runsheet session endpoints.
type SessionHandler struct {
	sessionService service.SessionService
	now            func() time.Time
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, now: time.Now}
}

// Create handles POST /api/v1/sessions
// @Summary Start a runsheet session
// @Description Segment raw runsheet text into rows and open a new session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Runsheet text and tract details"
// @Success 201 {object} Response{data=domain.Session} "Session created"
// @Failure 400 {object} ErrorResponseBody "Validation error or empty document"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	session, err := h.sessionService.Create(c.Request.Context(), &service.CreateSessionInput{
		Text:       req.Text,
		Prospect:   req.Prospect,
		TotalAcres: req.TotalAcres,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, session)
}

// List handles GET /api/v1/sessions
// @Summary List sessions
// @Description List the IDs of every stored session, most recent first
// @Tags sessions
// @Produce json
// @Success 200 {object} Response{data=[]string} "Session IDs"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	ids, err := h.sessionService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	RespondOK(c, out)
}

// GetByID handles GET /api/v1/sessions/:id
// @Summary Get session
// @Description Get a session with all rows and the ownership at the current row
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=domain.Session} "Session"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetByID(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, session)
}

// Delete handles DELETE /api/v1/sessions/:id
// @Summary Delete session
// @Description Delete a session and its checkpoint
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response "Session deleted"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "session deleted"})
}

// AnalyzeRow handles POST /api/v1/sessions/:id/rows/:row/analyze
// @Summary Analyze a row
// @Description Send one row and the prior ownership to the analysis provider
// @Tags rows
// @Produce json
// @Param id path string true "Session ID"
// @Param row path int true "Row number (1-based)"
// @Success 200 {object} Response{data=domain.DocumentRow} "Analyzed row"
// @Failure 404 {object} ErrorResponseBody "Session or row not found"
// @Failure 409 {object} ErrorResponseBody "Another row is being analyzed or session completed"
// @Failure 429 {object} ErrorResponseBody "Provider rate limited"
// @Failure 502 {object} ErrorResponseBody "Analysis failed"
// @Failure 504 {object} ErrorResponseBody "Analysis timed out"
// @Security BearerAuth
// @Router /sessions/{id}/rows/{row}/analyze [post]
func (h *SessionHandler) AnalyzeRow(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	rowNumber, ok := parseRow(c)
	if !ok {
		return
	}

	row, err := h.sessionService.AnalyzeRow(c.Request.Context(), id, rowNumber)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, row)
}

// CorrectRow handles PUT /api/v1/sessions/:id/rows/:row/analysis
// @Summary Correct a row's analysis
// @Description Replace the analysis of an analyzed or approved row with a user-edited version
// @Tags rows
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param row path int true "Row number (1-based)"
// @Param request body domain.Analysis true "Corrected analysis"
// @Success 200 {object} Response{data=domain.DocumentRow} "Corrected row"
// @Failure 400 {object} ErrorResponseBody "Invalid analysis"
// @Failure 404 {object} ErrorResponseBody "Session or row not found"
// @Failure 409 {object} ErrorResponseBody "Row has not been analyzed"
// @Security BearerAuth
// @Router /sessions/{id}/rows/{row}/analysis [put]
func (h *SessionHandler) CorrectRow(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	rowNumber, ok := parseRow(c)
	if !ok {
		return
	}

	var analysis domain.Analysis
	if err := c.ShouldBindJSON(&analysis); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	row, err := h.sessionService.CorrectRow(c.Request.Context(), id, rowNumber, &analysis)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, row)
}

// ApproveRow handles POST /api/v1/sessions/:id/rows/:row/approve
// @Summary Approve a row
// @Description Apply an analyzed row to the ownership ledger. When grantees may already be owners
// @Description and no answer is supplied, responds 409 with the candidate matches in data.
// @Tags rows
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param row path int true "Row number (1-based)"
// @Param request body ApproveRowRequest false "Answers to candidate name matches"
// @Success 200 {object} Response{data=ApproveRowResponse} "Row applied"
// @Failure 404 {object} ErrorResponseBody "Session or row not found"
// @Failure 409 {object} ConfirmationRequiredResponse "Confirmation required or invalid row state"
// @Security BearerAuth
// @Router /sessions/{id}/rows/{row}/approve [post]
func (h *SessionHandler) ApproveRow(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	rowNumber, ok := parseRow(c)
	if !ok {
		return
	}

	var req ApproveRowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	result, err := h.sessionService.ApproveRow(c.Request.Context(), id, rowNumber, &service.ApproveInput{
		Matches:       req.Matches,
		TreatAllAsNew: req.TreatAllAsNew,
	})
	if err != nil {
		var confirm *service.ConfirmationRequiredError
		if errors.As(err, &confirm) {
			status, code, msg := MapDomainError(err)
			c.JSON(status, APIResponse{
				Success: false,
				Data:    confirm.Candidates,
				Error:   &APIError{Code: code, Message: msg},
			})
			return
		}
		HandleError(c, err)
		return
	}

	RespondOK(c, ApproveRowResponse{
		Session:   result.Session,
		Warnings:  result.Warnings,
		Duplicate: result.Duplicate,
		Completed: result.Completed,
	})
}

// Navigate handles POST /api/v1/sessions/:id/navigate
// @Summary Move to a row
// @Description Set the current row and show the ownership as it stood before it
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body NavigateRequest true "Target row"
// @Success 200 {object} Response{data=domain.Session} "Session"
// @Failure 404 {object} ErrorResponseBody "Session or row not found"
// @Security BearerAuth
// @Router /sessions/{id}/navigate [post]
func (h *SessionHandler) Navigate(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	session, err := h.sessionService.Navigate(c.Request.Context(), id, req.Row)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, session)
}

// Ownership handles GET /api/v1/sessions/:id/ownership
// @Summary Ownership at a row
// @Description Ownership as of the end of a row. Omit row for the latest state.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param row query int false "Row number; 0 for latest" default(0)
// @Success 200 {object} Response{data=domain.OngoingOwnership} "Ownership"
// @Failure 404 {object} ErrorResponseBody "Session or row not found"
// @Security BearerAuth
// @Router /sessions/{id}/ownership [get]
func (h *SessionHandler) Ownership(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	rowNumber, err := strconv.Atoi(c.DefaultQuery("row", "0"))
	if err != nil || rowNumber < 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_ROW", "row must be a non-negative integer")
		return
	}

	ownership, err := h.sessionService.OwnershipAt(c.Request.Context(), id, rowNumber)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ownership)
}

// Reset handles POST /api/v1/sessions/:id/reset
// @Summary Start fresh
// @Description Discard every analysis and approval and return all rows to pending
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=domain.Session} "Reset session"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /sessions/{id}/reset [post]
func (h *SessionHandler) Reset(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionService.StartFresh(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, session)
}

// Summary handles GET /api/v1/sessions/:id/summary
// @Summary Ownership summary
// @Description Final owners, unresolved transfers and totals for a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=domain.OwnershipSummary} "Summary"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /sessions/{id}/summary [get]
func (h *SessionHandler) Summary(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	summary, err := h.sessionService.Summary(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// ExportCSV handles GET /api/v1/sessions/:id/export.csv
// @Summary Export ownership as CSV
// @Description Download the current owners and totals as a CSV file
// @Tags export
// @Produce text/csv
// @Param id path string true "Session ID"
// @Success 200 {file} file "CSV file"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /sessions/{id}/export.csv [get]
func (h *SessionHandler) ExportCSV(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	summary, err := h.sessionService.Summary(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteSummary(summary); err != nil {
		log.Printf("SessionHandler.ExportCSV: writing session %s: %v", id, err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "failed to write CSV")
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("SessionHandler.ExportCSV: flushing session %s: %v", id, err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "failed to write CSV")
		return
	}

	filename := csvexport.BuildFilename(summary.Prospect, "csv", h.now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX handles GET /api/v1/sessions/:id/export.xlsx
// @Summary Export ownership as Excel
// @Description Download owners and unresolved transfers as an Excel workbook
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Session ID"
// @Success 200 {file} file "XLSX file"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /sessions/{id}/export.xlsx [get]
func (h *SessionHandler) ExportXLSX(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	summary, err := h.sessionService.Summary(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsxexport.Write(&buf, summary); err != nil {
		log.Printf("SessionHandler.ExportXLSX: writing session %s: %v", id, err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "failed to write workbook")
		return
	}

	filename := csvexport.BuildFilename(summary.Prospect, "xlsx", h.now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
