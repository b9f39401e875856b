package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ishamahajan23/candidate-referral-system/internal/domain"
	"github.com/Ishamahajan23/candidate-referral-system/internal/dto"
	"github.com/Ishamahajan23/candidate-referral-system/internal/service"
	"github.com/Ishamahajan23/candidate-referral-system/internal/storage"
	"github.com/Ishamahajan23/candidate-referral-system/pkg/response"
)

// CandidateHandler handles candidate referral HTTP requests
type CandidateHandler struct {
	candidateService service.CandidateService
	development      bool
}

// NewCandidateHandler creates a new CandidateHandler
func NewCandidateHandler(candidateService service.CandidateService, development bool) *CandidateHandler {
	return &CandidateHandler{
		candidateService: candidateService,
		development:      development,
	}
}

// List returns candidates matching the optional search and status filters
// GET /api/candidates?search=&status=
func (h *CandidateHandler) List(c *gin.Context) {
	filter := &domain.CandidateFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	candidates, err := h.candidateService.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, err, h.development)
		return
	}

	response.List(c, candidates, len(candidates))
}

// Stats returns candidate counts grouped by status
// GET /api/candidates/stats
func (h *CandidateHandler) Stats(c *gin.Context) {
	stats, err := h.candidateService.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c, err, h.development)
		return
	}

	response.Success(c, stats)
}

// Create refers a new candidate, optionally with a PDF resume
// POST /api/candidates (multipart/form-data)
func (h *CandidateHandler) Create(c *gin.Context) {
	var req dto.CreateCandidateRequest
	req.Name = c.PostForm("name")
	req.Email = c.PostForm("email")
	req.Phone = c.PostForm("phone")
	req.JobTitle = c.PostForm("jobTitle")

	if fields := req.Validate(); fields != nil {
		response.ValidationError(c, "Validation failed", fields)
		return
	}

	var upload *storage.Upload
	fileHeader, err := c.FormFile("resume")
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			response.InternalError(c, openErr, h.development)
			return
		}
		defer file.Close()
		upload = &storage.Upload{
			Reader:      file,
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
		}
	case errors.Is(err, http.ErrMissingFile):
		// resume is optional
	default:
		response.BadRequest(c, "Invalid resume upload")
		return
	}

	candidate, err := h.candidateService.Create(c.Request.Context(), &req, upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCandidateExists):
			response.BadRequest(c, "Candidate with this email already exists")
		case errors.Is(err, storage.ErrUnsupportedMedia):
			response.BadRequest(c, "Only PDF files are allowed for resume upload.")
		case errors.Is(err, storage.ErrFileTooLarge):
			response.BadRequest(c, "File too large. Maximum file size is 5MB.")
		default:
			response.InternalError(c, err, h.development)
		}
		return
	}

	response.Created(c, "Candidate referred successfully", candidate)
}

// UpdateStatus changes a candidate's review status
// PUT /api/candidates/:id/status
func (h *CandidateHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Status is required")
		return
	}

	candidate, err := h.candidateService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, "Invalid status. Must be one of: Pending, Reviewed, Hired")
		case errors.Is(err, service.ErrCandidateNotFound):
			response.NotFound(c, "Candidate not found")
		default:
			response.InternalError(c, err, h.development)
		}
		return
	}

	response.SuccessWithMessage(c, "Candidate status updated successfully", candidate)
}

// Delete removes a candidate and its stored resume
// DELETE /api/candidates/:id
func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.candidateService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			response.NotFound(c, "Candidate not found")
			return
		}
		response.InternalError(c, err, h.development)
		return
	}

	response.SuccessWithMessage(c, "Candidate deleted successfully", nil)
}
