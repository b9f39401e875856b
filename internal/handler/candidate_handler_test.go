package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Ishamahajan23/candidate-referral-system/internal/domain"
	"github.com/Ishamahajan23/candidate-referral-system/internal/dto"
	"github.com/Ishamahajan23/candidate-referral-system/internal/service"
	"github.com/Ishamahajan23/candidate-referral-system/internal/storage"
	"github.com/Ishamahajan23/candidate-referral-system/pkg/response"
)

// MockCandidateService is a mock implementation of CandidateService
type MockCandidateService struct {
	candidates map[string]*domain.Candidate
	lastUpload *storage.Upload
	createErr  error
}

func NewMockCandidateService() *MockCandidateService {
	return &MockCandidateService{
		candidates: make(map[string]*domain.Candidate),
	}
}

func (m *MockCandidateService) List(ctx context.Context, filter *domain.CandidateFilter) ([]*domain.Candidate, error) {
	var out []*domain.Candidate
	for _, c := range m.candidates {
		if filter.Status != "" && filter.Status != domain.StatusAll && string(c.Status) != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *MockCandidateService) Stats(ctx context.Context) (*domain.CandidateStats, error) {
	stats := &domain.CandidateStats{}
	for _, c := range m.candidates {
		stats.Total++
		switch c.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusReviewed:
			stats.Reviewed++
		case domain.StatusHired:
			stats.Hired++
		}
	}
	return stats, nil
}

func (m *MockCandidateService) Create(ctx context.Context, req *dto.CreateCandidateRequest, resume *storage.Upload) (*domain.Candidate, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.lastUpload = resume
	candidate := &domain.Candidate{
		ID:        bson.NewObjectID(),
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Phone:     req.Phone,
		JobTitle:  req.JobTitle,
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}
	if resume != nil {
		candidate.ResumeURL = "/uploads/resume-test.pdf"
	}
	m.candidates[candidate.ID.Hex()] = candidate
	return candidate, nil
}

func (m *MockCandidateService) UpdateStatus(ctx context.Context, id string, status string) (*domain.Candidate, error) {
	st := domain.Status(status)
	if !st.Valid() {
		return nil, service.ErrInvalidStatus
	}
	c, ok := m.candidates[id]
	if !ok {
		return nil, service.ErrCandidateNotFound
	}
	c.Status = st
	return c, nil
}

func (m *MockCandidateService) Delete(ctx context.Context, id string) error {
	if _, ok := m.candidates[id]; !ok {
		return service.ErrCandidateNotFound
	}
	delete(m.candidates, id)
	return nil
}

// AddCandidate seeds the mock service
func (m *MockCandidateService) AddCandidate(c *domain.Candidate) {
	m.candidates[c.ID.Hex()] = c
}

func setupCandidateRouter(h *CandidateHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	candidates := router.Group("/api/candidates")
	{
		candidates.GET("", h.List)
		candidates.GET("/stats", h.Stats)
		candidates.POST("", h.Create)
		candidates.PUT("/:id/status", h.UpdateStatus)
		candidates.DELETE("/:id", h.Delete)
	}

	return router
}

func multipartForm(t *testing.T, fields map[string]string, filename string, fileBody []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%s) error = %v", k, err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("resume", filename)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := part.Write(fileBody); err != nil {
			t.Fatalf("part.Write() error = %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer.Close() error = %v", err)
	}
	return body, writer.FormDataContentType()
}

func validFormFields() map[string]string {
	return map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"phone":    "+1 555 123 4567",
		"jobTitle": "Backend Engineer",
	}
}

func TestCandidateHandler_Create(t *testing.T) {
	t.Run("successful referral", func(t *testing.T) {
		mockSvc := NewMockCandidateService()
		router := setupCandidateRouter(NewCandidateHandler(mockSvc, true))

		body, contentType := multipartForm(t, validFormFields(), "", nil)
		req := httptest.NewRequest(http.MethodPost, "/api/candidates", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Create status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
		}

		var resp response.Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if !resp.Success {
			t.Error("Create response Success = false, want true")
		}
		if resp.Message != "Candidate referred successfully" {
			t.Errorf("Create message = %q", resp.Message)
		}
	})

	t.Run("referral with resume file", func(t *testing.T) {
		mockSvc := NewMockCandidateService()
		router := setupCandidateRouter(NewCandidateHandler(mockSvc, true))

		body, contentType := multipartForm(t, validFormFields(), "cv.pdf", []byte("%PDF-1.4 test resume"))
		req := httptest.NewRequest(http.MethodPost, "/api/candidates", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Create status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
		}
		if mockSvc.lastUpload == nil {
			t.Fatal("Create did not forward the resume upload")
		}
		if mockSvc.lastUpload.Filename != "cv.pdf" {
			t.Errorf("Upload filename = %q, want cv.pdf", mockSvc.lastUpload.Filename)
		}
		if mockSvc.lastUpload.Size != int64(len("%PDF-1.4 test resume")) {
			t.Errorf("Upload size = %d", mockSvc.lastUpload.Size)
		}
	})

	t.Run("validation lists every violated field", func(t *testing.T) {
		mockSvc := NewMockCandidateService()
		router := setupCandidateRouter(NewCandidateHandler(mockSvc, true))

		body, contentType := multipartForm(t, map[string]string{
			"name":     "J",
			"email":    "not-an-email",
			"phone":    "123",
			"jobTitle": "",
		}, "", nil)
		req := httptest.NewRequest(http.MethodPost, "/api/candidates", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Create status = %d, want %d", w.Code, http.StatusBadRequest)
		}

		var resp response.Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		for _, field := range []string{"name", "email", "phone", "jobTitle"} {
			if resp.Errors[field] == "" {
				t.Errorf("Create errors missing field %q: %v", field, resp.Errors)
			}
		}
		if len(mockSvc.candidates) != 0 {
			t.Error("Create persisted a candidate despite validation failure")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockSvc := NewMockCandidateService()
		mockSvc.createErr = service.ErrCandidateExists
		router := setupCandidateRouter(NewCandidateHandler(mockSvc, true))

		body, contentType := multipartForm(t, validFormFields(), "", nil)
		req := httptest.NewRequest(http.MethodPost, "/api/candidates", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Create status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if !strings.Contains(w.Body.String(), "already exists") {
			t.Errorf("Create body = %s", w.Body.String())
		}
	})

	t.Run("non-PDF resume rejected", func(t *testing.T) {
		mockSvc := NewMockCandidateService()
		mockSvc.createErr = storage.ErrUnsupportedMedia
		router := setupCandidateRouter(NewCandidateHandler(mockSvc, true))

		body, contentType := multipartForm(t, validFormFields(), "cv.txt", []byte("plain text"))
		req := httptest.NewRequest(http.MethodPost, "/api/candidates", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Create status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if !strings.Contains(w.Body.String(), "Only PDF files are allowed") {
			t.Errorf("Create body = %s", w.Body.String())
		}
	})

	t.Run("oversized resume rejected", func(t *testing.T) {
		mockSvc := NewMockCandidateService()
		mockSvc.createErr = storage.ErrFileTooLarge
		router := setupCandidateRouter(NewCandidateHandler(mockSvc, true))

		body, contentType := multipartForm(t, validFormFields(), "cv.pdf", []byte("%PDF-1.4"))
		req := httptest.NewRequest(http.MethodPost, "/api/candidates", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Create status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if !strings.Contains(w.Body.String(), "Maximum file size is 5MB") {
			t.Errorf("Create body = %s", w.Body.String())
		}
	})
}

func TestCandidateHandler_List(t *testing.T) {
	mockSvc := NewMockCandidateService()
	router := setupCandidateRouter(NewCandidateHandler(mockSvc, true))

	mockSvc.AddCandidate(&domain.Candidate{ID: bson.NewObjectID(), Name: "Alice", Email: "alice@example.com", Status: domain.StatusPending})
	mockSvc.AddCandidate(&domain.Candidate{ID: bson.NewObjectID(), Name: "Bob", Email: "bob@example.com", Status: domain.StatusHired})

	t.Run("returns candidates with count", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/candidates", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("List status = %d, want %d", w.Code, http.StatusOK)
		}

		var resp response.Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if resp.Count == nil || *resp.Count != 2 {
			t.Errorf("List count = %v, want 2", resp.Count)
		}
	})

	t.Run("status filter is forwarded", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/candidates?status=Hired", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp response.Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if resp.Count == nil || *resp.Count != 1 {
			t.Errorf("List count = %v, want 1", resp.Count)
		}
	})
}

func TestCandidateHandler_Stats(t *testing.T) {
	mockSvc := NewMockCandidateService()
	router := setupCandidateRouter(NewCandidateHandler(mockSvc, true))

	mockSvc.AddCandidate(&domain.Candidate{ID: bson.NewObjectID(), Email: "a@example.com", Status: domain.StatusPending})
	mockSvc.AddCandidate(&domain.Candidate{ID: bson.NewObjectID(), Email: "b@example.com", Status: domain.StatusHired})

	req := httptest.NewRequest(http.MethodGet, "/api/candidates/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Stats status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Success bool                  `json:"success"`
		Data    domain.CandidateStats `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Data.Total != 2 || resp.Data.Pending != 1 || resp.Data.Hired != 1 {
		t.Errorf("Stats data = %+v", resp.Data)
	}
}

func TestCandidateHandler_UpdateStatus(t *testing.T) {
	mockSvc := NewMockCandidateService()
	router := setupCandidateRouter(NewCandidateHandler(mockSvc, true))

	candidate := &domain.Candidate{ID: bson.NewObjectID(), Email: "a@example.com", Status: domain.StatusPending}
	mockSvc.AddCandidate(candidate)

	t.Run("valid update", func(t *testing.T) {
		body := bytes.NewBufferString(`{"status":"Reviewed"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/candidates/"+candidate.ID.Hex()+"/status", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("UpdateStatus status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
		if candidate.Status != domain.StatusReviewed {
			t.Errorf("candidate status = %v, want Reviewed", candidate.Status)
		}
	})

	t.Run("invalid status value", func(t *testing.T) {
		body := bytes.NewBufferString(`{"status":"Archived"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/candidates/"+candidate.ID.Hex()+"/status", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("UpdateStatus status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if !strings.Contains(w.Body.String(), "Must be one of") {
			t.Errorf("UpdateStatus body = %s", w.Body.String())
		}
	})

	t.Run("unknown candidate", func(t *testing.T) {
		body := bytes.NewBufferString(`{"status":"Hired"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/candidates/"+bson.NewObjectID().Hex()+"/status", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("UpdateStatus status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("missing status", func(t *testing.T) {
		body := bytes.NewBufferString(`{}`)
		req := httptest.NewRequest(http.MethodPut, "/api/candidates/"+candidate.ID.Hex()+"/status", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("UpdateStatus status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestCandidateHandler_Delete(t *testing.T) {
	mockSvc := NewMockCandidateService()
	router := setupCandidateRouter(NewCandidateHandler(mockSvc, true))

	candidate := &domain.Candidate{ID: bson.NewObjectID(), Email: "a@example.com", Status: domain.StatusPending}
	mockSvc.AddCandidate(candidate)

	t.Run("successful delete", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/candidates/"+candidate.ID.Hex(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Delete status = %d, want %d", w.Code, http.StatusOK)
		}
		if len(mockSvc.candidates) != 0 {
			t.Error("Delete left the candidate in place")
		}
	})

	t.Run("unknown candidate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/candidates/"+bson.NewObjectID().Hex(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("Delete status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}
