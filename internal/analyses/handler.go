package analyses

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the JSON API routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract", h.extract)
	rg.POST("/analyses", h.analyze)
	rg.POST("/analyses/download", h.download)
}

func (h *Handler) extract(c *gin.Context) {
	data, err := readUpload(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	text, err := h.Svc.Extract(ctx, data)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"resumeText": text})
}

func (h *Handler) analyze(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}
	respond.OK(c, toResponse(res))
}

func (h *Handler) download(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", DownloadFileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(res.Completion.Raw))
}

func (h *Handler) run(c *gin.Context) (Result, bool) {
	data, err := readUpload(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		return Result{}, false
	}
	jobDescription := c.PostForm("jobDescription")
	if strings.TrimSpace(jobDescription) == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "jobDescription is required", nil)
		return Result{}, false
	}

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	res, err := h.Svc.Analyze(ctx, data, jobDescription)
	if err != nil {
		writeError(c, err)
		return Result{}, false
	}
	return res, true
}

// readUpload returns the bytes of the multipart "file" field.
func readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.New("file exceeds 10MB limit")
		}
		return nil, errors.New("file is required")
	}
	if fileHeader.Size > maxUploadSize {
		return nil, errors.New("file exceeds 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("unable to read file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("unable to read file")
	}
	return data, nil
}

// classify maps a pipeline error to a status, error code and user-facing message.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		msg := "invalid request"
		var se *StageError
		if errors.As(err, &se) {
			msg = strings.TrimPrefix(se.Err.Error(), ErrInvalidInput.Error()+": ")
		}
		return http.StatusBadRequest, ErrorCodeValidation, msg
	case errors.Is(err, extract.ErrNoText):
		return http.StatusUnprocessableEntity, ErrorCodeExtraction, "No text could be extracted from the PDF. Scanned documents are not supported."
	case errors.Is(err, extract.ErrExtraction):
		return http.StatusUnprocessableEntity, ErrorCodeExtraction, "Could not read the uploaded PDF."
	case errors.Is(err, llm.ErrNotConfigured):
		return http.StatusBadGateway, ErrorCodeAnalysis, "The analysis service is not configured."
	case errors.Is(err, llm.ErrRequestFailed):
		return http.StatusBadGateway, ErrorCodeAnalysis, "The analysis request failed. Please try again."
	default:
		return http.StatusInternalServerError, ErrorCodeInternal, "failed to analyze resume"
	}
}

func writeError(c *gin.Context, err error) {
	status, code, msg := classify(err)
	respond.Error(c, status, code, msg, nil)
}
