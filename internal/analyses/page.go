package analyses

import (
	"embed"
	"encoding/base64"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"resume-analyzer/internal/shared/telemetry"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

type pageData struct {
	JobDescription string
	ResumeText     string
	Error          string
	Result         *pageResult
}

type pageResult struct {
	HasReasoning bool
	Thinking     string
	Response     string
	DownloadHref template.URL
	FileName     string
}

// RegisterPageRoutes attaches the HTML form and result page.
func (h *Handler) RegisterPageRoutes(r gin.IRoutes) {
	r.GET("/", h.showForm)
	r.POST("/", h.submitForm)
}

func (h *Handler) showForm(c *gin.Context) {
	renderPage(c, http.StatusOK, pageData{})
}

func (h *Handler) submitForm(c *gin.Context) {
	data, err := readUpload(c)
	jobDescription := c.PostForm("jobDescription")
	if err != nil {
		h.pageError(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), pageData{JobDescription: jobDescription})
		return
	}
	if strings.TrimSpace(jobDescription) == "" {
		h.pageError(c, http.StatusBadRequest, ErrorCodeValidation, "Please upload a resume and enter a job description.", pageData{})
		return
	}

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	res, err := h.Svc.Analyze(ctx, data, jobDescription)
	if err != nil {
		status, code, msg := classify(err)
		h.pageError(c, status, code, msg, pageData{
			JobDescription: jobDescription,
			ResumeText:     res.ResumeText,
		})
		return
	}

	renderPage(c, http.StatusOK, pageData{
		JobDescription: jobDescription,
		ResumeText:     res.ResumeText,
		Result: &pageResult{
			HasReasoning: res.Completion.HasReasoning,
			Thinking:     res.Completion.Reasoning(),
			Response:     res.Completion.Answer(),
			DownloadHref: downloadHref(res.Completion.Raw),
			FileName:     DownloadFileName,
		},
	})
}

func (h *Handler) pageError(c *gin.Context, status int, code, message string, data pageData) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})
	data.Error = message
	renderPage(c, status, data)
}

func renderPage(c *gin.Context, status int, data pageData) {
	c.Render(status, render.HTML{Template: pageTemplate, Name: "page", Data: data})
}

// downloadHref embeds the raw completion as a base64 data URI.
func downloadHref(raw string) template.URL {
	return template.URL("data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte(raw)))
}
