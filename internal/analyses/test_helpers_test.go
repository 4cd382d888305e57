package analyses

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/records"
)

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeLLM struct {
	mu      sync.Mutex
	out     string
	err     error
	prompts []string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type failingSink struct {
	calls int
}

func (s *failingSink) Save(ctx context.Context, rec records.Record) error {
	s.calls++
	return errors.New("table not found")
}

type archivedObject struct {
	key         string
	contentType string
	body        string
}

type fakeArchive struct {
	puts []archivedObject
	err  error
}

func (a *fakeArchive) Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error) {
	if a.err != nil {
		return 0, a.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	a.puts = append(a.puts, archivedObject{key: key, contentType: contentType, body: string(b)})
	return int64(len(b)), nil
}

// multipartRequest builds a form post with an optional file part.
func multipartRequest(t *testing.T, target string, file []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if file != nil {
		part, err := w.CreateFormFile("file", "resume.pdf")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(file); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

type testEnv struct {
	router *gin.Engine
	llm    *fakeLLM
	sink   *records.MemorySink
}

// setupRouter wires the real PDF extractor with a fake completion client.
func setupRouter(t *testing.T, llmClient *fakeLLM) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sink := records.NewMemorySink()
	svc := &Service{
		Extractor: extract.NewPDFExtractor(),
		LLM:       llmClient,
		Sink:      sink,
	}
	h := NewHandler(svc)

	r := gin.New()
	h.RegisterPageRoutes(r)
	h.RegisterRoutes(r.Group("/api/v1"))
	return testEnv{router: r, llm: llmClient, sink: sink}
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}
