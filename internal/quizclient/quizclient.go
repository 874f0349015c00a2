// Package quizclient talks to the assessment backend: it loads questions,
// submits results and uploads PDF reports.
package quizclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/bosserz/ged-assessment/internal/controller"
	"github.com/bosserz/ged-assessment/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

// UserAgent identifies the terminal client to the backend.
const UserAgent = "ged-quiz/1"

type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchQuestions loads the question set with GET /questions.
func (c *Client) FetchQuestions(ctx context.Context) ([]models.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/questions", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer closeBody(resp)

	var questions []models.Question
	if err := json.NewDecoder(resp.Body).Decode(&questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	return questions, nil
}

// submitRequest is the body of POST /submit.
type submitRequest struct {
	models.TestResult

	Reason models.SubmitReason `json:"reason,omitempty"`
}

// SubmitResult posts result to POST /submit. The acknowledgement is ignored.
func (c *Client) SubmitResult(ctx context.Context, result models.TestResult, reason models.SubmitReason) error {
	body, err := json.Marshal(submitRequest{TestResult: result, Reason: reason})
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("submit result: %w", err)
	}
	closeBody(resp)

	return nil
}

// UploadReport sends a PDF report to POST /upload-report as a multipart form.
func (c *Client) UploadReport(ctx context.Context, student models.Student, filename string, pdf []byte) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create file field: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return fmt.Errorf("write file field: %w", err)
	}

	fields := []struct{ name, value string }{
		{"student_name", student.Name},
		{"student_email", student.Email},
		{"filename", filename},
	}
	for _, field := range fields {
		if err := form.WriteField(field.name, field.value); err != nil {
			return fmt.Errorf("write %s field: %w", field.name, err)
		}
	}

	if err := form.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-report", &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("upload report: %w", err)
	}
	closeBody(resp)

	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		closeBody(resp)

		return nil, fmt.Errorf("%w %d from %s %s: %s", ErrUnexpectedStatus, resp.StatusCode, req.Method, req.URL.Path, strings.TrimSpace(string(detail)))
	}

	return resp, nil
}

var _ controller.Backend = (*Client)(nil)

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		slog.Error("failed to close response body", "error", err)
	}
}
