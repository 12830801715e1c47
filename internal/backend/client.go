// Package backend is the HTTP client for the firm's scheduling backend.
// Enrichment fetches (contact parameters, cases, invoices) are best-effort
// with short timeouts; appointment submission gets a longer one.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/despacholegal-ai/intake-platform/internal/model"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
	"github.com/despacholegal-ai/intake-platform/pkg/metrics"
)

// ContactParam is one key/value contact parameter.
type ContactParam struct {
	Key   string `json:"clave"`
	Value string `json:"valor"`
}

// Case is a case summary; only the fields used to infer practice areas.
type Case struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Invoice carries the billed total used for fee statistics.
type Invoice struct {
	Total float64 `json:"importeTotal"`
}

// SubmissionError reports a non-201 response to an appointment submission.
type SubmissionError struct {
	Status int
	Body   string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("backend rejected appointment: status %d", e.Status)
}

// Client talks to the scheduling backend.
type Client struct {
	baseURL      string
	fetchClient  *http.Client
	submitClient *http.Client
	logger       *logger.Logger
	tracer       trace.Tracer
}

// New creates a backend client with bounded timeouts.
func New(baseURL string, fetchTimeout, submitTimeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:      baseURL,
		fetchClient:  &http.Client{Timeout: fetchTimeout},
		submitClient: &http.Client{Timeout: submitTimeout},
		logger:       log.WithComponent("backend"),
		tracer:       otel.Tracer("backend"),
	}
}

// ContactParams fetches the contact parameters as a key/value map.
func (c *Client) ContactParams(ctx context.Context) (map[string]string, error) {
	var params []ContactParam
	if err := c.getJSON(ctx, "/api/parametros/contact", &params); err != nil {
		return nil, err
	}
	info := make(map[string]string, len(params))
	for _, p := range params {
		info[p.Key] = p.Value
	}
	return info, nil
}

// Cases fetches case summaries.
func (c *Client) Cases(ctx context.Context) ([]Case, error) {
	var cases []Case
	if err := c.getJSON(ctx, "/api/cases", &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// Invoices fetches invoices.
func (c *Client) Invoices(ctx context.Context) ([]Invoice, error) {
	var invoices []Invoice
	if err := c.getJSON(ctx, "/api/invoices", &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// SubmitAppointment posts a completed record. Only HTTP 201 counts as
// success; any other status comes back as a *SubmissionError.
func (c *Client) SubmitAppointment(ctx context.Context, record *model.AppointmentRecord) (*model.SubmissionResult, error) {
	ctx, span := c.tracer.Start(ctx, "backend.SubmitAppointment")
	defer span.End()

	body, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/appointments/visitor", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.submitClient.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues("appointments", "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("appointment submission failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestDuration.WithLabelValues("appointments", strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		c.logger.Warn("appointment submission rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data),
		)
		return nil, &SubmissionError{Status: resp.StatusCode, Body: string(data)}
	}

	var result model.SubmissionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode submission response: %w", err)
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	resp, err := c.fetchClient.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(path, "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("backend fetch %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestDuration.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend fetch %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend fetch %s: decode failed: %w", path, err)
	}
	return nil
}
