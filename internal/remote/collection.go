package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/meetocure/patient-dashboard/internal/remote"
	maxBodyBytes        = 10 << 20
)

// Endpoint describes where a collection lives and how it is authenticated.
type Endpoint struct {
	Name        string // e.g. "doctors"; used in logs, spans and errors
	Path        string // e.g. "/api/doctor"
	RequireAuth bool
}

// Collection fetches a JSON array of T from one upstream endpoint. The
// default-value policy is applied to every decoded element.
type Collection[T any] struct {
	endpoint   Endpoint
	baseURL    string
	httpClient *http.Client
	normalize  func(T) T

	tracer  trace.Tracer
	fetches metric.Int64Counter
}

// NewCollection creates a collection rooted at baseURL. A nil client gets a
// default one with a 15 second timeout; a nil normalize leaves records as decoded.
func NewCollection[T any](baseURL string, client *http.Client, endpoint Endpoint, normalize func(T) T) *Collection[T] {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if normalize == nil {
		normalize = func(v T) T { return v }
	}
	fetches, err := otel.Meter(instrumentationName).Int64Counter(
		"dashboard.upstream.fetches",
		metric.WithDescription("Upstream collection fetches by outcome"),
	)
	if err != nil {
		slog.Warn("Failed to create upstream fetch counter", "collection", endpoint.Name, "error", err)
		fetches = noop.Int64Counter{}
	}
	return &Collection[T]{
		endpoint:   endpoint,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		normalize:  normalize,
		tracer:     otel.Tracer(instrumentationName),
		fetches:    fetches,
	}
}

// Name returns the collection's display name.
func (c *Collection[T]) Name() string { return c.endpoint.Name }

// RequiresAuth reports whether Fetch needs a bearer token.
func (c *Collection[T]) RequiresAuth() bool { return c.endpoint.RequireAuth }

// Fetch retrieves the collection. A 2xx body that is not a JSON array yields an
// empty slice and a nil error. Non-2xx responses return *Error.
func (c *Collection[T]) Fetch(ctx context.Context, token string) ([]T, error) {
	if c.endpoint.RequireAuth && token == "" {
		return nil, ErrMissingCredentials
	}

	targetURL := c.baseURL + c.endpoint.Path
	ctx, span := c.tracer.Start(ctx, "remote.Fetch "+c.endpoint.Name, trace.WithAttributes(
		attribute.String("collection", c.endpoint.Name),
		attribute.String("url", targetURL),
	))
	defer span.End()

	items, err := c.fetch(ctx, targetURL, token)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, Message(err))
	} else {
		span.SetAttributes(attribute.Int("itemCount", len(items)))
	}
	c.fetches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("collection", c.endpoint.Name),
		attribute.String("outcome", outcome),
	))
	return items, err
}

func (c *Collection[T]) fetch(ctx context.Context, targetURL, token string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request to %s: %w", targetURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.endpoint.RequireAuth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			slog.DebugContext(ctx, "Upstream request cancelled", "collection", c.endpoint.Name, "url", targetURL, "error", err)
		} else {
			slog.ErrorContext(ctx, "Upstream request failed", "collection", c.endpoint.Name, "url", targetURL, "error", err)
		}
		return nil, fmt.Errorf("failed to get %s: %w", c.endpoint.Name, err)
	}
	defer resp.Body.Close()

	logAttrs := []any{"collection", c.endpoint.Name, "url", targetURL, "statusCode", resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read upstream response body", append(logAttrs, "error", err)...)
		return nil, fmt.Errorf("failed to read %s response body: %w", c.endpoint.Name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(c.endpoint.Name, resp.StatusCode, body)
		slog.ErrorContext(ctx, "Upstream returned non-2xx status", append(logAttrs, "message", apiErr.Message)...)
		return nil, apiErr
	}

	// Bodies that are not a JSON array are treated as an empty collection.
	items, malformed, ok := decodeSequence[T](body)
	if !ok {
		slog.WarnContext(ctx, "Upstream body is not an array, treating as empty", logAttrs...)
		return []T{}, nil
	}
	if malformed > 0 {
		slog.WarnContext(ctx, "Upstream array has elements that do not match the record shape", append(logAttrs, "malformed", malformed)...)
	}
	for i := range items {
		items[i] = c.normalize(items[i])
	}

	slog.DebugContext(ctx, "Fetched upstream collection", append(logAttrs, "itemCount", len(items))...)
	return items, nil
}

// decodeSequence decodes body as a JSON array of T, one element at a time.
// ok is false only when the body is not a well-formed array. An element that
// does not match T keeps whatever fields did decode, so the result always has
// one record per array element; malformed counts those elements.
func decodeSequence[T any](body []byte) (items []T, malformed int, ok bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, 0, false
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, 0, false
	}
	items = make([]T, len(raw))
	for i, element := range raw {
		if err := json.Unmarshal(element, &items[i]); err != nil {
			malformed++
		}
	}
	return items, malformed, true
}
