package portfolioclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfoliowidget/internal/domain"
)

const HistoryPath = "/api/v1/portfolio/alpaca/history"

type ErrorKind string

const (
	KindNetwork ErrorKind = "network"
	KindStatus  ErrorKind = "status"
	KindParse   ErrorKind = "parse"
	KindSchema  ErrorKind = "schema"
)

// FetchError tags a failed history read with the stage it failed at.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("could not reach portfolio service: %v", e.Err)
	case KindStatus:
		return fmt.Sprintf("portfolio service returned %d: %v", e.StatusCode, e.Err)
	case KindParse:
		return fmt.Sprintf("portfolio service sent malformed JSON: %v", e.Err)
	case KindSchema:
		return fmt.Sprintf("unexpected portfolio payload: %v", e.Err)
	}
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchHistory issues a single GET for the portfolio history. It never
// retries; every failure comes back as a *FetchError.
func (c *Client) FetchHistory(ctx context.Context) (*domain.PortfolioHistory, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+HistoryPath, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: err}
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &FetchError{
			Kind:       KindStatus,
			StatusCode: response.StatusCode,
			Err:        errors.New(errorMessage(responseBytes)),
		}
	}

	if string(bytes.TrimSpace(responseBytes)) == "null" {
		return nil, &FetchError{Kind: KindSchema, Err: fmt.Errorf("%w: body is null", domain.ErrSchemaMismatch)}
	}

	out := domain.PortfolioHistory{}
	if err := json.Unmarshal(responseBytes, &out); err != nil {
		if errors.Is(err, domain.ErrSchemaMismatch) {
			return nil, &FetchError{Kind: KindSchema, Err: err}
		}
		return nil, &FetchError{Kind: KindParse, Err: err}
	}

	return &out, nil
}

// errorMessage pulls a human readable reason out of an error body, which
// is {"error": ...} from our api and {"detail": ...} from older backends
func errorMessage(body []byte) string {
	payload := struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}{}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty response body"
	}
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}
