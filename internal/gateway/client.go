package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lexreader/internal/domain"

	"go.uber.org/zap"
)

// Client implements SyncGateway over the REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a REST gateway rooted at baseURL (for example http://localhost:8080/api)
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type translateRequest struct {
	Word string `json:"word"`
}

type translateResponse struct {
	Word        string        `json:"word"`
	Translation string        `json:"translation"`
	Status      domain.Status `json:"status"`
}

type uploadResponse struct {
	Message string      `json:"message"`
	Book    domain.Book `json:"book"`
}

// ListBooks fetches all uploaded books
func (c *Client) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	if err := c.do(ctx, "list books", http.MethodGet, "/books", nil, "", &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook fetches a book with its content. Unknown ids yield domain.ErrBookNotFound.
func (c *Client) GetBook(ctx context.Context, id string) (*domain.BookContent, error) {
	var content domain.BookContent
	err := c.do(ctx, "get book", http.MethodGet, "/books/"+url.PathEscape(id), nil, "", &content)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrBookNotFound, id)
		}
		return nil, err
	}
	return &content, nil
}

// UploadBook sends a document as multipart form field "file"
func (c *Client) UploadBook(ctx context.Context, filename string, r io.Reader) (*domain.Book, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("upload book: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload book: read document: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload book: %w", err)
	}

	var resp uploadResponse
	if err := c.do(ctx, "upload book", http.MethodPost, "/upload", &body, mw.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	return &resp.Book, nil
}

// ListWords fetches the whole vocabulary, familiar words included
func (c *Client) ListWords(ctx context.Context) ([]domain.Word, error) {
	var words []domain.Word
	if err := c.do(ctx, "list words", http.MethodGet, "/words", nil, "", &words); err != nil {
		return nil, err
	}
	return words, nil
}

// Translate requests a translation. The server's configuration-missing
// sentinel is returned as domain.TranslationConfigMissing.
func (c *Client) Translate(ctx context.Context, word string) (domain.Translation, error) {
	body, err := json.Marshal(translateRequest{Word: word})
	if err != nil {
		return domain.Translation{}, fmt.Errorf("translate: %w", err)
	}

	var resp translateResponse
	if err := c.do(ctx, "translate", http.MethodPost, "/translate", bytes.NewReader(body), "application/json", &resp); err != nil {
		return domain.Translation{}, err
	}

	if resp.Translation == domain.ConfigMissingSentinel {
		c.logger.Warn("Translation provider is not configured on the server", zap.String("word", word))
		return domain.Translation{Kind: domain.TranslationConfigMissing, Word: word}, nil
	}

	result := domain.Translation{
		Kind: domain.TranslationOK,
		Word: word,
		Text: resp.Translation,
	}
	if resp.Status.Valid() {
		result.Status = resp.Status
	}
	return result, nil
}

// SetWordStatus persists a word's status
func (c *Client) SetWordStatus(ctx context.Context, word domain.Word) error {
	body, err := json.Marshal(word)
	if err != nil {
		return fmt.Errorf("set word status: %w", err)
	}
	return c.do(ctx, "set word status", http.MethodPost, "/words", bytes.NewReader(body), "application/json", nil)
}

// Stats fetches the library summary. It is not part of SyncGateway.
func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := c.do(ctx, "stats", http.MethodGet, "/stats", nil, "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Op: op, Code: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 1024))
	if err != nil {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(data))
}
