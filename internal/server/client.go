package server

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
	"time"

	"telegram-chat-stats/internal/domain"
)

// ErrReportNotFound возвращается, если отчета с таким хешем нет на сервере.
var ErrReportNotFound = errors.New("отчет не найден")

// ReportResponse - ответ API с отчетом.
type ReportResponse struct {
	ReportID string         `json:"report_id"`
	Hash     string         `json:"hash"`
	Cached   bool           `json:"cached"`
	Report   *domain.Report `json:"report"`
}

// Client - клиент для взаимодействия с API сервера.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создает новый экземпляр Client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Upload отправляет архив на сервер и возвращает построенный отчет.
func (c *Client) Upload(ctx context.Context, fileName string, content io.Reader) (*ReportResponse, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file for %s: %w", fileName, err)
	}
	if _, err = io.Copy(fw, content); err != nil {
		return nil, fmt.Errorf("failed to copy file content for %s: %w", fileName, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/reports", &b)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, http.StatusCreated, http.StatusOK)
}

// Report запрашивает ранее построенный отчет по хешу архива.
func (c *Client) Report(ctx context.Context, hash string) (*ReportResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/reports/"+url.PathEscape(hash), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, http.StatusOK)
}

func (c *Client) do(req *http.Request, expected ...int) (*ReportResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	for _, code := range expected {
		if resp.StatusCode != code {
			continue
		}
		var result ReportResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		if result.Report == nil {
			return nil, errors.New("response has no report")
		}
		return &result, nil
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrReportNotFound
	}
	var apiErr errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Error != "" {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, apiErr.Error)
	}
	return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}
