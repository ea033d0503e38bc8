// Package gotenberg — клиент сервиса конвертации HTML в PDF.
package gotenberg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"syscall"
	"time"
)

// ErrServiceUnavailable — Gotenberg не принимает соединения. Обработчик
// отдаёт на это 503, а не общий 500.
var ErrServiceUnavailable = errors.New("сервис генерации PDF недоступен")

const convertTimeout = 30 * time.Second

type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: convertTimeout},
	}
}

// ConvertHTML отправляет готовый HTML-документ в Gotenberg и возвращает
// байты PDF.
func (c *Client) ConvertHTML(ctx context.Context, html []byte) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка создания части формы для файла: %w", err)
	}
	if _, err := part.Write(html); err != nil {
		return nil, fmt.Errorf("ошибка записи HTML в часть формы: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("ошибка закрытия multipart-формы: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса к Gotenberg: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
		return nil, fmt.Errorf("ошибка отправки запроса к Gotenberg: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ошибка конвертации HTML в PDF через Gotenberg: статус %d, ответ: %s", resp.StatusCode, string(respBody))
	}

	pdfBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения PDF ответа от Gotenberg: %w", err)
	}
	return pdfBytes, nil
}
