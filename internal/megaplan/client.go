// Package megaplan — клиент REST API Мегаплана (api/v3).
package megaplan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/crmcustoms/megaplan-expenses/config"
	"github.com/crmcustoms/megaplan-expenses/models"
)

// ErrDealNotFound — головная сделка отсутствует в Мегаплане.
var ErrDealNotFound = errors.New("сделка не найдена")

const requestTimeout = 30 * time.Second

// Client ходит в Мегаплан с bearer-токеном либо парой логин/пароль.
// Каждый вызов ограничен фиксированным таймаутом.
type Client struct {
	apiURL      string
	bearerToken string
	login       string
	password    string
	httpc       *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		apiURL:      strings.TrimRight(cfg.MegaplanAPIURL, "/"),
		bearerToken: cfg.BearerToken,
		login:       cfg.Login,
		password:    cfg.Password,
		httpc:       &http.Client{Timeout: requestTimeout},
	}
}

// envelope — стандартная обёртка ответов API: полезная нагрузка в data.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Deal возвращает полную запись сделки.
func (c *Client) Deal(ctx context.Context, id string) (models.RawRecord, error) {
	data, err := c.get(ctx, "/deal/"+id, nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, ErrDealNotFound
	}

	var rec models.RawRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("разбор сделки %s: %w", id, err)
	}
	return rec, nil
}

// LinkedDeals возвращает краткий список связанных сделок. В кратких
// записях нет кастомных полей — полные записи дозагружаются по id.
func (c *Client) LinkedDeals(ctx context.Context, id string) ([]models.RawRecord, error) {
	data, err := c.get(ctx, "/deal/"+id+"/linkedDeals", nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return []models.RawRecord{}, nil
	}

	var records []models.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("разбор связанных сделок %s: %w", id, err)
	}
	return records, nil
}

// TasksByDeal возвращает задачи, привязанные к сделке.
func (c *Client) TasksByDeal(ctx context.Context, dealID string, limit int) ([]models.RawRecord, error) {
	q := url.Values{}
	q.Set("deal", dealID)
	q.Set("limit", strconv.Itoa(limit))

	data, err := c.get(ctx, "/task", q)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return []models.RawRecord{}, nil
	}

	var records []models.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("разбор задач сделки %s: %w", dealID, err)
	}
	return records, nil
}

// UpdateDealField записывает денежное значение в одно поле сделки.
func (c *Client) UpdateDealField(ctx context.Context, dealID, fieldName string, value float64) error {
	payload := map[string]any{
		"contentType": "Deal",
		"id":          dealID,
		fieldName: map[string]any{
			"contentType": "Money",
			"value":       value,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("сборка запроса обновления сделки %s: %w", dealID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/deal/"+dealID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("создание запроса обновления сделки %s: %w", dealID, err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("обновление сделки %s: %w", dealID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("Мегаплан вернул статус %d при обновлении сделки %s: %s", resp.StatusCode, dealID, excerpt)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("создание запроса %s: %w", path, err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос к Мегаплану %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrDealNotFound
	}
	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("Мегаплан вернул статус %d для %s: %s", resp.StatusCode, path, excerpt)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("разбор ответа Мегаплана %s: %w", path, err)
	}
	return env.Data, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
		return
	}
	req.SetBasicAuth(c.login, c.password)
}
