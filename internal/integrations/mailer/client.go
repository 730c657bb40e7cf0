package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент почтового провайдера (Resend-совместимый API)
type Client struct {
	baseURL    string
	apiKey     string
	fromEmail  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(baseURL, apiKey, fromEmail string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет письмо по шаблону
// Каждая отправка снабжается Idempotency-Key, чтобы ретраи на сетевых
// ошибках не дублировали письмо на стороне провайдера
func (c *Client) Send(ctx context.Context, to string, template Template, data map[string]interface{}) error {
	body := sendRequest{
		From:     c.fromEmail,
		To:       []string{to},
		Template: string(template),
		Data:     data,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrSendFailed, resp.StatusCode, string(respBody))
	}

	var sent sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil {
		// Письмо принято провайдером, нечитаемое тело ответа не повод для ошибки
		c.log.Warn("Send: email accepted but response decode failed: %v", err)
		return nil
	}

	c.log.Info("Send: email sent, template=%s, provider_id=%s", template, sent.ID)
	return nil
}
