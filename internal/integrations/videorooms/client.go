package videorooms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с провайдером видеокомнат (Daily-совместимый REST API)
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента видеокомнат
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// RoomName возвращает детерминированное имя комнаты для сессии
// Имя стабильно, поэтому создание комнаты идемпотентно: повторный вызов
// для той же сессии находит уже существующую комнату
func RoomName(sessionID int64) string {
	return fmt.Sprintf("mh-session-%d", sessionID)
}

// CreateRoom создает комнату с указанным именем
func (c *Client) CreateRoom(ctx context.Context, name string, expiry time.Time, maxParticipants int) (*Room, error) {
	body := createRoomRequest{
		Name: name,
		Properties: createRoomProperties{
			Exp:             expiry.Unix(),
			MaxParticipants: maxParticipants,
			EjectAtRoomExp:  true,
		},
	}

	var room Room
	if err := c.do(ctx, http.MethodPost, "/rooms", &body, &room); err != nil {
		return nil, err
	}

	return &room, nil
}

// GetRoom получает комнату по имени
// Возвращает ErrRoomNotFound, если комната не существует
func (c *Client) GetRoom(ctx context.Context, name string) (*Room, error) {
	var room Room
	if err := c.do(ctx, http.MethodGet, "/rooms/"+name, nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// EnsureRoom находит или создает комнату с указанным именем
// Благодаря детерминированному имени вызов идемпотентен
func (c *Client) EnsureRoom(ctx context.Context, name string, expiry time.Time, maxParticipants int) (*Room, error) {
	room, err := c.GetRoom(ctx, name)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, ErrRoomNotFound) {
		return nil, err
	}
	return c.CreateRoom(ctx, name, expiry, maxParticipants)
}

// CreateJoinToken выпускает токен для входа участника в комнату
func (c *Client) CreateJoinToken(ctx context.Context, roomName, userName string, isOwner bool, expiry time.Time) (string, error) {
	body := createTokenRequest{
		Properties: createTokenProperties{
			RoomName: roomName,
			UserName: userName,
			IsOwner:  isOwner,
			Exp:      expiry.Unix(),
		},
	}

	var resp createTokenResponse
	if err := c.do(ctx, http.MethodPost, "/meeting-tokens", &body, &resp); err != nil {
		return "", err
	}

	if resp.Token == "" {
		return "", fmt.Errorf("%w: empty token in response", ErrInvalidResponse)
	}

	return resp.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrRoomNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
		}
	}

	return nil
}
