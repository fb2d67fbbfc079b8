// Package api is the authenticated HTTP client for the chat backend. Every
// method issues a single JSON request, no retries, and decodes either the
// typed response or the backend's {error} body.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"

	"chatapp-client/internal/models"

	"go.uber.org/zap"
)

const defaultBaseURL = "http://localhost:8080/api"

// BaseURLFromEnv reads CHAT_API_BASE_URL, falling back to the local default.
func BaseURLFromEnv() string {
	if base := os.Getenv("CHAT_API_BASE_URL"); base != "" {
		return base
	}
	return defaultBaseURL
}

// Error carries the HTTP status and the message from the backend's {error}
// body, or the status text when no body could be parsed.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
	sugar   *zap.SugaredLogger

	mutex sync.RWMutex
	token string
}

func New(baseURL string, sugar *zap.SugaredLogger) *Client {
	if baseURL == "" {
		baseURL = BaseURLFromEnv()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		sugar:   sugar,
	}
}

// SetToken sets the bearer token attached to every subsequent request. An
// empty string clears it.
func (c *Client) SetToken(token string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.sugar.Debugf("%s %s", method, path)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		message := res.Status
		var errBody struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(res.Body).Decode(&errBody); decodeErr == nil && errBody.Error != "" {
			message = errBody.Error
		}
		c.sugar.Debugf("%s %s failed with status %d: %s", method, path, res.StatusCode, message)
		return &Error{Status: res.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// Auth

func (c *Client) Login(ctx context.Context, email string, password string) (models.AuthResponse, error) {
	var res models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	return res, err
}

func (c *Client) Register(ctx context.Context, username string, email string, password string) (models.AuthResponse, error) {
	var res models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &res)
	return res, err
}

// Servers

func (c *Client) Servers(ctx context.Context) ([]models.Server, error) {
	var servers []models.Server
	err := c.do(ctx, http.MethodGet, "/servers", nil, &servers)
	return servers, err
}

func (c *Client) CreateServer(ctx context.Context, name string) (models.Server, error) {
	var server models.Server
	err := c.do(ctx, http.MethodPost, "/servers", map[string]string{"name": name}, &server)
	return server, err
}

func (c *Client) UpdateServer(ctx context.Context, id string, patch models.ServerPatch) (models.Server, error) {
	var server models.Server
	err := c.do(ctx, http.MethodPatch, "/servers/"+url.PathEscape(id), patch, &server)
	return server, err
}

func (c *Client) DeleteServer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/servers/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ServerMembers(ctx context.Context, serverID string) ([]models.ServerMember, error) {
	var members []models.ServerMember
	err := c.do(ctx, http.MethodGet, "/servers/"+url.PathEscape(serverID)+"/members", nil, &members)
	return members, err
}

// Channels

func (c *Client) Channels(ctx context.Context, serverID string) ([]models.Channel, error) {
	var channels []models.Channel
	err := c.do(ctx, http.MethodGet, "/servers/"+url.PathEscape(serverID)+"/channels", nil, &channels)
	return channels, err
}

func (c *Client) CreateChannel(ctx context.Context, serverID string, name string, category string) (models.Channel, error) {
	body := map[string]string{"name": name}
	if category != "" {
		body["category"] = category
	}

	var channel models.Channel
	err := c.do(ctx, http.MethodPost, "/servers/"+url.PathEscape(serverID)+"/channels", body, &channel)
	return channel, err
}

// Messages

// Messages fetches a channel's history. A non-empty before id requests the
// page preceding that message.
func (c *Client) Messages(ctx context.Context, channelID string, before string) ([]models.Message, error) {
	path := "/channels/" + url.PathEscape(channelID) + "/messages"
	if before != "" {
		path += "?before=" + url.QueryEscape(before)
	}

	var messages []models.Message
	err := c.do(ctx, http.MethodGet, path, nil, &messages)
	return messages, err
}

func (c *Client) SendMessage(ctx context.Context, channelID string, content string) (models.Message, error) {
	var message models.Message
	err := c.do(ctx, http.MethodPost, "/channels/"+url.PathEscape(channelID)+"/messages", map[string]string{"content": content}, &message)
	return message, err
}

func (c *Client) EditMessage(ctx context.Context, messageID string, content string) (models.Message, error) {
	var message models.Message
	err := c.do(ctx, http.MethodPatch, "/messages/"+url.PathEscape(messageID), map[string]string{"content": content}, &message)
	return message, err
}

func (c *Client) DeleteMessage(ctx context.Context, messageID string) error {
	return c.do(ctx, http.MethodDelete, "/messages/"+url.PathEscape(messageID), nil, nil)
}

// Roles

func (c *Client) Roles(ctx context.Context, serverID string) ([]models.Role, error) {
	var roles []models.Role
	err := c.do(ctx, http.MethodGet, "/servers/"+url.PathEscape(serverID)+"/roles", nil, &roles)
	return roles, err
}

func (c *Client) CreateRole(ctx context.Context, serverID string, patch models.RolePatch) (models.Role, error) {
	var role models.Role
	err := c.do(ctx, http.MethodPost, "/servers/"+url.PathEscape(serverID)+"/roles", patch, &role)
	return role, err
}

// User

func (c *Client) UpdateProfile(ctx context.Context, patch models.UserPatch) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPatch, "/users/me", patch, &user)
	return user, err
}
