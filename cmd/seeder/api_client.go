package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type User struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type Task struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority int    `json:"priority"`
	Subject  string `json:"subject"`
}

// RegisterUser creates a new user account
func (c *APIClient) RegisterUser(baseName string) (*User, string, error) {
	username := fmt.Sprintf("%s_%d", baseName, time.Now().UnixNano()%100000)
	email := username + "@example.com"
	password := "seedpassword123"

	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}

	resp, err := c.post("/users", body, "")
	if err != nil {
		return nil, "", fmt.Errorf("register request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("register failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var user User
	if err := decodeEnvelope(resp.Body, &user); err != nil {
		return nil, "", fmt.Errorf("failed to decode response: %w", err)
	}

	return &user, password, nil
}

// Login authenticates and returns the session cookie value
func (c *APIClient) Login(email, password string) (string, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	resp, err := c.post("/login", body, "")
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("login failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			return cookie.Value, nil
		}
	}

	return "", fmt.Errorf("login response did not set a session cookie")
}

// CreateTask creates a task for the logged-in user
func (c *APIClient) CreateTask(session, title, subject, status string, priority int) (*Task, error) {
	body := map[string]interface{}{
		"title":    title,
		"subject":  subject,
		"status":   status,
		"priority": priority,
	}

	resp, err := c.post("/tasks/", body, session)
	if err != nil {
		return nil, fmt.Errorf("create task request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create task failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var task Task
	if err := decodeEnvelope(resp.Body, &task); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &task, nil
}

// ListTasks fetches the logged-in user's tasks
func (c *APIClient) ListTasks(session string) ([]Task, error) {
	resp, err := c.get("/tasks/", session)
	if err != nil {
		return nil, fmt.Errorf("list tasks request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("list tasks failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var tasks []Task
	if err := decodeEnvelope(resp.Body, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return tasks, nil
}

// ListUsers fetches every user, forcing a refresh of the listing cache
func (c *APIClient) ListUsers(session string) (int, error) {
	resp, err := c.get("/users", session)
	if err != nil {
		return 0, fmt.Errorf("list users request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("list users failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var listing struct {
		Users []User `json:"users"`
	}
	if err := decodeEnvelope(resp.Body, &listing); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return len(listing.Users), nil
}

// Logout ends the session
func (c *APIClient) Logout(session string) error {
	resp, err := c.post("/logout", nil, session)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("logout failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

func decodeEnvelope(r io.Reader, v interface{}) error {
	var envelope apiEnvelope
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return err
	}
	if v == nil || envelope.Data == nil {
		return nil
	}
	return json.Unmarshal(envelope.Data, v)
}

// HTTP helpers

func (c *APIClient) get(path, session string) (*http.Response, error) {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	if session != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: session})
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func (c *APIClient) post(path string, body interface{}, session string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	if session != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: session})
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
