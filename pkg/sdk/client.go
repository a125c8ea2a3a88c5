package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/ethanbaker/api/pkg/api_types"
)

// Client wraps calls to the interview backend
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Register a new user
func (c *Client) Signup(ctx context.Context, req *SignupRequest) (*UserResponse, error) {
	path := "/api/auth/signup"

	var out ApiResponse[UserResponse]
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// Verify a user's credentials
func (c *Client) Login(ctx context.Context, req *LoginRequest) (*UserResponse, error) {
	path := "/api/auth/login"

	var out ApiResponse[UserResponse]
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}

	// Check for success
	switch out.Status {
	case api_types.StatusFail:
		return nil, fmt.Errorf("login failed: %s", out.Message)
	case api_types.StatusError:
		return nil, fmt.Errorf("error logging in (%s): %v", out.Message, out.Error)
	}

	return &out.Data, nil
}

// Get the personalized dashboard greeting
func (c *Client) Greeting(ctx context.Context, name string) (string, error) {
	path := fmt.Sprintf("/api/ai/greeting?name=%s", name)

	var out ApiResponse[GreetingResponse]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return "", err
	}

	return out.Data.Greeting, nil
}

// Start a new interview session
func (c *Client) CreateSession(ctx context.Context, req *CreateSessionRequest) (*Session, error) {
	path := "/api/interview/sessions"

	var out ApiResponse[Session]
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}

	if out.Data.ID == "" {
		return nil, fmt.Errorf("no id returned")
	}

	return &out.Data, nil
}

// Get a session by ID
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	path := fmt.Sprintf("/api/interview/sessions/%s", id)

	var out ApiResponse[Session]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	// Check for success
	switch out.Status {
	case api_types.StatusFail:
		return nil, fmt.Errorf("failed to get session: %s", out.Message)
	case api_types.StatusError:
		return nil, fmt.Errorf("error getting session (%s): %v", out.Message, out.Error)
	}

	// On success return data
	return &out.Data, nil
}

// Record an answer for a question index, uploading the video recording
func (c *Client) SaveAnswer(ctx context.Context, sessionID string, index int, question, transcript, filename string, video io.Reader) (*SaveAnswerResponse, error) {
	path := fmt.Sprintf("/api/interview/sessions/%s/answers", sessionID)

	// Build the multipart form with the answer fields and the video part
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("index", fmt.Sprintf("%d", index)); err != nil {
		return nil, err
	}
	if err := writer.WriteField("question", question); err != nil {
		return nil, err
	}
	if err := writer.WriteField("transcript", transcript); err != nil {
		return nil, err
	}

	part, err := writer.CreateFormFile("video", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, video); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-API-KEY", c.apiKey)

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("[BACKEND]: backend 'POST %s' failed: %d: %s", path, resp.StatusCode, string(b))
	}

	var out ApiResponse[SaveAnswerResponse]
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// Get the evaluation report for a session
func (c *Client) GetReport(ctx context.Context, sessionID string) (*ReportResponse, error) {
	path := fmt.Sprintf("/api/interview/sessions/%s/report", sessionID)

	var out ApiResponse[ReportResponse]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// On error, read body and return error
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("[BACKEND]: backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}
