// Package httpstore implements session.AttemptStore against the attempts
// REST API. Every response travels in the {success, data, message} envelope;
// non-2xx responses surface the server-provided message where present.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/quizforge/mocktest/internal/dto"
	"github.com/quizforge/mocktest/internal/session"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a client for the given API base URL (e.g. http://host:5000/api)
// authenticating with the given bearer token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if decErr := json.NewDecoder(resp.Body).Decode(&env); decErr != nil && resp.StatusCode < 300 {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, decErr)
	}

	if resp.StatusCode >= 300 || !env.Success {
		return c.apiError(resp.StatusCode, env.Message, method, path)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decoding data: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) apiError(status int, message, method, path string) error {
	switch status {
	case http.StatusNotFound:
		return session.ErrNotFound
	case http.StatusUnauthorized:
		return session.ErrUnauthorized
	}
	if message == "" {
		message = "request failed"
	}
	return fmt.Errorf("%s %s: %s (status %d)", method, path, message, status)
}

func (c *Client) Load(ctx context.Context, attemptID string) (*session.AttemptSnapshot, error) {
	var detail dto.AttemptDetailDTO
	if err := c.do(ctx, http.MethodGet, "/attempts/"+attemptID, nil, &detail); err != nil {
		return nil, err
	}

	snap := &session.AttemptSnapshot{
		AttemptID:            detail.Attempt.AttemptID,
		TestID:               detail.Attempt.TestID,
		TestTitle:            detail.Attempt.TestTitle,
		DurationMinutes:      detail.Attempt.DurationMinutes,
		MarkedQuestions:      detail.Attempt.MarkedQuestions,
		VisitedQuestions:     detail.Attempt.VisitedQuestions,
		CurrentQuestionIndex: detail.Attempt.CurrentQuestionIndex,
		StartedAt:            detail.Attempt.StartedAt,
		SubmittedAt:          detail.Attempt.SubmittedAt,
		Score:                detail.Attempt.Score,
		TotalQuestions:       detail.Attempt.TotalQuestions,
		Percentage:           detail.Attempt.Percentage,
	}
	if detail.Test != nil {
		snap.Instructions = detail.Test.Instructions
	}
	snap.Questions = make([]session.Question, len(detail.Questions))
	for i, q := range detail.Questions {
		snap.Questions[i] = session.Question{
			ID:             q.ID,
			Text:           q.Text,
			Options:        q.Options,
			SelectedAnswer: q.SelectedAnswer,
		}
	}
	return snap, nil
}

func (c *Client) Start(ctx context.Context, attemptID string) (time.Time, error) {
	var resp dto.StartAttemptResponseDTO
	if err := c.do(ctx, http.MethodPost, "/attempts/"+attemptID+"/start", nil, &resp); err != nil {
		return time.Time{}, err
	}
	return resp.StartedAt, nil
}

func (c *Client) UpdateProgress(ctx context.Context, attemptID string, p session.Progress) error {
	body := dto.ProgressUpdateDTO{
		Answers:              p.Answers,
		MarkedQuestions:      p.MarkedQuestions,
		VisitedQuestions:     p.VisitedQuestions,
		CurrentQuestionIndex: p.CurrentQuestionIndex,
	}
	return c.do(ctx, http.MethodPut, "/attempts/"+attemptID, body, nil)
}

func (c *Client) Submit(ctx context.Context, attemptID string) (*session.Result, error) {
	var resp dto.SubmitResultDTO
	if err := c.do(ctx, http.MethodPost, "/attempts/"+attemptID+"/submit", nil, &resp); err != nil {
		return nil, err
	}
	return &session.Result{
		Score:          resp.Score,
		TotalQuestions: resp.TotalQuestions,
		Percentage:     resp.Percentage,
	}, nil
}

// CreateAttempt creates a fresh attempt on a test and returns its id.
func (c *Client) CreateAttempt(ctx context.Context, testID string) (string, error) {
	var resp dto.CreateAttemptResponseDTO
	body := dto.CreateAttemptRequestDTO{TestID: testID}
	if err := c.do(ctx, http.MethodPost, "/attempts", body, &resp); err != nil {
		return "", err
	}
	return resp.AttemptID, nil
}

// Login exchanges credentials for a bearer token and stores it on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp dto.AuthResponseDTO
	body := dto.LoginRequestDTO{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}
