// Package hosting is a minimal client for the repository hosting API.
// The bootstrap pipeline uses exactly one call: create a private remote
// repository for a freshly bootstrapped project.
package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBodySize caps how much of a failure response is kept for the
// error message.
const maxErrorBodySize = 64 * 1024

// Client talks to the hosting API with basic auth.
type Client struct {
	httpClient *http.Client
	baseURL    string
	user       string
	token      string
}

// NewClient creates a hosting API client. baseURL has no trailing slash,
// e.g. "https://api.github.com".
func NewClient(baseURL, user, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		user:       user,
		token:      token,
	}
}

// Repo is the subset of the hosting API's repository object the pipeline
// consumes.
type Repo struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	CloneURL string `json:"clone_url"`
	HTMLURL  string `json:"html_url"`
	Private  bool   `json:"private"`
}

// createRepoRequest is the fixed-shape body of POST /user/repos.
type createRepoRequest struct {
	Name      string `json:"name"`
	Homepage  string `json:"homepage"`
	Private   bool   `json:"private"`
	HasIssues bool   `json:"has_issues"`
	HasWiki   bool   `json:"has_wiki"`
}

// StatusError is returned when the API answers with anything other than
// the expected status. The raw body is carried for diagnosis.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hosting API error %d: %s", e.StatusCode, e.Body)
}

// CreateRepo creates a private remote repository named after the project,
// with issues and wiki enabled. Only 201 Created counts as success; any
// other status aborts the pipeline before the push step.
func (c *Client) CreateRepo(ctx context.Context, name string) (*Repo, error) {
	body := createRepoRequest{
		Name:      name,
		Private:   true,
		HasIssues: true,
		HasWiki:   true,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling create-repo request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user/repos", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.user, c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling hosting API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var repo Repo
	if err := json.NewDecoder(resp.Body).Decode(&repo); err != nil {
		return nil, fmt.Errorf("decoding create-repo response: %w", err)
	}
	return &repo, nil
}
