// Package release checks GitHub for a newer published version of the
// binary. It only reports; installing the update is left to the user's
// package manager.
package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// ErrDevBuild means the running binary has no release version to
// compare against.
var ErrDevBuild = errors.New("cannot check updates for a development build")

const (
	defaultOwner   = "kunal"
	defaultRepo    = "vetta"
	defaultBaseURL = "https://api.github.com"
)

// Checker queries the GitHub releases API.
type Checker struct {
	owner   string
	repo    string
	baseURL string
	client  *http.Client
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

// WithRepo overrides the owner/repo the checker queries.
func WithRepo(owner, repo string) Option {
	return func(c *Checker) {
		c.owner = owner
		c.repo = repo
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) { c.client = client }
}

// NewChecker creates a Checker against the project's GitHub releases.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:   defaultOwner,
		repo:    defaultRepo,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckResult reports whether a newer release exists.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release tag and compares it against version.
// version must be a semver tag like "v1.2.0"; "(devel)" returns
// ErrDevBuild.
func (c *Checker) Check(ctx context.Context, version string) (*CheckResult, error) {
	if version == "(devel)" || version == "" {
		return nil, ErrDevBuild
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return nil, fmt.Errorf("invalid version %q", version)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch latest release: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read release response: %w", err)
	}

	var rel githubRelease
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("parse release response: %w", err)
	}
	if !semver.IsValid(rel.TagName) {
		return nil, fmt.Errorf("release tag %q is not semver", rel.TagName)
	}

	return &CheckResult{
		CurrentVersion:  version,
		LatestVersion:   rel.TagName,
		UpdateAvailable: semver.Compare(rel.TagName, version) > 0,
		ReleaseURL:      rel.HTMLURL,
	}, nil
}
