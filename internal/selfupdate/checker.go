// Package selfupdate checks GitHub releases for a newer vatly build and
// replaces the running binary with it.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner   = "vatly"
	defaultRepo    = "vatly"
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 5 * time.Second
)

// Checker looks up vatly releases and installs them.
type Checker struct {
	owner    string
	repo     string
	baseURL  string
	client   *http.Client
	platform Platform
	execPath func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithRepository overrides the owner/repo pair.
func WithRepository(owner, repo string) Option {
	return func(c *Checker) {
		c.owner = owner
		c.repo = repo
	}
}

func withPlatform(p Platform) Option {
	return func(c *Checker) { c.platform = p }
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// NewChecker creates a Checker for the vatly releases on this platform.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:    defaultOwner,
		repo:     defaultRepo,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: defaultTimeout},
		platform: Platform{OS: runtime.GOOS, Arch: runtime.GOARCH},
		execPath: os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckInput is the running version.
type CheckInput struct {
	Version string
}

// CheckResult describes the latest release.
type CheckResult struct {
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
}

type release struct {
	TagName    string         `json:"tag_name"`
	HTMLURL    string         `json:"html_url"`
	Draft      bool           `json:"draft"`
	Prerelease bool           `json:"prerelease"`
	Assets     []releaseAsset `json:"assets"`
}

type releaseAsset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Check fetches the latest release and compares it with input.Version.
// Development builds and unparseable versions never report an update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	rel, err := c.fetchRelease(ctx, "")
	if err != nil {
		return nil, err
	}
	return &CheckResult{
		LatestVersion:   rel.TagName,
		ReleaseURL:      rel.HTMLURL,
		UpdateAvailable: newer(rel.TagName, input.Version),
	}, nil
}

// LatestIfNewer returns the latest release tag when it is newer than
// version, and "" otherwise or on any error. The home screen uses it for
// its update notice.
func (c *Checker) LatestIfNewer(ctx context.Context, version string) string {
	res, err := c.Check(ctx, &CheckInput{Version: version})
	if err != nil || !res.UpdateAvailable {
		return ""
	}
	return res.LatestVersion
}

// fetchRelease reads one release from the GitHub API. An empty tag means
// the latest published release.
func (c *Checker) fetchRelease(ctx context.Context, tag string) (*release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)
	what := "latest release"
	if tag != "" {
		endpoint = fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.baseURL, c.owner, c.repo, url.PathEscape(tag))
		what = "release " + tag
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", what, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound && tag != "":
		return nil, fmt.Errorf("%w: %s", ErrNoRelease, tag)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch %s: HTTP %d", what, resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("decode %s: missing tag_name", what)
	}
	return &rel, nil
}

// newer reports whether tag is a later version than current.
func newer(tag, current string) bool {
	latest, running := canonical(tag), canonical(current)
	return latest != "" && running != "" && semver.Compare(latest, running) > 0
}

// canonical returns v as a "v"-prefixed semver string, or "" if invalid.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == "(devel)" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
