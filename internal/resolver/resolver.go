// Package resolver turns a reference string — a compact "owner/repo[@ref]"
// form, a hosting-platform URL, or a direct archive URL — into an ordered
// list of candidate archive URLs for the orchestrator to try in turn, using
// regexp plus plain string splitting for per-provider parsing and a
// Candidate list carrying auth headers alongside each URL.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/kenf1/bytes-radar/internal/radarerr"
)

// Provider tags the hosting platform a candidate was produced for.
type Provider string

const (
	ProviderGitHub    Provider = "github"
	ProviderGitLab    Provider = "gitlab"
	ProviderBitbucket Provider = "bitbucket"
	ProviderCodeberg  Provider = "codeberg"
	ProviderDirect    Provider = "direct"
)

// Candidate is one archive URL to attempt, with the auth header it should
// carry (if any).
type Candidate struct {
	URL          string
	AuthHeader   string // e.g. "token abc", "Bearer abc", "Basic ..." — empty if none
	Provider     Provider
	ExpectedGzip bool // false for direct URLs not ending in .tar.gz/.tgz
}

// Credentials supplies a token used to authenticate outbound requests. A
// nil Credentials means no token is sent; internal/config is responsible
// for populating Credentials from BRADAR_TOKEN before Resolve is called.
type Credentials struct {
	Token string
}

// Resolution is what the resolver hands the orchestrator: a project name
// for reporting, and the ordered candidates to try.
type Resolution struct {
	ProjectName string
	Candidates  []Candidate
}

var defaultBranches = []string{"main", "master", "develop", "dev"}

var shaPattern = regexp.MustCompile(`^[0-9a-fA-F]{7,40}$`)
var ownerRepoPattern = regexp.MustCompile(`^([\w.-]+)/([\w.-]+)(?:@([\w./-]+))?$`)

// Resolve turns ref into a Resolution. ctx is used only for the optional
// GitHub default-branch lookup; it is not used for the archive download
// itself (the orchestrator issues that request separately).
func Resolve(ctx context.Context, ref string, creds *Credentials, httpClient *http.Client) (*Resolution, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, radarerr.New(radarerr.InvalidReference, "empty reference")
	}

	if isDirectArchiveURL(ref) {
		return &Resolution{
			ProjectName: projectNameFromDirectURL(ref),
			Candidates:  []Candidate{{URL: ref, Provider: ProviderDirect, ExpectedGzip: strings.HasSuffix(ref, ".tar.gz") || strings.HasSuffix(ref, ".tgz")}},
		}, nil
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return resolveURL(ctx, ref, creds, httpClient)
	}

	if m := ownerRepoPattern.FindStringSubmatch(ref); m != nil {
		return resolveOwnerRepo(ctx, m[1], m[2], m[3], creds, httpClient)
	}

	return nil, radarerr.New(radarerr.InvalidReference, "%q did not match owner/repo, owner/repo@ref, a hosting URL, or a direct archive URL", ref)
}

func isDirectArchiveURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz") || strings.HasSuffix(lower, ".zip")
}

func projectNameFromDirectURL(ref string) string {
	parts := strings.Split(strings.TrimRight(ref, "/"), "/")
	name := parts[len(parts)-1]
	name = strings.TrimSuffix(name, ".tar.gz")
	name = strings.TrimSuffix(name, ".tgz")
	name = strings.TrimSuffix(name, ".zip")
	if name == "" {
		return "archive"
	}
	return name
}

// resolveOwnerRepo handles the compact "owner/repo[@ref]" form, always
// against GitHub (the compact form is GitHub-specific; other providers
// require an explicit host in a URL).
func resolveOwnerRepo(ctx context.Context, owner, repo, ref string, creds *Credentials, httpClient *http.Client) (*Resolution, error) {
	auth := githubAuthHeader(creds)

	if ref == "" {
		branches, err := branchesWithGitHubDefault(ctx, owner, repo, creds, httpClient)
		if err != nil {
			branches = defaultBranches
		}
		candidates := make([]Candidate, 0, len(branches))
		for _, b := range branches {
			candidates = append(candidates, githubHeadsCandidate(owner, repo, b, auth))
		}
		return &Resolution{
			ProjectName: fmt.Sprintf("%s_%s@%s", owner, repo, branches[0]),
			Candidates:  candidates,
		}, nil
	}

	if shaPattern.MatchString(ref) {
		return &Resolution{
			ProjectName: fmt.Sprintf("%s_%s@%s", owner, repo, shortSHA(ref)),
			Candidates: []Candidate{
				{URL: fmt.Sprintf("https://codeload.github.com/%s/%s/tar.gz/%s", owner, repo, ref), AuthHeader: auth, Provider: ProviderGitHub, ExpectedGzip: true},
			},
		}, nil
	}

	return &Resolution{
		ProjectName: fmt.Sprintf("%s_%s@%s", owner, repo, ref),
		Candidates: []Candidate{
			githubHeadsCandidate(owner, repo, ref, auth),
			githubTagsCandidate(owner, repo, ref, auth),
		},
	}, nil
}

func githubHeadsCandidate(owner, repo, ref, auth string) Candidate {
	return Candidate{
		URL:          fmt.Sprintf("https://codeload.github.com/%s/%s/tar.gz/refs/heads/%s", owner, repo, ref),
		AuthHeader:   auth,
		Provider:     ProviderGitHub,
		ExpectedGzip: true,
	}
}

func githubTagsCandidate(owner, repo, ref, auth string) Candidate {
	return Candidate{
		URL:          fmt.Sprintf("https://codeload.github.com/%s/%s/tar.gz/refs/tags/%s", owner, repo, ref),
		AuthHeader:   auth,
		Provider:     ProviderGitHub,
		ExpectedGzip: true,
	}
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// resolveURL handles a full hosting-platform URL or a generic http(s) URL
// that names none of the recognized hosts (treated as a direct archive).
func resolveURL(ctx context.Context, raw string, creds *Credentials, httpClient *http.Client) (*Resolution, error) {
	switch {
	case strings.Contains(raw, "github.com"):
		return resolveGitHubURL(ctx, raw, creds, httpClient)
	case strings.Contains(raw, "gitlab.com") || strings.Contains(raw, "gitlab."):
		return resolveGitLabURL(raw, creds)
	case strings.Contains(raw, "bitbucket.org"):
		return resolveBitbucketURL(raw, creds)
	case strings.Contains(raw, "codeberg.org"):
		return resolveCodebergURL(raw)
	default:
		return &Resolution{
			ProjectName: projectNameFromDirectURL(raw),
			Candidates:  []Candidate{{URL: raw, Provider: ProviderDirect, ExpectedGzip: strings.HasSuffix(raw, ".tar.gz") || strings.HasSuffix(raw, ".tgz")}},
		}, nil
	}
}

var treePattern = regexp.MustCompile(`github\.com/([\w.-]+)/([\w.-]+)/tree/([\w./-]+)`)
var commitPattern = regexp.MustCompile(`github\.com/([\w.-]+)/([\w.-]+)/commit/([0-9a-fA-F]{7,40})`)

func resolveGitHubURL(ctx context.Context, raw string, creds *Credentials, httpClient *http.Client) (*Resolution, error) {
	auth := githubAuthHeader(creds)

	if m := commitPattern.FindStringSubmatch(raw); m != nil {
		owner, repo, sha := m[1], m[2], m[3]
		return &Resolution{
			ProjectName: fmt.Sprintf("%s_%s@%s", owner, repo, shortSHA(sha)),
			Candidates: []Candidate{
				{URL: fmt.Sprintf("https://codeload.github.com/%s/%s/tar.gz/%s", owner, repo, sha), AuthHeader: auth, Provider: ProviderGitHub, ExpectedGzip: true},
			},
		}, nil
	}

	if m := treePattern.FindStringSubmatch(raw); m != nil {
		owner, repo, branch := m[1], m[2], m[3]
		return &Resolution{
			ProjectName: fmt.Sprintf("%s_%s@%s", owner, repo, branch),
			Candidates:  []Candidate{githubHeadsCandidate(owner, repo, branch, auth)},
		}, nil
	}

	owner, repo := extractOwnerRepoFromHostURL(raw, "github.com")
	if owner == "" || repo == "" {
		return nil, radarerr.New(radarerr.InvalidReference, "could not extract owner/repo from GitHub URL %q", raw)
	}

	branches, err := branchesWithGitHubDefault(ctx, owner, repo, creds, httpClient)
	if err != nil {
		branches = defaultBranches
	}
	candidates := make([]Candidate, 0, len(branches))
	for _, b := range branches {
		candidates = append(candidates, githubHeadsCandidate(owner, repo, b, auth))
	}
	return &Resolution{
		ProjectName: fmt.Sprintf("%s_%s@main", owner, repo),
		Candidates:  candidates,
	}, nil
}

var gitlabTreePattern = regexp.MustCompile(`([\w.-]*gitlab[\w.-]*)/([\w.-]+)/([\w.-]+)/-/tree/([\w./-]+)`)

func resolveGitLabURL(raw string, creds *Credentials) (*Resolution, error) {
	if m := gitlabTreePattern.FindStringSubmatch(raw); m != nil {
		host, owner, repo, branch := m[1], m[2], m[3], m[4]
		return &Resolution{
			ProjectName: fmt.Sprintf("%s_%s@%s", owner, repo, branch),
			Candidates: []Candidate{
				{URL: fmt.Sprintf("https://%s/%s/%s/-/archive/%s/%s-%s.tar.gz", host, owner, repo, branch, repo, branch), AuthHeader: gitlabAuthHeader(creds), Provider: ProviderGitLab, ExpectedGzip: true},
			},
		}, nil
	}

	host, owner, repo := extractHostOwnerRepo(raw, "gitlab")
	if owner == "" || repo == "" {
		return nil, radarerr.New(radarerr.InvalidReference, "could not extract owner/repo from GitLab URL %q", raw)
	}

	candidates := make([]Candidate, 0, len(defaultBranches))
	for _, b := range defaultBranches {
		candidates = append(candidates, Candidate{
			URL:          fmt.Sprintf("https://%s/%s/%s/-/archive/%s/%s-%s.tar.gz", host, owner, repo, b, repo, b),
			AuthHeader:   gitlabAuthHeader(creds),
			Provider:     ProviderGitLab,
			ExpectedGzip: true,
		})
	}
	return &Resolution{
		ProjectName: fmt.Sprintf("%s_%s@main", owner, repo),
		Candidates:  candidates,
	}, nil
}

var bitbucketCommitPattern = regexp.MustCompile(`bitbucket\.org/([\w.-]+)/([\w.-]+)/commits/([0-9a-fA-F]{7,40})`)
var bitbucketBranchPattern = regexp.MustCompile(`bitbucket\.org/([\w.-]+)/([\w.-]+)/branch/([\w./-]+)`)

func resolveBitbucketURL(raw string, creds *Credentials) (*Resolution, error) {
	if m := bitbucketCommitPattern.FindStringSubmatch(raw); m != nil {
		owner, repo, sha := m[1], m[2], m[3]
		return &Resolution{
			ProjectName: fmt.Sprintf("%s_%s@%s", owner, repo, shortSHA(sha)),
			Candidates: []Candidate{
				{URL: fmt.Sprintf("https://bitbucket.org/%s/%s/get/%s.tar.gz", owner, repo, sha), AuthHeader: bitbucketAuthHeader(creds), Provider: ProviderBitbucket, ExpectedGzip: true},
			},
		}, nil
	}

	if m := bitbucketBranchPattern.FindStringSubmatch(raw); m != nil {
		owner, repo, branch := m[1], m[2], m[3]
		return &Resolution{
			ProjectName: fmt.Sprintf("%s_%s@%s", owner, repo, branch),
			Candidates: []Candidate{
				{URL: fmt.Sprintf("https://bitbucket.org/%s/%s/get/%s.tar.gz", owner, repo, branch), AuthHeader: bitbucketAuthHeader(creds), Provider: ProviderBitbucket, ExpectedGzip: true},
			},
		}, nil
	}

	owner, repo := extractOwnerRepoFromHostURL(raw, "bitbucket.org")
	if owner == "" || repo == "" {
		return nil, radarerr.New(radarerr.InvalidReference, "could not extract owner/repo from Bitbucket URL %q", raw)
	}

	candidates := make([]Candidate, 0, len(defaultBranches))
	for _, b := range defaultBranches {
		candidates = append(candidates, Candidate{
			URL:          fmt.Sprintf("https://bitbucket.org/%s/%s/get/%s.tar.gz", owner, repo, b),
			AuthHeader:   bitbucketAuthHeader(creds),
			Provider:     ProviderBitbucket,
			ExpectedGzip: true,
		})
	}
	return &Resolution{
		ProjectName: fmt.Sprintf("%s_%s@main", owner, repo),
		Candidates:  candidates,
	}, nil
}

var codebergCommitPattern = regexp.MustCompile(`codeberg\.org/([\w.-]+)/([\w.-]+)/commit/([0-9a-fA-F]{7,40})`)
var codebergBranchPattern = regexp.MustCompile(`codeberg\.org/([\w.-]+)/([\w.-]+)/src/branch/([\w./-]+)`)

func resolveCodebergURL(raw string) (*Resolution, error) {
	if m := codebergCommitPattern.FindStringSubmatch(raw); m != nil {
		owner, repo, sha := m[1], m[2], m[3]
		return &Resolution{
			ProjectName: fmt.Sprintf("%s_%s@%s", owner, repo, shortSHA(sha)),
			Candidates: []Candidate{
				{URL: fmt.Sprintf("https://codeberg.org/%s/%s/archive/%s.tar.gz", owner, repo, sha), Provider: ProviderCodeberg, ExpectedGzip: true},
			},
		}, nil
	}

	if m := codebergBranchPattern.FindStringSubmatch(raw); m != nil {
		owner, repo, branch := m[1], m[2], m[3]
		return &Resolution{
			ProjectName: fmt.Sprintf("%s_%s@%s", owner, repo, branch),
			Candidates: []Candidate{
				{URL: fmt.Sprintf("https://codeberg.org/%s/%s/archive/%s.tar.gz", owner, repo, branch), Provider: ProviderCodeberg, ExpectedGzip: true},
			},
		}, nil
	}

	owner, repo := extractOwnerRepoFromHostURL(raw, "codeberg.org")
	if owner == "" || repo == "" {
		return nil, radarerr.New(radarerr.InvalidReference, "could not extract owner/repo from Codeberg URL %q", raw)
	}

	candidates := make([]Candidate, 0, len(defaultBranches))
	for _, b := range defaultBranches {
		candidates = append(candidates, Candidate{
			URL:          fmt.Sprintf("https://codeberg.org/%s/%s/archive/%s.tar.gz", owner, repo, b),
			Provider:     ProviderCodeberg,
			ExpectedGzip: true,
		})
	}
	return &Resolution{
		ProjectName: fmt.Sprintf("%s_%s@main", owner, repo),
		Candidates:  candidates,
	}, nil
}

// extractOwnerRepoFromHostURL pulls "owner/repo" out of a URL whose path
// begins right after host.
func extractOwnerRepoFromHostURL(raw, host string) (owner, repo string) {
	idx := strings.Index(raw, host)
	if idx == -1 {
		return "", ""
	}
	rest := strings.TrimPrefix(raw[idx+len(host):], "/")
	rest = strings.TrimSuffix(rest, "/")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git")
}

func extractHostOwnerRepo(raw, hostHint string) (host, owner, repo string) {
	withoutScheme := raw
	withoutScheme = strings.TrimPrefix(withoutScheme, "https://")
	withoutScheme = strings.TrimPrefix(withoutScheme, "http://")
	parts := strings.SplitN(withoutScheme, "/", 4)
	if len(parts) < 3 || !strings.Contains(parts[0], hostHint) {
		return "", "", ""
	}
	return parts[0], parts[1], strings.TrimSuffix(parts[2], ".git")
}

func githubAuthHeader(creds *Credentials) string {
	token := resolveToken(creds)
	if token == "" {
		return ""
	}
	return "token " + token
}

func gitlabAuthHeader(creds *Credentials) string {
	token := resolveToken(creds)
	if token == "" {
		return ""
	}
	return "Bearer " + token
}

func bitbucketAuthHeader(creds *Credentials) string {
	token := resolveToken(creds)
	if token == "" {
		return ""
	}
	return "Basic " + token
}

// resolveToken reads the token from Credentials only — the core never
// reads environment variables directly; BRADAR_TOKEN is resolved into
// Credentials by internal/config before the orchestrator calls Resolve.
func resolveToken(creds *Credentials) string {
	if creds != nil {
		return creds.Token
	}
	return ""
}

// githubDefaultBranchTimeout bounds the optional default-branch API probe
// so a slow or hanging GitHub API never blocks resolution indefinitely.
const githubDefaultBranchTimeout = 5 * time.Second

type githubRepoInfo struct {
	DefaultBranch string `json:"default_branch"`
}

// branchesWithGitHubDefault returns the default-branch fallback list,
// prepending the repository's actual default branch (via the GitHub API)
// when a token is available — ported from get_github_default_branch.
func branchesWithGitHubDefault(ctx context.Context, owner, repo string, creds *Credentials, httpClient *http.Client) ([]string, error) {
	token := resolveToken(creds)
	if token == "" || httpClient == nil {
		return defaultBranches, nil
	}

	ctx, cancel := context.WithTimeout(ctx, githubDefaultBranchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("https://api.github.com/repos/%s/%s", owner, repo), nil)
	if err != nil {
		return defaultBranches, err
	}
	req.Header.Set("Authorization", "token "+token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return defaultBranches, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return defaultBranches, fmt.Errorf("github api returned %d", resp.StatusCode)
	}

	var info githubRepoInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return defaultBranches, err
	}
	if info.DefaultBranch == "" {
		return defaultBranches, nil
	}

	branches := []string{info.DefaultBranch}
	for _, b := range defaultBranches {
		if b != info.DefaultBranch {
			branches = append(branches, b)
		}
	}
	return branches, nil
}
