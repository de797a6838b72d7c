// Package github implements ports.Forge against the GitHub REST and
// GraphQL APIs. GraphQL serves the read paths that REST makes chatty
// (label lookup, blob reads); REST serves repository metadata and pull
// request writes.
package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v66/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"tagger/internal/domain"
)

// Forge talks to GitHub with both API flavors over one token
type Forge struct {
	rest *gh.Client
	gql  *githubv4.Client
}

// NewForge creates a Forge authenticating with token
func NewForge(ctx context.Context, token string) *Forge {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, src)
	return &Forge{
		rest: gh.NewClient(httpClient),
		gql:  githubv4.NewClient(httpClient),
	}
}

// PullRequestLabels returns the label names on a pull request
func (f *Forge) PullRequestLabels(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var query struct {
		Repository struct {
			PullRequest struct {
				Labels struct {
					Nodes []struct {
						Name githubv4.String
					}
				} `graphql:"labels(first: 10)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]interface{}{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(number),
	}
	if err := f.gql.Query(ctx, &query, vars); err != nil {
		return nil, fmt.Errorf("labels for %s/%s#%d: %w", owner, repo, number, err)
	}
	labels := make([]string, 0, len(query.Repository.PullRequest.Labels.Nodes))
	for _, node := range query.Repository.PullRequest.Labels.Nodes {
		labels = append(labels, string(node.Name))
	}
	return labels, nil
}

// FileAtHead fetches a file's text at the default branch tip
func (f *Forge) FileAtHead(ctx context.Context, owner, repo, path string) (string, bool, error) {
	var query struct {
		Repository struct {
			Object *struct {
				Blob struct {
					Text githubv4.String
				} `graphql:"... on Blob"`
			} `graphql:"object(expression: $expr)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
		"expr":  githubv4.String("HEAD:" + path),
	}
	if err := f.gql.Query(ctx, &query, vars); err != nil {
		return "", false, fmt.Errorf("read %s from %s/%s: %w", path, owner, repo, err)
	}
	if query.Repository.Object == nil {
		return "", false, nil
	}
	return string(query.Repository.Object.Blob.Text), true, nil
}

// DefaultBranch returns the repository's default branch name
func (f *Forge) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	r, _, err := f.rest.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("repository %s/%s: %w", owner, repo, err)
	}
	return r.GetDefaultBranch(), nil
}

// OpenPullRequests lists open pull requests. A single page covers the
// realistic count of simultaneous version bump PRs.
func (f *Forge) OpenPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error) {
	opts := &gh.PullRequestListOptions{
		State:       "open",
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	prs, _, err := f.rest.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("list pull requests for %s/%s: %w", owner, repo, err)
	}
	out := make([]domain.PullRequest, 0, len(prs))
	for _, pr := range prs {
		out = append(out, domain.PullRequest{
			Number: pr.GetNumber(),
			Title:  pr.GetTitle(),
			URL:    pr.GetHTMLURL(),
		})
	}
	return out, nil
}

// CreatePullRequest opens a pull request from head against base
func (f *Forge) CreatePullRequest(ctx context.Context, owner, repo, title, body, head, base string) (domain.PullRequest, error) {
	pr, _, err := f.rest.PullRequests.Create(ctx, owner, repo, &gh.NewPullRequest{
		Title: gh.String(title),
		Body:  gh.String(body),
		Head:  gh.String(head),
		Base:  gh.String(base),
	})
	if err != nil {
		return domain.PullRequest{}, fmt.Errorf("create pull request on %s/%s: %w", owner, repo, err)
	}
	return domain.PullRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
	}, nil
}
