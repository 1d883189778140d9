package coverage

import (
	"context"

	"github.com/temirov/scangap/internal/checkmarx"
	"github.com/temirov/scangap/internal/githubrepos"
	"github.com/temirov/scangap/internal/report"
)

// RepositoryLister fetches repository inventories from the source-control
// platform.
type RepositoryLister interface {
	ListRepositories(executionContext context.Context, userOrOrganization string, apiToken string, maximumRepositoryCount int) ([]githubrepos.Repository, error)
}

// TokenExchanger trades a refresh-style credential for a bearer token.
type TokenExchanger interface {
	ExchangeRefreshToken(executionContext context.Context, refreshToken string) (string, error)
}

// ProjectLister retrieves the full scanned-project registry.
type ProjectLister interface {
	ListProjects(executionContext context.Context, accessToken string) ([]checkmarx.Project, error)
}

// TaggedRepositoryLister retrieves registry entries filed under the GitHub
// repository cross-reference tag.
type TaggedRepositoryLister interface {
	ListTaggedRepositories(executionContext context.Context, accessToken string) ([]string, error)
}

// ReportWriter persists reconciliation results to report files.
type ReportWriter interface {
	WriteRepositories(fileNamePrefix string, rows []report.RepositoryRow) (string, error)
	WriteNames(fileNamePrefix string, names []string) (string, error)
}

// CredentialResolver turns credential references into credential values.
type CredentialResolver interface {
	Resolve(credentialReference string) (string, error)
}

// MatchMode selects how inventory entries are matched against the registry.
type MatchMode string

// Supported match modes.
const (
	MatchModeProjectName   MatchMode = "project-name"
	MatchModeRepositoryTag MatchMode = "repository-tag"
)

// CommandOptions captures the resolved parameters for one coverage run.
type CommandOptions struct {
	UserOrOrganization    string
	GitHubToken           string
	CheckmarxRefreshToken string
	MaximumProjectCount   int
	Mode                  MatchMode
}
