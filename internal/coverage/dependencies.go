package coverage

import (
	"go.uber.org/zap"

	"github.com/temirov/scangap/internal/checkmarx"
	"github.com/temirov/scangap/internal/credentials"
	"github.com/temirov/scangap/internal/githubrepos"
	"github.com/temirov/scangap/internal/report"
)

// ResolveRepositoryLister returns the provided override or a GitHub client
// configured from the command configuration.
func ResolveRepositoryLister(override RepositoryLister, configuration CommandConfiguration, logger *zap.Logger) RepositoryLister {
	if override != nil {
		return override
	}
	return githubrepos.NewClient(nil, configuration.GitHubAPIURL, logger)
}

// ResolveTokenExchanger returns the provided override or an authenticator
// targeting the configured IAM token endpoint.
func ResolveTokenExchanger(override TokenExchanger, configuration CommandConfiguration) TokenExchanger {
	if override != nil {
		return override
	}
	return checkmarx.NewAuthenticator(nil, configuration.CheckmarxIAMTokenURL)
}

// ResolveProjectLister returns the provided override or a registry client
// targeting the configured AST endpoint.
func ResolveProjectLister(override ProjectLister, configuration CommandConfiguration) ProjectLister {
	if override != nil {
		return override
	}
	return checkmarx.NewRegistryClient(nil, configuration.CheckmarxAPIURL)
}

// ResolveTaggedRepositoryLister returns the provided override or a registry
// client targeting the configured AST endpoint.
func ResolveTaggedRepositoryLister(override TaggedRepositoryLister, configuration CommandConfiguration) TaggedRepositoryLister {
	if override != nil {
		return override
	}
	return checkmarx.NewRegistryClient(nil, configuration.CheckmarxAPIURL)
}

// ResolveReportWriter returns the provided override or a writer targeting
// the configured output directory with the system clock.
func ResolveReportWriter(override ReportWriter, configuration CommandConfiguration) ReportWriter {
	if override != nil {
		return override
	}
	return report.NewWriter(configuration.OutputDirectory, nil)
}

// ResolveCredentialResolver returns the provided override or a resolver
// backed by the process environment and filesystem.
func ResolveCredentialResolver(override CredentialResolver) CredentialResolver {
	if override != nil {
		return override
	}
	return credentials.NewResolver(nil, nil)
}
