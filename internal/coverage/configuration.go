package coverage

import (
	"strings"

	"github.com/temirov/scangap/internal/checkmarx"
	"github.com/temirov/scangap/internal/githubrepos"
)

const (
	githubAPIURLConfigKeySuffixConstant       = ".github_api_url"
	checkmarxIAMTokenURLConfigKeySuffix       = ".checkmarx_iam_token_url"
	checkmarxAPIURLConfigKeySuffixConstant    = ".checkmarx_api_url"
	userOrOrganizationConfigKeySuffixConstant = ".github_user_or_org"
	projectCountConfigKeySuffixConstant       = ".number_of_projects"
	outputDirectoryConfigKeySuffixConstant    = ".output_directory"
	defaultProjectCountConstant               = 1000
)

// CommandConfiguration captures persistent settings for the coverage commands.
type CommandConfiguration struct {
	GitHubAPIURL         string `mapstructure:"github_api_url"`
	CheckmarxIAMTokenURL string `mapstructure:"checkmarx_iam_token_url"`
	CheckmarxAPIURL      string `mapstructure:"checkmarx_api_url"`
	UserOrOrganization   string `mapstructure:"github_user_or_org"`
	ProjectCount         int    `mapstructure:"number_of_projects"`
	OutputDirectory      string `mapstructure:"output_directory"`
}

// DefaultCommandConfiguration returns baseline configuration values for the
// coverage commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		GitHubAPIURL:         githubrepos.DefaultAPIBaseURL,
		CheckmarxIAMTokenURL: checkmarx.DefaultIAMTokenURL,
		CheckmarxAPIURL:      checkmarx.DefaultAPIBaseURL,
		ProjectCount:         defaultProjectCountConstant,
	}
}

// DefaultConfigurationValues exposes the default settings keyed for the
// configuration loader under the provided configuration prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationPrefix + githubAPIURLConfigKeySuffixConstant:       defaults.GitHubAPIURL,
		configurationPrefix + checkmarxIAMTokenURLConfigKeySuffix:       defaults.CheckmarxIAMTokenURL,
		configurationPrefix + checkmarxAPIURLConfigKeySuffixConstant:    defaults.CheckmarxAPIURL,
		configurationPrefix + userOrOrganizationConfigKeySuffixConstant: defaults.UserOrOrganization,
		configurationPrefix + projectCountConfigKeySuffixConstant:       defaults.ProjectCount,
		configurationPrefix + outputDirectoryConfigKeySuffixConstant:    defaults.OutputDirectory,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.GitHubAPIURL = fallbackWhenBlank(configuration.GitHubAPIURL, defaults.GitHubAPIURL)
	sanitized.CheckmarxIAMTokenURL = fallbackWhenBlank(configuration.CheckmarxIAMTokenURL, defaults.CheckmarxIAMTokenURL)
	sanitized.CheckmarxAPIURL = fallbackWhenBlank(configuration.CheckmarxAPIURL, defaults.CheckmarxAPIURL)
	sanitized.UserOrOrganization = strings.TrimSpace(configuration.UserOrOrganization)
	sanitized.OutputDirectory = strings.TrimSpace(configuration.OutputDirectory)
	if configuration.ProjectCount <= 0 {
		sanitized.ProjectCount = defaults.ProjectCount
	}

	return sanitized
}

func fallbackWhenBlank(value string, fallback string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallback
	}
	return trimmedValue
}
