package coverage_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/scangap/internal/checkmarx"
	"github.com/temirov/scangap/internal/coverage"
	"github.com/temirov/scangap/internal/githubrepos"
	"github.com/temirov/scangap/internal/utils"
)

const (
	commandSubtestNameTemplateConstant = "%d_%s"
	configuredOrganizationConstant     = "configured-org"
	configuredProjectCountConstant     = 25
)

type mappingCredentialResolver struct {
	values map[string]string
}

func (resolver mappingCredentialResolver) Resolve(credentialReference string) (string, error) {
	if resolvedValue, exists := resolver.values[credentialReference]; exists {
		return resolvedValue, nil
	}
	return credentialReference, nil
}

type capturingRepositoryLister struct {
	observedUserOrOrganization string
	observedToken              string
	observedMaximumCount       int
}

func (lister *capturingRepositoryLister) ListRepositories(executionContext context.Context, userOrOrganization string, apiToken string, maximumRepositoryCount int) ([]githubrepos.Repository, error) {
	lister.observedUserOrOrganization = userOrOrganization
	lister.observedToken = apiToken
	lister.observedMaximumCount = maximumRepositoryCount
	return []githubrepos.Repository{{Name: "alpha", HTMLURL: "https://github.com/acme/alpha"}}, nil
}

func buildTestCommand(builder *coverage.CommandBuilder, buildTagVariant bool) (*cobra.Command, error) {
	if buildTagVariant {
		return builder.BuildTagCoverageCommand()
	}
	return builder.BuildProjectCoverageCommand()
}

func executeCommand(testInstance *testing.T, command *cobra.Command, arguments []string) error {
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(arguments)
	command.SetContext(context.Background())
	return command.Execute()
}

func TestCommandFlagValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedError string
	}{
		{
			name: "missing_user_or_organization",
			arguments: []string{
				"--github-api-key", "gh-key",
				"--number-of-projects", "10",
				"--checkmarx-api-key", "cx-key",
			},
			expectedError: "--github-user-or-org",
		},
		{
			name: "missing_github_api_key",
			arguments: []string{
				"--github-user-or-org", "acme",
				"--number-of-projects", "10",
				"--checkmarx-api-key", "cx-key",
			},
			expectedError: "--github-api-key",
		},
		{
			name: "missing_checkmarx_api_key",
			arguments: []string{
				"--github-user-or-org", "acme",
				"--github-api-key", "gh-key",
				"--number-of-projects", "10",
			},
			expectedError: "--checkmarx-api-key",
		},
		{
			name: "non_positive_project_count",
			arguments: []string{
				"--github-user-or-org", "acme",
				"--github-api-key", "gh-key",
				"--number-of-projects", "-3",
				"--checkmarx-api-key", "cx-key",
			},
			expectedError: "positive integer",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(commandSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			builder := &coverage.CommandBuilder{
				ConfigurationProvider: func() coverage.CommandConfiguration {
					return coverage.CommandConfiguration{ProjectCount: -1}
				},
				RepositoryLister:       &capturingRepositoryLister{},
				TokenExchanger:         &stubTokenExchanger{},
				ProjectLister:          &stubProjectLister{},
				TaggedRepositoryLister: &stubTaggedLister{},
				ReportWriter:           newRecordingReportWriter(),
				CredentialResolver:     mappingCredentialResolver{},
			}

			command, buildError := builder.BuildProjectCoverageCommand()
			require.NoError(testInstance, buildError)

			executionError := executeCommand(testInstance, command, testCase.arguments)
			require.Error(testInstance, executionError)
			require.Contains(testInstance, executionError.Error(), testCase.expectedError)
		})
	}
}

func TestCommandRunsPipelineWithResolvedCredentials(testInstance *testing.T) {
	testCases := []struct {
		name           string
		buildTagMode   bool
		expectTagCalls bool
	}{
		{name: "project_coverage_command", buildTagMode: false},
		{name: "tag_coverage_command", buildTagMode: true, expectTagCalls: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(commandSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			repositoryLister := &capturingRepositoryLister{}
			tokenExchanger := &stubTokenExchanger{}
			projectLister := &stubProjectLister{projects: []checkmarx.Project{{ID: "1", Name: "alpha"}}}
			taggedLister := &stubTaggedLister{names: []string{"alpha"}}
			reportWriter := newRecordingReportWriter()

			builder := &coverage.CommandBuilder{
				RepositoryLister:       repositoryLister,
				TokenExchanger:         tokenExchanger,
				ProjectLister:          projectLister,
				TaggedRepositoryLister: taggedLister,
				ReportWriter:           reportWriter,
				CredentialResolver: mappingCredentialResolver{values: map[string]string{
					"env:GH_KEY": "resolved-github-token",
					"env:CX_KEY": "resolved-refresh-token",
				}},
			}

			command, buildError := buildTestCommand(builder, testCase.buildTagMode)
			require.NoError(testInstance, buildError)

			executionError := executeCommand(testInstance, command, []string{
				"--github-user-or-org", "acme",
				"--github-api-key", "env:GH_KEY",
				"--number-of-projects", "42",
				"--checkmarx-api-key", "env:CX_KEY",
			})
			require.NoError(testInstance, executionError)

			require.Equal(testInstance, "acme", repositoryLister.observedUserOrOrganization)
			require.Equal(testInstance, "resolved-github-token", repositoryLister.observedToken)
			require.Equal(testInstance, 42, repositoryLister.observedMaximumCount)
			require.Equal(testInstance, "resolved-refresh-token", tokenExchanger.observedRefreshToken)

			if testCase.expectTagCalls {
				require.Equal(testInstance, stubAccessTokenConstant, taggedLister.observedToken)
				require.NotEmpty(testInstance, reportWriter.namesByPrefix)
			} else {
				require.Equal(testInstance, stubAccessTokenConstant, projectLister.observedToken)
				require.NotEmpty(testInstance, reportWriter.repositoryRowsByPrefix)
			}
		})
	}
}

func TestCommandLogsAppliedConfigurationFile(testInstance *testing.T) {
	appliedConfigurationFilePath := "/etc/scangap/config.yaml"

	observedCore, observedLogs := observer.New(zap.DebugLevel)

	builder := &coverage.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return zap.New(observedCore)
		},
		RepositoryLister:       &capturingRepositoryLister{},
		TokenExchanger:         &stubTokenExchanger{},
		ProjectLister:          &stubProjectLister{projects: []checkmarx.Project{{ID: "1", Name: "alpha"}}},
		TaggedRepositoryLister: &stubTaggedLister{},
		ReportWriter:           newRecordingReportWriter(),
		CredentialResolver:     mappingCredentialResolver{},
	}

	command, buildError := builder.BuildProjectCoverageCommand()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{
		"--github-user-or-org", "acme",
		"--github-api-key", "gh-key",
		"--number-of-projects", "10",
		"--checkmarx-api-key", "cx-key",
	})
	command.SetContext(utils.NewCommandContextAccessor().WithConfigurationFilePath(context.Background(), appliedConfigurationFilePath))

	require.NoError(testInstance, command.Execute())

	appliedEntries := observedLogs.FilterMessage("configuration file applied").All()
	require.Len(testInstance, appliedEntries, 1)
	require.Equal(testInstance, appliedConfigurationFilePath, appliedEntries[0].ContextMap()["configuration_file"])
}

func TestCommandFallsBackToConfiguration(testInstance *testing.T) {
	repositoryLister := &capturingRepositoryLister{}

	builder := &coverage.CommandBuilder{
		ConfigurationProvider: func() coverage.CommandConfiguration {
			return coverage.CommandConfiguration{
				UserOrOrganization: configuredOrganizationConstant,
				ProjectCount:       configuredProjectCountConstant,
			}
		},
		RepositoryLister:       repositoryLister,
		TokenExchanger:         &stubTokenExchanger{},
		ProjectLister:          &stubProjectLister{projects: []checkmarx.Project{{ID: "1", Name: "alpha"}}},
		TaggedRepositoryLister: &stubTaggedLister{},
		ReportWriter:           newRecordingReportWriter(),
		CredentialResolver:     mappingCredentialResolver{},
	}

	command, buildError := builder.BuildProjectCoverageCommand()
	require.NoError(testInstance, buildError)

	executionError := executeCommand(testInstance, command, []string{
		"--github-api-key", "gh-key",
		"--checkmarx-api-key", "cx-key",
	})
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, configuredOrganizationConstant, repositoryLister.observedUserOrOrganization)
	require.Equal(testInstance, configuredProjectCountConstant, repositoryLister.observedMaximumCount)
}
