package coverage

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/scangap/internal/utils"
)

const (
	projectCoverageCommandNameConstant  = "coverage"
	projectCoverageShortDescription     = "Reconcile GitHub repositories against Checkmarx One projects by name"
	projectCoverageLongDescription      = "coverage fetches the repository inventory for a GitHub user or organization, retrieves the registered Checkmarx One projects, and reports which repositories lack a project with a matching name."
	tagCoverageCommandNameConstant      = "tag-coverage"
	tagCoverageShortDescription         = "Reconcile GitHub repositories against Checkmarx One repository tags"
	tagCoverageLongDescription          = "tag-coverage fetches the repository inventory for a GitHub user or organization, retrieves the Checkmarx One tag index, and reports which repositories are absent from the GitHub repository tag category."
	flagUserOrOrganizationNameConstant  = "github-user-or-org"
	flagUserOrOrganizationDescription   = "GitHub username or organization name."
	flagGitHubAPIKeyNameConstant        = "github-api-key"
	flagGitHubAPIKeyDescription         = "GitHub API token (literal value, env:NAME, or file:PATH)."
	flagProjectCountNameConstant        = "number-of-projects"
	flagProjectCountDescription         = "Maximum number of repositories to fetch from GitHub."
	flagCheckmarxAPIKeyNameConstant     = "checkmarx-api-key"
	flagCheckmarxAPIKeyDescription      = "Checkmarx One refresh token (literal value, env:NAME, or file:PATH)."
	missingUserOrOrganizationMessage    = "a GitHub user or organization must be provided via --github-user-or-org or configuration"
	missingGitHubAPIKeyMessageConstant  = "a GitHub API key must be provided via --github-api-key"
	missingCheckmarxKeyMessageConstant  = "a Checkmarx API key must be provided via --checkmarx-api-key"
	invalidProjectCountMessageConstant  = "the number of projects must be a positive integer"
	configurationFileAppliedMessage     = "configuration file applied"
	logFieldConfigurationFileConstant   = "configuration_file"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted coverage configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the coverage cobra commands with configurable
// dependencies. Nil dependency fields resolve to production collaborators.
type CommandBuilder struct {
	LoggerProvider         LoggerProvider
	ConfigurationProvider  ConfigurationProvider
	RepositoryLister       RepositoryLister
	TokenExchanger         TokenExchanger
	ProjectLister          ProjectLister
	TaggedRepositoryLister TaggedRepositoryLister
	ReportWriter           ReportWriter
	CredentialResolver     CredentialResolver
}

// BuildProjectCoverageCommand constructs the by-name coverage command.
func (builder *CommandBuilder) BuildProjectCoverageCommand() (*cobra.Command, error) {
	return builder.buildCommand(projectCoverageCommandNameConstant, projectCoverageShortDescription, projectCoverageLongDescription, MatchModeProjectName), nil
}

// BuildTagCoverageCommand constructs the tag-membership coverage command.
func (builder *CommandBuilder) BuildTagCoverageCommand() (*cobra.Command, error) {
	return builder.buildCommand(tagCoverageCommandNameConstant, tagCoverageShortDescription, tagCoverageLongDescription, MatchModeRepositoryTag), nil
}

func (builder *CommandBuilder) buildCommand(commandName string, shortDescription string, longDescription string, mode MatchMode) *cobra.Command {
	command := &cobra.Command{
		Use:   commandName,
		Short: shortDescription,
		Long:  longDescription,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, mode)
		},
	}

	command.Flags().String(flagUserOrOrganizationNameConstant, "", flagUserOrOrganizationDescription)
	command.Flags().String(flagGitHubAPIKeyNameConstant, "", flagGitHubAPIKeyDescription)
	command.Flags().Int(flagProjectCountNameConstant, 0, flagProjectCountDescription)
	command.Flags().String(flagCheckmarxAPIKeyNameConstant, "", flagCheckmarxAPIKeyDescription)

	return command
}

func (builder *CommandBuilder) run(command *cobra.Command, mode MatchMode) error {
	configuration := builder.resolveConfiguration()

	options, optionsError := builder.parseOptions(command, configuration, mode)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	if configurationFilePath, recorded := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context()); recorded {
		logger.Debug(
			configurationFileAppliedMessage,
			zap.String(logFieldConfigurationFileConstant, configurationFilePath),
		)
	}

	service := NewService(
		ResolveRepositoryLister(builder.RepositoryLister, configuration, logger),
		ResolveTokenExchanger(builder.TokenExchanger, configuration),
		ResolveProjectLister(builder.ProjectLister, configuration),
		ResolveTaggedRepositoryLister(builder.TaggedRepositoryLister, configuration),
		ResolveReportWriter(builder.ReportWriter, configuration),
		command.OutOrStdout(),
		command.ErrOrStderr(),
		logger,
	)

	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, configuration CommandConfiguration, mode MatchMode) (CommandOptions, error) {
	userOrOrganization, userFlagError := command.Flags().GetString(flagUserOrOrganizationNameConstant)
	if userFlagError != nil {
		return CommandOptions{}, userFlagError
	}
	githubAPIKeyReference, githubKeyFlagError := command.Flags().GetString(flagGitHubAPIKeyNameConstant)
	if githubKeyFlagError != nil {
		return CommandOptions{}, githubKeyFlagError
	}
	projectCount, projectCountFlagError := command.Flags().GetInt(flagProjectCountNameConstant)
	if projectCountFlagError != nil {
		return CommandOptions{}, projectCountFlagError
	}
	checkmarxAPIKeyReference, checkmarxKeyFlagError := command.Flags().GetString(flagCheckmarxAPIKeyNameConstant)
	if checkmarxKeyFlagError != nil {
		return CommandOptions{}, checkmarxKeyFlagError
	}

	if len(strings.TrimSpace(userOrOrganization)) == 0 {
		userOrOrganization = configuration.UserOrOrganization
	}
	if len(strings.TrimSpace(userOrOrganization)) == 0 {
		return CommandOptions{}, errors.New(missingUserOrOrganizationMessage)
	}

	if !command.Flags().Changed(flagProjectCountNameConstant) {
		projectCount = configuration.ProjectCount
	}
	if projectCount <= 0 {
		return CommandOptions{}, errors.New(invalidProjectCountMessageConstant)
	}

	if len(strings.TrimSpace(githubAPIKeyReference)) == 0 {
		return CommandOptions{}, errors.New(missingGitHubAPIKeyMessageConstant)
	}
	if len(strings.TrimSpace(checkmarxAPIKeyReference)) == 0 {
		return CommandOptions{}, errors.New(missingCheckmarxKeyMessageConstant)
	}

	credentialResolver := ResolveCredentialResolver(builder.CredentialResolver)

	githubToken, githubTokenError := credentialResolver.Resolve(githubAPIKeyReference)
	if githubTokenError != nil {
		return CommandOptions{}, githubTokenError
	}

	checkmarxRefreshToken, checkmarxTokenError := credentialResolver.Resolve(checkmarxAPIKeyReference)
	if checkmarxTokenError != nil {
		return CommandOptions{}, checkmarxTokenError
	}

	options := CommandOptions{
		UserOrOrganization:    strings.TrimSpace(userOrOrganization),
		GitHubToken:           githubToken,
		CheckmarxRefreshToken: checkmarxRefreshToken,
		MaximumProjectCount:   projectCount,
		Mode:                  mode,
	}

	return options, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
