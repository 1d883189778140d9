package utils

import "context"

type contextKey string

const resolvedConfigurationFileContextKey = contextKey("scangap.configuration_file_path")

// CommandContextAccessor propagates the configuration file path resolved
// during root-command initialization to the coverage subcommands through the
// command execution context.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the resolved configuration file path on
// the provided context. A nil parent context starts from context.Background.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, resolvedConfigurationFileContextKey, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path recorded on the
// provided context, if any.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, recorded := executionContext.Value(resolvedConfigurationFileContextKey).(string)
	if !recorded || len(configurationFilePath) == 0 {
		return "", false
	}
	return configurationFilePath, true
}
