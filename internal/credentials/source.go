package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	sourceSeparatorConstant                    = ":"
	environmentSourcePrefixConstant            = "env"
	fileSourcePrefixConstant                   = "file"
	credentialMissingErrorMessageConstant      = "credential value must be provided"
	environmentNameMissingErrorMessageConstant = "environment variable name must be provided"
	filePathMissingErrorMessageConstant        = "credential file path must be provided"
	environmentValueMissingTemplateConstant    = "environment variable %s is not set"
	fileReadErrorTemplateConstant              = "unable to read credential file %s: %w"
	fileValueEmptyErrorTemplateConstant        = "credential file %s is empty"
)

// EnvironmentLookup obtains an environment variable value.
type EnvironmentLookup func(key string) (string, bool)

// FileReader reads the contents of a file path.
type FileReader func(path string) ([]byte, error)

// Resolver turns credential references into credential values. References of
// the form "env:NAME" resolve from the environment and "file:PATH" from the
// named file; any other value is treated as the literal credential.
type Resolver struct {
	environmentLookup EnvironmentLookup
	fileReader        FileReader
}

// NewResolver creates a credential resolver with optional dependency
// overrides for environment and filesystem access.
func NewResolver(environmentLookup EnvironmentLookup, fileReader FileReader) *Resolver {
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	if fileReader == nil {
		fileReader = os.ReadFile
	}

	return &Resolver{
		environmentLookup: environmentLookup,
		fileReader:        fileReader,
	}
}

// Resolve interprets the provided credential reference and returns the
// trimmed credential value.
func (resolver *Resolver) Resolve(credentialReference string) (string, error) {
	trimmedReference := strings.TrimSpace(credentialReference)
	if len(trimmedReference) == 0 {
		return "", errors.New(credentialMissingErrorMessageConstant)
	}

	referenceComponents := strings.SplitN(trimmedReference, sourceSeparatorConstant, 2)
	if len(referenceComponents) == 1 {
		return trimmedReference, nil
	}

	sourcePrefix := strings.ToLower(strings.TrimSpace(referenceComponents[0]))
	sourceReference := strings.TrimSpace(referenceComponents[1])

	switch sourcePrefix {
	case environmentSourcePrefixConstant:
		return resolver.resolveFromEnvironment(sourceReference)
	case fileSourcePrefixConstant:
		return resolver.resolveFromFile(sourceReference)
	default:
		return trimmedReference, nil
	}
}

func (resolver *Resolver) resolveFromEnvironment(environmentName string) (string, error) {
	if len(environmentName) == 0 {
		return "", errors.New(environmentNameMissingErrorMessageConstant)
	}

	value, found := resolver.environmentLookup(environmentName)
	trimmedValue := strings.TrimSpace(value)
	if !found || len(trimmedValue) == 0 {
		return "", fmt.Errorf(environmentValueMissingTemplateConstant, environmentName)
	}
	return trimmedValue, nil
}

func (resolver *Resolver) resolveFromFile(filePath string) (string, error) {
	if len(filePath) == 0 {
		return "", errors.New(filePathMissingErrorMessageConstant)
	}

	contents, readError := resolver.fileReader(filePath)
	if readError != nil {
		return "", fmt.Errorf(fileReadErrorTemplateConstant, filePath, readError)
	}

	trimmedValue := strings.TrimSpace(string(contents))
	if len(trimmedValue) == 0 {
		return "", fmt.Errorf(fileValueEmptyErrorTemplateConstant, filePath)
	}
	return trimmedValue, nil
}
