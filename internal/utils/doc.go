// Package utils carries the plumbing shared by the scangap CLI surface:
// Viper-backed configuration loading with environment overrides, zap logger
// construction for the structured and console formats, and the command
// context accessor that hands the resolved configuration file path down to
// the coverage commands.
package utils
