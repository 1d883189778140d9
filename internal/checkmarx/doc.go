// Package checkmarx integrates with the Checkmarx One platform: it exchanges
// long-lived refresh credentials for access tokens against the IAM token
// endpoint and retrieves scanned-project registries from the AST API.
package checkmarx
