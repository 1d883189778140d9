// Package credentials resolves API credential values supplied as literals,
// environment variable references, or token file paths.
package credentials
