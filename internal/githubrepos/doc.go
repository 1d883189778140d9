// Package githubrepos retrieves repository inventories from the GitHub REST
// API, paging the list endpoint until the requested repository count is
// satisfied or the final page is reached.
package githubrepos
