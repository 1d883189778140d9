package githubrepos

// Repository models a single repository entry returned by the GitHub list
// endpoint. Only the fields consumed by coverage reconciliation are decoded.
type Repository struct {
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}
