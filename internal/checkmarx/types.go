package checkmarx

// Project models a scanned-project registry entry returned by the AST
// projects endpoint.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type tokenExchangeResponse struct {
	AccessToken string `json:"access_token"`
}

type projectListResponse struct {
	Projects []Project `json:"projects"`
}
