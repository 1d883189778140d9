package checkmarx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const (
	// DefaultAPIBaseURL is the production Checkmarx AST endpoint.
	DefaultAPIBaseURL = "https://deu.ast.checkmarx.net"

	projectListPathTemplateConstant       = "%s/api/projects/?limit=%d"
	projectTagsPathTemplateConstant       = "%s/api/projects/tags"
	projectListLimitConstant              = 1000
	acceptHeaderNameConstant              = "Accept"
	versionedJSONAcceptValueConstant      = "application/json; version=1.0"
	registryRequestCreationErrorTemplate  = "unable to build registry request: %w"
	registryRequestExecutionErrorTemplate = "unable to execute registry request: %w"
	registryFailureStatusTemplateConstant = "failed to retrieve registry entries: status %d"
	registryResponseDecodeErrorTemplate   = "unable to decode registry response: %w"
	tagCategoryMissingTemplateConstant    = "tag index carries no %s category"
	githubRepositoryTagCategoryConstant   = "GITHUB_REPOSITORY"
	clientBaseURLTrimSetConstant          = "/"
)

// RegistryClient retrieves scanned-project registries from the Checkmarx AST
// API. Requests authenticate with a bearer token supplied per call; the
// registry endpoints are not paginated and their single response is assumed
// complete.
type RegistryClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewRegistryClient constructs a RegistryClient for the provided AST base
// URL. A nil httpClient falls back to http.DefaultClient and an empty base
// URL to the production endpoint.
func NewRegistryClient(httpClient *http.Client, baseURL string) *RegistryClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if len(strings.TrimSpace(baseURL)) == 0 {
		baseURL = DefaultAPIBaseURL
	}

	return &RegistryClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, clientBaseURLTrimSetConstant),
	}
}

// ListProjects fetches up to the endpoint limit of registered projects in a
// single call.
func (client *RegistryClient) ListProjects(executionContext context.Context, accessToken string) ([]Project, error) {
	endpointURL := fmt.Sprintf(projectListPathTemplateConstant, client.baseURL, projectListLimitConstant)

	var listResponse projectListResponse
	if fetchError := client.fetchRegistryDocument(executionContext, accessToken, endpointURL, &listResponse); fetchError != nil {
		return nil, fetchError
	}

	return listResponse.Projects, nil
}

// ListTaggedRepositories fetches the tag index and returns the repository
// names filed under the GitHub repository cross-reference category.
func (client *RegistryClient) ListTaggedRepositories(executionContext context.Context, accessToken string) ([]string, error) {
	endpointURL := fmt.Sprintf(projectTagsPathTemplateConstant, client.baseURL)

	var tagIndex map[string][]string
	if fetchError := client.fetchRegistryDocument(executionContext, accessToken, endpointURL, &tagIndex); fetchError != nil {
		return nil, fetchError
	}

	taggedRepositories, categoryPresent := tagIndex[githubRepositoryTagCategoryConstant]
	if !categoryPresent {
		return nil, fmt.Errorf(tagCategoryMissingTemplateConstant, githubRepositoryTagCategoryConstant)
	}

	return taggedRepositories, nil
}

func (client *RegistryClient) fetchRegistryDocument(executionContext context.Context, accessToken string, endpointURL string, target any) error {
	request, requestError := http.NewRequestWithContext(executionContext, http.MethodGet, endpointURL, nil)
	if requestError != nil {
		return fmt.Errorf(registryRequestCreationErrorTemplate, requestError)
	}
	request.Header.Set(acceptHeaderNameConstant, versionedJSONAcceptValueConstant)

	response, responseError := client.authorizedHTTPClient(executionContext, accessToken).Do(request)
	if responseError != nil {
		return fmt.Errorf(registryRequestExecutionErrorTemplate, responseError)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf(registryFailureStatusTemplateConstant, response.StatusCode)
	}

	if decodeError := json.NewDecoder(response.Body).Decode(target); decodeError != nil {
		return fmt.Errorf(registryResponseDecodeErrorTemplate, decodeError)
	}

	return nil
}

// authorizedHTTPClient wraps the configured transport with an oauth2 static
// token source so every registry request carries the bearer authorization
// header.
func (client *RegistryClient) authorizedHTTPClient(executionContext context.Context, accessToken string) *http.Client {
	clientContext := context.WithValue(executionContext, oauth2.HTTPClient, client.httpClient)
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return oauth2.NewClient(clientContext, tokenSource)
}
