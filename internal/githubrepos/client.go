package githubrepos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultAPIBaseURL is the production GitHub REST endpoint.
	DefaultAPIBaseURL = "https://api.github.com"

	repositoriesPerPageConstant            = 100
	firstPageNumberConstant                = 1
	listRepositoriesPathTemplateConstant   = "%s/users/%s/repos"
	perPageQueryParameterConstant          = "per_page"
	pageQueryParameterConstant             = "page"
	authorizationHeaderNameConstant        = "Authorization"
	tokenSchemeTemplateConstant            = "token %s"
	requestCreationErrorTemplateConstant   = "unable to build repository list request: %w"
	requestExecutionErrorTemplateConstant  = "unable to execute repository list request: %w"
	listFailureStatusTemplateConstant      = "failed to retrieve repositories: status %d"
	responseDecodeErrorTemplateConstant    = "unable to decode repository list response: %w"
	pageFetchedDebugMessageConstant        = "repository page fetched"
	logFieldPageNumberConstant             = "page"
	logFieldPageRepositoryCountConstant    = "page_repository_count"
	logFieldTotalRepositoryCountConstant   = "total_repository_count"
	logFieldRequestedRepositoryCountField  = "requested_repository_count"
	inventoryFetchedInfoMessageConstant    = "repository inventory fetched"
	logFieldRepositoryOwnerFieldConstant   = "owner"
	baseURLTrailingSlashTrimSetConstant    = "/"
)

// Client fetches repository inventories from the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient constructs a Client for the provided API base URL. A nil
// httpClient falls back to http.DefaultClient and a nil logger to a no-op
// logger.
func NewClient(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(strings.TrimSpace(baseURL)) == 0 {
		baseURL = DefaultAPIBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, baseURLTrailingSlashTrimSetConstant),
		logger:     logger,
	}
}

// ListRepositories pages the repository list endpoint for the provided user
// or organization until the accumulated count reaches the requested maximum
// or a short page signals the final page. The returned slice may exceed the
// requested maximum by up to one page; callers rely on the fetch order.
func (client *Client) ListRepositories(executionContext context.Context, userOrOrganization string, apiToken string, maximumRepositoryCount int) ([]Repository, error) {
	var repositories []Repository

	pageNumber := firstPageNumberConstant
	for len(repositories) < maximumRepositoryCount {
		pageRepositories, pageError := client.fetchRepositoryPage(executionContext, userOrOrganization, apiToken, pageNumber)
		if pageError != nil {
			return nil, pageError
		}

		repositories = append(repositories, pageRepositories...)

		client.logger.Debug(
			pageFetchedDebugMessageConstant,
			zap.Int(logFieldPageNumberConstant, pageNumber),
			zap.Int(logFieldPageRepositoryCountConstant, len(pageRepositories)),
			zap.Int(logFieldTotalRepositoryCountConstant, len(repositories)),
		)

		if len(pageRepositories) < repositoriesPerPageConstant || len(repositories) >= maximumRepositoryCount {
			break
		}
		pageNumber++
	}

	client.logger.Info(
		inventoryFetchedInfoMessageConstant,
		zap.String(logFieldRepositoryOwnerFieldConstant, userOrOrganization),
		zap.Int(logFieldTotalRepositoryCountConstant, len(repositories)),
		zap.Int(logFieldRequestedRepositoryCountField, maximumRepositoryCount),
	)

	return repositories, nil
}

func (client *Client) fetchRepositoryPage(executionContext context.Context, userOrOrganization string, apiToken string, pageNumber int) ([]Repository, error) {
	endpointURL := fmt.Sprintf(listRepositoriesPathTemplateConstant, client.baseURL, url.PathEscape(userOrOrganization))

	request, requestError := http.NewRequestWithContext(executionContext, http.MethodGet, endpointURL, nil)
	if requestError != nil {
		return nil, fmt.Errorf(requestCreationErrorTemplateConstant, requestError)
	}

	queryParameters := request.URL.Query()
	queryParameters.Set(perPageQueryParameterConstant, strconv.Itoa(repositoriesPerPageConstant))
	queryParameters.Set(pageQueryParameterConstant, strconv.Itoa(pageNumber))
	request.URL.RawQuery = queryParameters.Encode()

	if len(strings.TrimSpace(apiToken)) > 0 {
		request.Header.Set(authorizationHeaderNameConstant, fmt.Sprintf(tokenSchemeTemplateConstant, apiToken))
	}

	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		return nil, fmt.Errorf(requestExecutionErrorTemplateConstant, responseError)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(listFailureStatusTemplateConstant, response.StatusCode)
	}

	var pageRepositories []Repository
	if decodeError := json.NewDecoder(response.Body).Decode(&pageRepositories); decodeError != nil {
		return nil, fmt.Errorf(responseDecodeErrorTemplateConstant, decodeError)
	}

	return pageRepositories, nil
}
