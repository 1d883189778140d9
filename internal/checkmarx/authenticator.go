package checkmarx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultIAMTokenURL is the production Checkmarx IAM token-exchange endpoint.
	DefaultIAMTokenURL = "https://deu.iam.checkmarx.net/auth/realms/events-canary/protocol/openid-connect/token"

	grantTypeFormFieldConstant              = "grant_type"
	refreshTokenGrantTypeConstant           = "refresh_token"
	clientIdentifierFormFieldConstant       = "client_id"
	clientIdentifierValueConstant           = "ast-app"
	refreshTokenFormFieldConstant           = "refresh_token"
	formContentTypeConstant                 = "application/x-www-form-urlencoded"
	contentTypeHeaderNameConstant           = "Content-Type"
	tokenRequestCreationErrorTemplate       = "unable to build token exchange request: %w"
	tokenRequestExecutionErrorTemplate      = "unable to execute token exchange request: %w"
	tokenExchangeFailureStatusTemplate      = "failed to get authentication: status %d"
	tokenResponseDecodeErrorTemplate        = "unable to decode token exchange response: %w"
	emptyAccessTokenErrorMessageConstant    = "token exchange response carried no access token"
)

// Authenticator exchanges refresh-style credentials for short-lived access
// tokens against the Checkmarx IAM token endpoint. Tokens are not cached;
// every exchange performs a fresh request.
type Authenticator struct {
	httpClient *http.Client
	tokenURL   string
}

// NewAuthenticator constructs an Authenticator for the provided token
// endpoint. A nil httpClient falls back to http.DefaultClient and an empty
// tokenURL to the production endpoint.
func NewAuthenticator(httpClient *http.Client, tokenURL string) *Authenticator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if len(strings.TrimSpace(tokenURL)) == 0 {
		tokenURL = DefaultIAMTokenURL
	}

	return &Authenticator{
		httpClient: httpClient,
		tokenURL:   tokenURL,
	}
}

// ExchangeRefreshToken performs the fixed-identity token exchange and returns
// the bearer token string. Any non-success response aborts the exchange.
func (authenticator *Authenticator) ExchangeRefreshToken(executionContext context.Context, refreshToken string) (string, error) {
	formValues := url.Values{}
	formValues.Set(grantTypeFormFieldConstant, refreshTokenGrantTypeConstant)
	formValues.Set(clientIdentifierFormFieldConstant, clientIdentifierValueConstant)
	formValues.Set(refreshTokenFormFieldConstant, refreshToken)

	request, requestError := http.NewRequestWithContext(executionContext, http.MethodPost, authenticator.tokenURL, strings.NewReader(formValues.Encode()))
	if requestError != nil {
		return "", fmt.Errorf(tokenRequestCreationErrorTemplate, requestError)
	}
	request.Header.Set(contentTypeHeaderNameConstant, formContentTypeConstant)

	response, responseError := authenticator.httpClient.Do(request)
	if responseError != nil {
		return "", fmt.Errorf(tokenRequestExecutionErrorTemplate, responseError)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf(tokenExchangeFailureStatusTemplate, response.StatusCode)
	}

	var exchangeResponse tokenExchangeResponse
	if decodeError := json.NewDecoder(response.Body).Decode(&exchangeResponse); decodeError != nil {
		return "", fmt.Errorf(tokenResponseDecodeErrorTemplate, decodeError)
	}

	if len(strings.TrimSpace(exchangeResponse.AccessToken)) == 0 {
		return "", errors.New(emptyAccessTokenErrorMessageConstant)
	}

	return exchangeResponse.AccessToken, nil
}
