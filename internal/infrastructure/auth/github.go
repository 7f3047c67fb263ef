package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"stagecast/internal/shared/config"
)

const (
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

type GitHubClient struct {
	config     *oauth2.Config
	httpClient *http.Client
}

type githubUser struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func NewGitHubClient(cfg config.OAuthProviderConfig) *GitHubClient {
	return &GitHubClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"user:email"},
			Endpoint:     github.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *GitHubClient) Name() string {
	return "github"
}

func (c *GitHubClient) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

func (c *GitHubClient) ExchangeCode(ctx context.Context, code string) (*ProviderToken, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return &ProviderToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}

func (c *GitHubClient) FetchIdentity(ctx context.Context, accessToken string) (*ProviderIdentity, error) {
	user, err := c.fetchUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	email, err := c.fetchPrimaryEmail(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	return &ProviderIdentity{
		Provider:   "github",
		ProviderID: strconv.Itoa(user.ID),
		Email:      email,
		Username:   user.Login,
		AvatarURL:  user.AvatarURL,
	}, nil
}

// RevokeToken is a no-op: GitHub OAuth apps have no token revocation
// endpoint usable with the user's own access token.
func (c *GitHubClient) RevokeToken(ctx context.Context, accessToken string) error {
	return nil
}

func (c *GitHubClient) fetchUser(ctx context.Context, accessToken string) (*githubUser, error) {
	body, err := c.get(ctx, githubUserURL, accessToken)
	if err != nil {
		return nil, err
	}

	var user githubUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user info: %w", err)
	}
	return &user, nil
}

// fetchPrimaryEmail returns the user's primary email, requiring it to be
// verified. Accounts without a verified primary email are rejected.
func (c *GitHubClient) fetchPrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	body, err := c.get(ctx, githubEmailsURL, accessToken)
	if err != nil {
		return "", err
	}

	var emails []githubEmail
	if err := json.Unmarshal(body, &emails); err != nil {
		return "", fmt.Errorf("failed to unmarshal emails: %w", err)
	}

	for _, email := range emails {
		if email.Primary {
			if !email.Verified {
				return "", fmt.Errorf("primary email is not verified")
			}
			return email.Email, nil
		}
	}

	return "", fmt.Errorf("no verified primary email found")
}

func (c *GitHubClient) get(ctx context.Context, url, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call github: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github request failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
