package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"githubsearch/logger"
	"githubsearch/models"
	"githubsearch/sorting"
)

// GitHubClientInterface abstracts the GitHub client operations needed by the service
// (for testability)
type GitHubClientInterface interface {
	FetchUser(ctx context.Context, username string) (*models.UserProfile, error)
	FetchRepos(ctx context.Context, reposURL string) ([]models.Repository, error)
	SearchRepos(ctx context.Context, language string) ([]models.Repository, error)
}

// ProfileService proxies profile and explore lookups to GitHub
type ProfileService struct {
	client GitHubClientInterface
}

// NewProfileService creates a ProfileService backed by client
func NewProfileService(client GitHubClientInterface) *ProfileService {
	return &ProfileService{client: client}
}

// GetUserProfileAndRepos fetches a user's profile followed by the repositories
// at its repos_url. Repositories are returned most recently created first.
func (p *ProfileService) GetUserProfileAndRepos(ctx context.Context, username string) (*models.ProfileResponse, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", models.ErrInvalidInput)
	}

	profile, err := p.client.FetchUser(ctx, username)
	if err != nil {
		return nil, err
	}

	repos, err := p.client.FetchRepos(ctx, profile.ReposURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories for %s: %w", username, err)
	}

	logger.Debug("Profile assembled",
		zap.String("username", profile.Login),
		zap.Int("repo_count", len(repos)))

	return &models.ProfileResponse{
		UserProfile: profile,
		Repos:       sorting.SortBy(repos, models.SortRecent),
	}, nil
}

// ExploreRepos returns the most starred repositories for a language
func (p *ProfileService) ExploreRepos(ctx context.Context, language string) (*models.ExploreResponse, error) {
	if language == "" {
		return nil, fmt.Errorf("%w: language cannot be empty", models.ErrInvalidInput)
	}

	repos, err := p.client.SearchRepos(ctx, language)
	if err != nil {
		return nil, err
	}

	return &models.ExploreResponse{Repos: repos}, nil
}
