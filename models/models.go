// Package models defines the core data structures used throughout the application.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// UserProfile represents a GitHub user as returned by GET /users/{username}.
// A decoded profile keeps the upstream bytes and marshals back to them, so
// fields not listed here and explicit nulls reach clients unchanged. The typed
// fields are read-only views of those bytes.
type UserProfile struct {
	Login       string    `json:"login"`
	ID          int64     `json:"id"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Blog        string    `json:"blog"`
	Location    string    `json:"location"`
	Email       string    `json:"email"`
	Bio         string    `json:"bio"`
	PublicRepos int       `json:"public_repos"`
	PublicGists int       `json:"public_gists"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	ReposURL    string    `json:"repos_url"`
	CreatedAt   time.Time `json:"created_at"`

	raw json.RawMessage
}

type userProfileFields UserProfile

func (u *UserProfile) UnmarshalJSON(b []byte) error {
	var f userProfileFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*u = UserProfile(f)
	u.raw = bytes.Clone(b)
	return nil
}

func (u UserProfile) MarshalJSON() ([]byte, error) {
	if u.raw != nil {
		return u.raw, nil
	}
	return json.Marshal(userProfileFields(u))
}

// Owner is the account that owns a repository
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// Repository represents a GitHub repository. Like UserProfile, a decoded
// repository marshals back to the upstream bytes.
type Repository struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Owner           Owner     `json:"owner"`
	Description     string    `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Language        string    `json:"language"`
	Fork            bool      `json:"fork"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	WatchersCount   int       `json:"watchers_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	raw json.RawMessage
}

type repositoryFields Repository

func (r *Repository) UnmarshalJSON(b []byte) error {
	var f repositoryFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*r = Repository(f)
	r.raw = bytes.Clone(b)
	return nil
}

func (r Repository) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	return json.Marshal(repositoryFields(r))
}

// ProfileResponse is the payload served by the user profile endpoint.
type ProfileResponse struct {
	UserProfile *UserProfile `json:"userProfile"`
	Repos       []Repository `json:"repos"`
}

// ExploreResponse is the payload served by the explore endpoint.
type ExploreResponse struct {
	Repos []Repository `json:"repos"`
}

// ErrorResponse is the body written for every failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SortType selects the order of a repository list
type SortType string

const (
	SortRecent SortType = "recent"
	SortStars  SortType = "stars"
	SortForks  SortType = "forks"
)

// DefaultSortType is applied after every successful search.
const DefaultSortType = SortRecent

// ParseSortType converts a user supplied value into a SortType.
func ParseSortType(s string) (SortType, error) {
	switch SortType(s) {
	case SortRecent, SortStars, SortForks:
		return SortType(s), nil
	default:
		return "", fmt.Errorf("invalid sort type %q", s)
	}
}
