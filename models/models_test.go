package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortType(t *testing.T) {
	tests := []struct {
		input    string
		expected SortType
		wantErr  bool
	}{
		{input: "recent", expected: SortRecent},
		{input: "stars", expected: SortStars},
		{input: "forks", expected: SortForks},
		{input: "", wantErr: true},
		{input: "Stars", wantErr: true},
		{input: "watchers", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRepositoryDecodesNullFields(t *testing.T) {
	raw := `{"name":"spoon-knife","description":null,"language":null,"stargazers_count":12,"forks_count":3,"created_at":"2011-01-26T19:06:43Z"}`

	var repo Repository
	require.NoError(t, json.Unmarshal([]byte(raw), &repo))
	assert.Equal(t, "spoon-knife", repo.Name)
	assert.Empty(t, repo.Description)
	assert.Equal(t, 12, repo.StargazersCount)
	assert.Equal(t, 2011, repo.CreatedAt.Year())
}

func TestProfileResponseShape(t *testing.T) {
	b, err := json.Marshal(ProfileResponse{UserProfile: &UserProfile{Login: "octocat"}, Repos: []Repository{}})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Len(t, raw, 2)
	assert.JSONEq(t, `[]`, string(raw["repos"]))
}

func TestDecodedEntitiesMarshalUpstreamBytes(t *testing.T) {
	user := `{"login":"octocat","bio":null,"company":null,"hireable":null,"twitter_username":"octo"}`
	repo := `{"name":"spoon-knife","language":null,"topics":["demo"],"license":{"key":"mit"}}`

	var u UserProfile
	require.NoError(t, json.Unmarshal([]byte(user), &u))
	var r Repository
	require.NoError(t, json.Unmarshal([]byte(repo), &r))

	b, err := json.Marshal(ProfileResponse{UserProfile: &u, Repos: []Repository{r}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"userProfile":`+user+`,"repos":[`+repo+`]}`, string(b))
	assert.NotContains(t, string(b), "created_at")
}

func TestConstructedEntitiesMarshalFields(t *testing.T) {
	b, err := json.Marshal(Repository{Name: "hello", StargazersCount: 3})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "hello", out["name"])
	assert.EqualValues(t, 3, out["stargazers_count"])
}
