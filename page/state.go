// Package page holds the state of the profile search page and the rules for
// moving between its states. The page is modelled as an explicit State value
// updated by a pure Reduce function; Page wraps it with the network calls.
package page

import (
	"githubsearch/models"
	"githubsearch/sorting"
)

// Phase is the position of the search flow
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Errored
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// State is everything the page renders from
type State struct {
	Phase    Phase
	Profile  *models.UserProfile
	Repos    []models.Repository
	Loading  bool
	SortType models.SortType
	Err      string

	// Seq identifies the most recently submitted search
	Seq uint64
}

// NewState returns the state of a freshly opened page
func NewState() State {
	return State{
		Phase:    Idle,
		Repos:    []models.Repository{},
		SortType: models.DefaultSortType,
	}
}

// Action is an event applied to State by Reduce
type Action interface {
	isAction()
}

// SearchStarted is dispatched when a username is submitted
type SearchStarted struct {
	Seq uint64
}

// SearchSucceeded carries the result of a search
type SearchSucceeded struct {
	Seq     uint64
	Profile *models.UserProfile
	Repos   []models.Repository
}

// SearchFailed carries the error of a search
type SearchFailed struct {
	Seq uint64
	Err error
}

// SortSelected changes the order of the displayed repositories
type SortSelected struct {
	Type models.SortType
}

func (SearchStarted) isAction()   {}
func (SearchSucceeded) isAction() {}
func (SearchFailed) isAction()    {}
func (SortSelected) isAction()    {}

// Reduce returns the state that follows s after a. It never mutates s or
// the slices it references. Results of a search other than the latest
// submitted one are discarded.
func Reduce(s State, a Action) State {
	if !accepts(s, a) {
		return s
	}
	switch a := a.(type) {
	case SearchStarted:
		s.Phase = Loading
		s.Loading = true
		s.Profile = nil
		s.Repos = []models.Repository{}
		s.Err = ""
		s.Seq = a.Seq

	case SearchSucceeded:
		s.Phase = Loaded
		s.Loading = false
		s.Profile = a.Profile
		s.SortType = models.DefaultSortType
		s.Repos = sorting.SortBy(a.Repos, s.SortType)

	case SearchFailed:
		s.Phase = Errored
		s.Loading = false
		if a.Err != nil {
			s.Err = a.Err.Error()
		}

	case SortSelected:
		s.SortType = a.Type
		s.Repos = sorting.SortBy(s.Repos, a.Type)
	}
	return s
}

// accepts reports whether a applies to s. Search results only apply to the
// search that is still loading. Sorting waits for loading to finish and
// ignores unknown sort types.
func accepts(s State, a Action) bool {
	switch a := a.(type) {
	case SearchSucceeded:
		return s.Phase == Loading && a.Seq == s.Seq
	case SearchFailed:
		return s.Phase == Loading && a.Seq == s.Seq
	case SortSelected:
		if _, err := models.ParseSortType(string(a.Type)); err != nil {
			return false
		}
		return !s.Loading
	}
	return true
}

// ShowSpinner reports whether the loading indicator is displayed
func (s State) ShowSpinner() bool {
	return s.Loading
}

// ShowProfile reports whether the profile panel is displayed
func (s State) ShowProfile() bool {
	return s.Profile != nil && !s.Loading
}

// ShowRepos reports whether the repository list is displayed
func (s State) ShowRepos() bool {
	return !s.Loading
}

// ShowSortControl reports whether the sort control is displayed
func (s State) ShowSortControl() bool {
	return len(s.Repos) > 0
}
