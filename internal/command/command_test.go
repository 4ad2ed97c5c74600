package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slarse/repomate/pkg/github"
	"github.com/slarse/repomate/pkg/gitrepo"
)

type fakeAPI struct {
	teams        []github.Team
	teamsErr     error
	memberCalls  []map[string][]string
	createdSpecs []github.RepoSpec
	createErr    error
	repoURLBase  string
	openedIssues []github.Issue
	openedRepos  [][]string
	openErr      error
	closedRegex  string
	closedRepos  []string
}

func (f *fakeAPI) EnsureTeamsAndMembers(members map[string][]string) ([]github.Team, error) {
	f.memberCalls = append(f.memberCalls, members)
	if f.teamsErr != nil {
		return nil, f.teamsErr
	}
	if f.teams != nil {
		return f.teams, nil
	}
	teams := make([]github.Team, 0, len(members))
	id := int64(1)
	for name := range members {
		teams = append(teams, github.Team{ID: id, Name: name, Slug: name})
		id++
	}
	return teams, nil
}

func (f *fakeAPI) CreateRepos(specs []github.RepoSpec) ([]string, error) {
	f.createdSpecs = append(f.createdSpecs, specs...)
	if f.createErr != nil {
		return nil, f.createErr
	}
	urls := make([]string, 0, len(specs))
	for _, spec := range specs {
		urls = append(urls, f.base()+"/"+spec.Name)
	}
	return urls, nil
}

func (f *fakeAPI) GetRepoURLs(names []string) ([]string, error) {
	urls := make([]string, 0, len(names))
	for _, name := range names {
		urls = append(urls, f.base()+"/"+name)
	}
	return urls, nil
}

func (f *fakeAPI) OpenIssue(issue github.Issue, repoNames []string) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.openedIssues = append(f.openedIssues, issue)
	f.openedRepos = append(f.openedRepos, repoNames)
	return nil
}

func (f *fakeAPI) CloseIssue(titleRegex string, repoNames []string) error {
	f.closedRegex = titleRegex
	f.closedRepos = repoNames
	return nil
}

func (f *fakeAPI) base() string {
	if f.repoURLBase != "" {
		return f.repoURLBase
	}
	return "https://git.example.com/course"
}

type fakeGit struct {
	clones    []string
	cloneDsts []string
	cloneErr  error
	pushes    []string
	pushErrs  map[string]error
}

func (f *fakeGit) Clone(url, dst string) error {
	f.clones = append(f.clones, url)
	f.cloneDsts = append(f.cloneDsts, dst)
	return f.cloneErr
}

func (f *fakeGit) Push(_ string, remoteURL string) error {
	f.pushes = append(f.pushes, remoteURL)
	if err, ok := f.pushErrs[remoteURL]; ok {
		return err
	}
	return nil
}

func TestStudentRepoNames(t *testing.T) {
	names := StudentRepoNames([]string{"task-1", "task-2"}, []string{"alice", "bob"})
	assert.Equal(t, []string{
		"alice-task-1", "bob-task-1",
		"alice-task-2", "bob-task-2",
	}, names)
}

func TestAddStudentsToTeams(t *testing.T) {
	api := &fakeAPI{}

	err := AddStudentsToTeams([]string{"alice", "bob"}, api)
	require.NoError(t, err)

	require.Len(t, api.memberCalls, 1)
	assert.Equal(t, map[string][]string{
		"alice": {"alice"},
		"bob":   {"bob"},
	}, api.memberCalls[0])
}

func TestSetupStudentRepos(t *testing.T) {
	api := &fakeAPI{teams: []github.Team{
		{ID: 11, Name: "alice", Slug: "alice"},
		{ID: 12, Name: "bob", Slug: "bob"},
	}}
	g := &fakeGit{}

	err := SetupStudentRepos(
		[]string{"https://git.example.com/course/task-1"},
		[]string{"alice", "bob"},
		"teacher", api, g,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://git.example.com/course/task-1"}, g.clones)

	require.Len(t, api.createdSpecs, 2)
	assert.Equal(t, "alice-task-1", api.createdSpecs[0].Name)
	assert.Equal(t, int64(11), api.createdSpecs[0].TeamID)
	assert.True(t, api.createdSpecs[0].Private)
	assert.Equal(t, "bob-task-1", api.createdSpecs[1].Name)
	assert.Equal(t, int64(12), api.createdSpecs[1].TeamID)

	assert.Equal(t, []string{
		"https://git.example.com/course/alice-task-1",
		"https://git.example.com/course/bob-task-1",
	}, g.pushes)
}

func TestSetupStudentRepos_CloneFailureAborts(t *testing.T) {
	api := &fakeAPI{}
	g := &fakeGit{cloneErr: &gitrepo.CloneFailedError{URL: "u", Cause: errors.New("gone")}}

	err := SetupStudentRepos([]string{"u"}, []string{"alice"}, "teacher", api, g)
	require.Error(t, err)

	var cloneErr *gitrepo.CloneFailedError
	assert.ErrorAs(t, err, &cloneErr)
	assert.Empty(t, api.createdSpecs, "no repos are created when the master cannot be cloned")
}

func TestUpdateStudentRepos_OpensIssueForFailedPushes(t *testing.T) {
	failedURL := "https://git.example.com/course/bob-task-1"
	api := &fakeAPI{}
	g := &fakeGit{pushErrs: map[string]error{
		failedURL: &gitrepo.PushFailedError{URL: failedURL, Cause: errors.New("denied")},
	}}

	issue := &github.Issue{Title: "Update failed", Body: "Sort out your repo"}
	err := UpdateStudentRepos(
		[]string{"https://git.example.com/course/task-1"},
		[]string{"alice", "bob"},
		"teacher", api, g, issue,
	)
	require.NoError(t, err)

	require.Len(t, api.openedRepos, 1)
	assert.Equal(t, []string{"bob-task-1"}, api.openedRepos[0])
	assert.Equal(t, *issue, api.openedIssues[0])
}

func TestUpdateStudentRepos_NoIssueReturnsPushError(t *testing.T) {
	failedURL := "https://git.example.com/course/alice-task-1"
	api := &fakeAPI{}
	g := &fakeGit{pushErrs: map[string]error{
		failedURL: &gitrepo.PushFailedError{URL: failedURL, Cause: errors.New("denied")},
	}}

	err := UpdateStudentRepos(
		[]string{"https://git.example.com/course/task-1"},
		[]string{"alice"},
		"teacher", api, g, nil,
	)
	require.Error(t, err)

	var pushErr *gitrepo.PushFailedError
	require.ErrorAs(t, err, &pushErr)
	assert.Equal(t, failedURL, pushErr.URL)
	assert.Empty(t, api.openedRepos)
}

func TestUpdateStudentRepos_AllPushesSucceed(t *testing.T) {
	api := &fakeAPI{}
	g := &fakeGit{}

	err := UpdateStudentRepos(
		[]string{"https://git.example.com/course/task-1"},
		[]string{"alice"},
		"teacher", api, g, &github.Issue{Title: "unused"},
	)
	require.NoError(t, err)
	assert.Empty(t, api.openedRepos, "no issue is opened when every push succeeds")
}

func TestOpenIssue(t *testing.T) {
	api := &fakeAPI{}
	issue := github.Issue{Title: "Deadline", Body: "Tomorrow!"}

	err := OpenIssue(issue, []string{"task-1"}, []string{"alice", "bob"}, api)
	require.NoError(t, err)

	require.Len(t, api.openedRepos, 1)
	assert.Equal(t, []string{"alice-task-1", "bob-task-1"}, api.openedRepos[0])
}

func TestCloseIssue(t *testing.T) {
	api := &fakeAPI{}

	err := CloseIssue(`^Deadline`, []string{"task-1"}, []string{"alice"}, api)
	require.NoError(t, err)

	assert.Equal(t, `^Deadline`, api.closedRegex)
	assert.Equal(t, []string{"alice-task-1"}, api.closedRepos)
}

func TestMigrateRepos(t *testing.T) {
	api := &fakeAPI{teams: []github.Team{{ID: 42, Name: MasterTeam, Slug: MasterTeam}}}
	g := &fakeGit{}

	err := MigrateRepos([]string{"file:///home/teacher/task-1"}, "teacher", api, g)
	require.NoError(t, err)

	require.Len(t, api.memberCalls, 1)
	assert.Equal(t, map[string][]string{MasterTeam: {"teacher"}}, api.memberCalls[0])

	require.Len(t, api.createdSpecs, 1)
	assert.Equal(t, "task-1", api.createdSpecs[0].Name)
	assert.Equal(t, int64(42), api.createdSpecs[0].TeamID)

	assert.Equal(t, []string{"file:///home/teacher/task-1"}, g.clones)
	assert.Equal(t, []string{"https://git.example.com/course/task-1"}, g.pushes)
}

func TestCloneRepos(t *testing.T) {
	api := &fakeAPI{}
	g := &fakeGit{}

	err := CloneRepos([]string{"task-1"}, []string{"alice", "bob"}, api, g)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://git.example.com/course/alice-task-1",
		"https://git.example.com/course/bob-task-1",
	}, g.clones)
	assert.Equal(t, []string{"alice-task-1", "bob-task-1"}, g.cloneDsts)
}

func TestCloneRepos_CloneFailurePropagates(t *testing.T) {
	api := &fakeAPI{}
	g := &fakeGit{cloneErr: &gitrepo.CloneFailedError{URL: "u", Cause: errors.New("missing")}}

	err := CloneRepos([]string{"task-1"}, []string{"alice"}, api, g)
	require.Error(t, err)

	var cloneErr *gitrepo.CloneFailedError
	assert.ErrorAs(t, err, &cloneErr)
}
