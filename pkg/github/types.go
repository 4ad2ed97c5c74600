package github

// Team is a hosting API grouping of user accounts used to grant
// repository access.
type Team struct {
	ID   int64
	Name string
	Slug string
}

// RepoSpec describes a repository to create in the target organization.
type RepoSpec struct {
	Name        string
	Description string
	Private     bool
	// TeamID grants the team access to the repository at creation time.
	// Zero means no team.
	TeamID int64
}

// Issue is an issue title plus body. When read from a file, the first line
// is the title and the remainder is the body.
type Issue struct {
	Title string
	Body  string
}
