package command

import "log/slog"

// AddStudentsToTeams creates one team per student (named after the student)
// and adds the student to it. Existing teams and memberships are reused, so
// the operation can be repeated safely, for example when some student
// accounts were not yet activated on the first run.
func AddStudentsToTeams(students []string, api API) error {
	teams, err := api.EnsureTeamsAndMembers(teamsByStudent(students))
	if err != nil {
		return err
	}

	slog.Info("student teams are in place", "teams", len(teams))
	return nil
}
