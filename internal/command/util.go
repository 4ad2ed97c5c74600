package command

import "fmt"

// StudentRepoName derives the name of a student's copy of a master
// repository.
func StudentRepoName(student, masterName string) string {
	return fmt.Sprintf("%s-%s", student, masterName)
}

// StudentRepoNames derives all student repository names for the cross
// product of master repositories and students, master-major order.
func StudentRepoNames(masterNames, students []string) []string {
	names := make([]string, 0, len(masterNames)*len(students))
	for _, master := range masterNames {
		for _, student := range students {
			names = append(names, StudentRepoName(student, master))
		}
	}
	return names
}

// teamsByStudent maps each student to a single-member team named after the
// student. One team per student keeps repository access individual.
func teamsByStudent(students []string) map[string][]string {
	members := make(map[string][]string, len(students))
	for _, student := range students {
		members[student] = []string{student}
	}
	return members
}
