package scorecard

import (
	"strconv"
	"strings"

	"kpiboard/internal/domain/directory"
)

// ResolveResponsible finds the user accountable for a scorecard. The
// responsible person name wins when it matches a user exactly; otherwise the
// first active assignment for the scorecard is resolved through
// ResolveAssignmentUser. Returns nil when nobody resolves, in which case the
// task engine emits nothing for the scorecard.
func ResolveResponsible(sc Scorecard, assignments []Assignment, users []directory.User) *directory.User {
	if sc.ResponsiblePerson != "" {
		if user := directory.FindUserByName(users, sc.ResponsiblePerson); user != nil {
			return user
		}
	}
	for _, a := range assignments {
		if a.ScorecardID != sc.ID || !a.IsActive {
			continue
		}
		if user := ResolveAssignmentUser(a, users); user != nil {
			return user
		}
	}
	return nil
}

// ResolveAssignmentUser maps an assignment's user id onto the user list.
// Historic assignments carry numeric positions and stringified ids from an
// earlier schema, so resolution tries exact id equality, then a 0-based index
// into the user list, then trimmed case-insensitive string comparison. The
// tier order is load-bearing: legacy numeric ids only resolve through the
// last tier. Known technical debt, kept until the assignment records are
// migrated.
func ResolveAssignmentUser(a Assignment, users []directory.User) *directory.User {
	for i := range users {
		if users[i].ID == a.UserID {
			return &users[i]
		}
	}

	if idx, err := strconv.Atoi(strings.TrimSpace(a.UserID)); err == nil && idx >= 0 && idx < len(users) {
		return &users[idx]
	}

	want := strings.TrimSpace(a.UserID)
	for i := range users {
		if strings.EqualFold(strings.TrimSpace(users[i].ID), want) {
			return &users[i]
		}
	}
	return nil
}
