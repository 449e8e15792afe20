package directory

import "strings"

// ManagerNameMatches reports whether a free-text manager name refers to the
// given user. Manager names are stored as plain strings rather than foreign
// keys, so matching runs through three tiers in order: exact case-insensitive
// equality, first-name equality, then substring containment in either
// direction. The tier order must not change; historic records resolve through
// the later tiers only.
func ManagerNameMatches(manager, userName string) bool {
	m := strings.ToLower(strings.TrimSpace(manager))
	u := strings.ToLower(strings.TrimSpace(userName))
	if m == "" || u == "" {
		return false
	}
	if m == u {
		return true
	}
	if first := firstToken(m); first != "" && first == firstToken(u) {
		return true
	}
	return strings.Contains(m, u) || strings.Contains(u, m)
}

func firstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// FindDepartment returns the department whose name equals name exactly,
// or nil.
func FindDepartment(departments []Department, name string) *Department {
	for i := range departments {
		if departments[i].Name == name {
			return &departments[i]
		}
	}
	return nil
}

// FindUserByName returns the user whose name equals name exactly, or nil.
func FindUserByName(users []User, name string) *User {
	if name == "" {
		return nil
	}
	for i := range users {
		if users[i].Name == name {
			return &users[i]
		}
	}
	return nil
}
