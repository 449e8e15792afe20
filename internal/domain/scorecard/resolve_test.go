package scorecard

import (
	"testing"

	"kpiboard/internal/domain/directory"
)

func TestResolveAssignmentUserExactID(t *testing.T) {
	users := []directory.User{{ID: "u1", Name: "A"}, {ID: "u2", Name: "B"}}
	a := Assignment{UserID: "u2"}

	user := ResolveAssignmentUser(a, users)
	if user == nil || user.ID != "u2" {
		t.Fatalf("expected u2, got %+v", user)
	}
}

func TestResolveAssignmentUserIndexHeuristic(t *testing.T) {
	users := []directory.User{{ID: "u1", Name: "A"}, {ID: "u2", Name: "B"}, {ID: "u3", Name: "C"}}
	a := Assignment{UserID: "1"}

	user := ResolveAssignmentUser(a, users)
	if user == nil || user.ID != "u2" {
		t.Fatalf("expected 0-based index to resolve u2, got %+v", user)
	}
}

func TestResolveAssignmentUserStringCoercion(t *testing.T) {
	users := []directory.User{{ID: " U-ABC ", Name: "A"}}
	a := Assignment{UserID: "u-abc"}

	user := ResolveAssignmentUser(a, users)
	if user == nil || user.Name != "A" {
		t.Fatalf("expected last-resort coerced match, got %+v", user)
	}
}

func TestResolveAssignmentUserNoMatch(t *testing.T) {
	users := []directory.User{{ID: "u1", Name: "A"}}
	if user := ResolveAssignmentUser(Assignment{UserID: "nope"}, users); user != nil {
		t.Fatalf("expected nil, got %+v", user)
	}
}

func TestResolveResponsiblePrefersNameMatch(t *testing.T) {
	users := []directory.User{{ID: "u1", Name: "John Doe"}, {ID: "u2", Name: "Jane Smith"}}
	sc := Scorecard{ID: "s1", ResponsiblePerson: "Jane Smith"}
	assignments := []Assignment{{ScorecardID: "s1", UserID: "u1", IsActive: true}}

	user := ResolveResponsible(sc, assignments, users)
	if user == nil || user.ID != "u2" {
		t.Fatalf("expected responsible person to win over assignment, got %+v", user)
	}
}

func TestResolveResponsibleFallsBackToAssignment(t *testing.T) {
	users := []directory.User{{ID: "u1", Name: "John Doe"}}
	sc := Scorecard{ID: "s1", ResponsiblePerson: "Ghost User"}
	assignments := []Assignment{
		{ScorecardID: "s1", UserID: "u1", IsActive: false},
		{ScorecardID: "s1", UserID: "u1", IsActive: true},
		{ScorecardID: "s2", UserID: "u1", IsActive: true},
	}

	user := ResolveResponsible(sc, assignments, users)
	if user == nil || user.ID != "u1" {
		t.Fatalf("expected active assignment fallback, got %+v", user)
	}
}

func TestResolveResponsibleNobody(t *testing.T) {
	sc := Scorecard{ID: "s1"}
	if user := ResolveResponsible(sc, nil, []directory.User{{ID: "u1", Name: "A"}}); user != nil {
		t.Fatalf("expected nil, got %+v", user)
	}
}
