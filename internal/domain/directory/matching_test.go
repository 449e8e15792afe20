package directory

import "testing"

func TestManagerNameMatchesExact(t *testing.T) {
	if !ManagerNameMatches("Jane Smith", "jane smith") {
		t.Fatal("expected case-insensitive exact match")
	}
}

func TestManagerNameMatchesFirstToken(t *testing.T) {
	if !ManagerNameMatches("Jane D. Smith", "jane smith") {
		t.Fatal("expected first-name tier to match")
	}
}

func TestManagerNameMatchesSubstring(t *testing.T) {
	if !ManagerNameMatches("Smith", "Jane Smithson") {
		t.Fatal("expected substring tier to match")
	}
	if !ManagerNameMatches("Jane Smithson", "Smith") {
		t.Fatal("expected substring tier to match in reverse direction")
	}
}

func TestManagerNameMatchesRejects(t *testing.T) {
	if ManagerNameMatches("", "Jane Smith") {
		t.Fatal("empty manager must not match")
	}
	if ManagerNameMatches("Jane Smith", "") {
		t.Fatal("empty user name must not match")
	}
	if ManagerNameMatches("John Doe", "Jane Smith") {
		t.Fatal("unrelated names must not match")
	}
}

func TestFindDepartmentExactNameOnly(t *testing.T) {
	departments := []Department{{ID: "d1", Name: "Sales"}, {ID: "d2", Name: "HR"}}

	if dept := FindDepartment(departments, "HR"); dept == nil || dept.ID != "d2" {
		t.Fatalf("expected d2, got %+v", dept)
	}
	if dept := FindDepartment(departments, "hr"); dept != nil {
		t.Fatal("department lookup must be case-sensitive")
	}
}

func TestFindUserByName(t *testing.T) {
	users := []User{{ID: "u1", Name: "John Doe"}, {ID: "u2", Name: "Jane Smith"}}

	if user := FindUserByName(users, "Jane Smith"); user == nil || user.ID != "u2" {
		t.Fatalf("expected u2, got %+v", user)
	}
	if user := FindUserByName(users, "jane smith"); user != nil {
		t.Fatal("user lookup must be exact")
	}
	if user := FindUserByName(users, ""); user != nil {
		t.Fatal("empty name must not resolve")
	}
}
