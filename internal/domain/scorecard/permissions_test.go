package scorecard

import (
	"testing"

	"kpiboard/internal/domain/directory"
)

func TestResponsiblePersonCanEnterAndSubmit(t *testing.T) {
	eval := NewEvaluator(nil)
	sc := Scorecard{ID: "1", Department: "Sales", ResponsiblePerson: "John Doe"}
	user := directory.User{Name: "John Doe", Role: directory.RoleUser}

	if !eval.CanEnter(user, sc) {
		t.Fatal("responsible person must be able to enter")
	}
	if !eval.CanSubmit(user, sc) {
		t.Fatal("responsible person must be able to submit")
	}
	if eval.CanApprove(user, sc) {
		t.Fatal("responsible person must not be able to approve")
	}
}

func TestManagerMatchesViaFirstNameTier(t *testing.T) {
	eval := NewEvaluator([]directory.Department{{Name: "Sales", Manager: "Jane D. Smith"}})
	sc := Scorecard{ID: "1", Department: "Sales"}
	user := directory.User{Name: "jane smith", Role: directory.RoleManager, Department: "Sales"}

	if !eval.CanEnter(user, sc) {
		t.Fatal("department manager must be able to enter")
	}
	if !eval.CanSubmit(user, sc) {
		t.Fatal("department manager must be able to submit")
	}
}

func TestManagerOfOtherDepartmentDenied(t *testing.T) {
	eval := NewEvaluator([]directory.Department{
		{Name: "Sales", Manager: "Jane Smith"},
		{Name: "Ops", Manager: "Bob Ray"},
	})
	sc := Scorecard{ID: "1", Department: "Sales"}
	user := directory.User{Name: "Bob Ray", Role: directory.RoleManager, Department: "Ops"}

	if eval.CanEnter(user, sc) {
		t.Fatal("manager of another department must not enter")
	}
	if eval.CanSubmit(user, sc) {
		t.Fatal("manager of another department must not submit")
	}
}

func TestHRManagerAsymmetry(t *testing.T) {
	eval := NewEvaluator(nil)
	sc := Scorecard{ID: "1", Department: "Sales"}
	user := directory.User{Name: "Pat HR", Role: directory.RoleHRManager, Department: "HR"}

	if !eval.CanEnter(user, sc) {
		t.Fatal("HR Manager must be able to enter")
	}
	if eval.CanSubmit(user, sc) {
		t.Fatal("HR Manager role alone must not grant submit rights")
	}
	if !eval.CanApprove(user, sc) {
		t.Fatal("HR Manager must be able to approve")
	}
}

func TestManagerInHRDepartment(t *testing.T) {
	eval := NewEvaluator(nil)
	sc := Scorecard{ID: "1", Department: "Sales"}
	user := directory.User{Name: "Pat Lee", Role: directory.RoleManager, Department: "HR"}

	if !eval.CanEnter(user, sc) {
		t.Fatal("HR-seated manager must be able to enter")
	}
	if !eval.CanApprove(user, sc) {
		t.Fatal("HR-seated manager must be able to approve")
	}
}

func TestAdminHasNoApproveOverride(t *testing.T) {
	eval := NewEvaluator(nil)
	sc := Scorecard{ID: "1", Department: "Sales"}
	admin := directory.User{Name: "Root", Role: directory.RoleAdmin, Department: "IT"}

	if !eval.CanEnter(admin, sc) {
		t.Fatal("admin must be able to enter")
	}
	if !eval.CanSubmit(admin, sc) {
		t.Fatal("admin must be able to submit")
	}
	if eval.CanApprove(admin, sc) {
		t.Fatal("admin without HR affiliation must not approve")
	}
}

func TestPlainUserDeniedEverywhere(t *testing.T) {
	eval := NewEvaluator([]directory.Department{{Name: "Sales", Manager: "Jane Smith"}})
	sc := Scorecard{ID: "1", Department: "Sales", ResponsiblePerson: "John Doe"}
	user := directory.User{Name: "Someone Else", Role: directory.RoleUser, Department: "Sales"}

	if eval.CanEnter(user, sc) || eval.CanSubmit(user, sc) || eval.CanApprove(user, sc) {
		t.Fatal("unaffiliated user must be denied everywhere")
	}
}
