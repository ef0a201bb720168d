package policy

import (
	"testing"

	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/identity"
)

func caller(role constants.Role) *identity.Caller {
	return &identity.Caller{
		ID:    "caller-1",
		Role:  role,
		Email: "caller@example.com",
	}
}

func TestCanCreate(t *testing.T) {
	admin := caller(constants.RoleAdmin)
	alumni := caller(constants.RoleAlumni)
	student := caller(constants.RoleStudent)
	unassigned := caller(constants.RoleUnassigned)

	cases := []struct {
		name   string
		kind   EntityKind
		caller *identity.Caller
		want   bool
	}{
		{"event admin", KindEvent, admin, true},
		{"event alumni", KindEvent, alumni, false},
		{"internship admin", KindInternship, admin, true},
		{"internship student", KindInternship, student, false},
		{"story alumni", KindStory, alumni, true},
		{"story student", KindStory, student, true},
		{"story unassigned", KindStory, unassigned, false},
		{"post student", KindPost, student, true},
		{"post unassigned", KindPost, unassigned, false},
		{"mentor alumni", KindMentor, alumni, true},
		{"mentor unassigned", KindMentor, unassigned, false},
		{"message unassigned", KindMentorMessage, unassigned, true},
		{"message anonymous", KindMentorMessage, nil, false},
		{"event anonymous", KindEvent, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanCreate(tc.kind, tc.caller); got != tc.want {
				t.Errorf("CanCreate(%s) = %v, want %v", tc.kind, got, tc.want)
			}
		})
	}
}

func TestCanUpdateAdminOnly(t *testing.T) {
	for _, kind := range []EntityKind{KindEvent, KindStory} {
		if !CanUpdate(kind, caller(constants.RoleAdmin)) {
			t.Errorf("admin must edit %s content", kind)
		}
		if CanUpdate(kind, caller(constants.RoleAlumni)) {
			t.Errorf("alumni must not edit %s content", kind)
		}
		if CanUpdate(kind, nil) {
			t.Errorf("anonymous must not edit %s content", kind)
		}
	}
	if CanUpdate(KindPost, caller(constants.RoleAdmin)) {
		t.Error("post edits go through CanEditPost, not CanUpdate")
	}
}

func TestCanMutateStatusAdminOnly(t *testing.T) {
	kinds := []EntityKind{KindEvent, KindStory, KindMentor}
	for _, kind := range kinds {
		if !CanMutateStatus(kind, caller(constants.RoleAdmin)) {
			t.Errorf("admin must drive %s transitions", kind)
		}
		if CanMutateStatus(kind, caller(constants.RoleAlumni)) {
			t.Errorf("alumni must not drive %s transitions", kind)
		}
		if CanMutateStatus(kind, nil) {
			t.Errorf("anonymous must not drive %s transitions", kind)
		}
	}
}

func TestCanDelete(t *testing.T) {
	admin := caller(constants.RoleAdmin)
	owner := caller(constants.RoleAlumni)

	if !CanDelete(KindPost, admin, "") {
		t.Error("admin must delete posts")
	}
	if CanDelete(KindPost, owner, owner.Email) {
		t.Error("post deletion is admin only, even for the author")
	}
	if !CanDelete(KindMentor, owner, owner.Email) {
		t.Error("a mentor may withdraw their own application")
	}
	if CanDelete(KindMentor, owner, "someone-else@example.com") {
		t.Error("a caller must not withdraw another mentor's application")
	}
	if CanDelete(KindMentor, owner, "") {
		t.Error("an empty owner email must never match")
	}
	if CanDelete(KindMentor, nil, owner.Email) {
		t.Error("anonymous must not delete anything")
	}
}

func TestCanEditPost(t *testing.T) {
	author := caller(constants.RoleStudent)

	if !CanEditPost(author, author.ID) {
		t.Error("authors edit their own posts")
	}
	if CanEditPost(author, "other-1") {
		t.Error("authors must not edit others' posts")
	}
	if !CanEditPost(caller(constants.RoleAdmin), "other-1") {
		t.Error("admins edit any post")
	}
	if CanEditPost(author, "") {
		t.Error("an empty author id must never match")
	}
	if CanEditPost(nil, author.ID) {
		t.Error("anonymous must not edit posts")
	}
}

func TestCanManageInbox(t *testing.T) {
	mentor := caller(constants.RoleAlumni)

	if !CanManageInbox(mentor, mentor.Email) {
		t.Error("the receiving mentor manages their inbox")
	}
	if CanManageInbox(mentor, "other@example.com") {
		t.Error("a caller must not manage another mentor's inbox")
	}
	if !CanManageInbox(caller(constants.RoleAdmin), "other@example.com") {
		t.Error("admins manage any inbox")
	}
	if CanManageInbox(nil, mentor.Email) {
		t.Error("anonymous must not manage inboxes")
	}
}

func TestIsStudent(t *testing.T) {
	if !IsStudent(caller(constants.RoleStudent)) {
		t.Error("student caller must derive student provenance")
	}
	if IsStudent(caller(constants.RoleAlumni)) {
		t.Error("alumni caller must not derive student provenance")
	}
	if IsStudent(nil) {
		t.Error("anonymous must not derive student provenance")
	}
}

func TestCanManageUsers(t *testing.T) {
	if !CanManageUsers(caller(constants.RoleAdmin)) {
		t.Error("admin manages accounts")
	}
	if CanManageUsers(caller(constants.RoleStudent)) {
		t.Error("student must not manage accounts")
	}
	if CanManageUsers(nil) {
		t.Error("anonymous must not manage accounts")
	}
}

func TestCanAssignRole(t *testing.T) {
	cases := []struct {
		name      string
		current   constants.Role
		requested constants.Role
		want      bool
	}{
		{"unassigned to student", constants.RoleUnassigned, constants.RoleStudent, true},
		{"unassigned to alumni", constants.RoleUnassigned, constants.RoleAlumni, true},
		{"unassigned to admin", constants.RoleUnassigned, constants.RoleAdmin, false},
		{"unassigned to unknown", constants.RoleUnassigned, constants.Role("owner"), false},
		{"student to alumni", constants.RoleStudent, constants.RoleAlumni, false},
		{"alumni to student", constants.RoleAlumni, constants.RoleStudent, false},
		{"admin to student", constants.RoleAdmin, constants.RoleStudent, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanAssignRole(tc.current, tc.requested); got != tc.want {
				t.Errorf("CanAssignRole(%s, %s) = %v, want %v", tc.current, tc.requested, got, tc.want)
			}
		})
	}
}

func TestRoleAlreadyAssigned(t *testing.T) {
	if RoleAlreadyAssigned(constants.RoleUnassigned) {
		t.Error("unassigned accounts have no role yet")
	}
	for _, role := range []constants.Role{constants.RoleStudent, constants.RoleAlumni, constants.RoleAdmin} {
		if !RoleAlreadyAssigned(role) {
			t.Errorf("%s counts as assigned", role)
		}
	}
}
