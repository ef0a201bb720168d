// Package policy holds every authorization decision in one place. Role
// comparisons happen here and nowhere else; workflows ask, they never
// inspect roles themselves.
package policy

import (
	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/identity"
)

// EntityKind names a moderated entity for policy decisions.
type EntityKind string

const (
	KindEvent         EntityKind = "event"
	KindStory         EntityKind = "story"
	KindMentor        EntityKind = "mentor"
	KindMentorMessage EntityKind = "mentor_message"
	KindPost          EntityKind = "post"
	KindInternship    EntityKind = "internship"
)

// CanCreate reports whether the caller may create an entity of the given
// kind. Event and Internship are admin-curated; Story, Post and Mentor
// are open to any caller who has completed role selection; MentorMessage
// only requires authentication (the approved-mentor gate is a property of
// the target, enforced by the workflow that owns the lookup).
func CanCreate(kind EntityKind, caller *identity.Caller) bool {
	if caller == nil {
		return false
	}
	switch kind {
	case KindEvent, KindInternship:
		return caller.Role == constants.RoleAdmin
	case KindStory, KindPost, KindMentor:
		return caller.Role == constants.RoleStudent ||
			caller.Role == constants.RoleAlumni ||
			caller.Role == constants.RoleAdmin
	case KindMentorMessage:
		return true
	}
	return false
}

// CanUpdate reports whether the caller may edit an entity's content
// fields. Event and Story are admin-curated after creation; Post editing
// has its own owner rule (CanEditPost).
func CanUpdate(kind EntityKind, caller *identity.Caller) bool {
	if caller == nil {
		return false
	}
	switch kind {
	case KindEvent, KindStory:
		return caller.Role == constants.RoleAdmin
	}
	return false
}

// CanMutateStatus reports whether the caller may drive a lifecycle
// transition: Event active toggle, Story publish toggle, Mentor status
// review. Admin only, for every kind.
func CanMutateStatus(kind EntityKind, caller *identity.Caller) bool {
	if caller == nil {
		return false
	}
	_ = kind
	return caller.Role == constants.RoleAdmin
}

// CanDelete reports whether the caller may delete the target entity.
// Admin may always delete. A mentor application may additionally be
// withdrawn by its owner, matched by email. Post deletion is
// deliberately admin-only: the author-delete affordance some clients
// expose is not honored server-side.
func CanDelete(kind EntityKind, caller *identity.Caller, ownerEmail string) bool {
	if caller == nil {
		return false
	}
	if caller.Role == constants.RoleAdmin {
		return true
	}
	if kind == KindMentor && ownerEmail != "" && caller.Email == ownerEmail {
		return true
	}
	return false
}

// CanEditPost reports whether the caller may edit the post owned by
// authorID. Authors edit their own; admins edit anything. Editing is
// looser than deletion, which stays admin-only for posts.
func CanEditPost(caller *identity.Caller, authorID string) bool {
	if caller == nil {
		return false
	}
	if caller.Role == constants.RoleAdmin {
		return true
	}
	return authorID != "" && caller.ID == authorID
}

// CanManageInbox reports whether the caller may act on messages addressed
// to the mentor with the given email. The receiving mentor and admins
// qualify.
func CanManageInbox(caller *identity.Caller, mentorEmail string) bool {
	if caller == nil {
		return false
	}
	if caller.Role == constants.RoleAdmin {
		return true
	}
	return mentorEmail != "" && caller.Email == mentorEmail
}

// IsStudent reports whether the caller acts in the student role. Post
// provenance (isStudentPost) derives from this so no other package ever
// compares role tags.
func IsStudent(caller *identity.Caller) bool {
	return caller != nil && caller.Role == constants.RoleStudent
}

// CanManageUsers reports whether the caller may list, create, edit or
// delete provider accounts. Admin only.
func CanManageUsers(caller *identity.Caller) bool {
	return caller != nil && caller.Role == constants.RoleAdmin
}

// RoleAlreadyAssigned reports whether the account has completed role
// selection and may not choose again.
func RoleAlreadyAssigned(current constants.Role) bool {
	return current != constants.RoleUnassigned
}

// CanAssignRole reports whether an account with the current role may
// self-select the requested role. Only the one-shot unassigned ->
// student|alumni transition is permitted; admin is assigned out-of-band.
func CanAssignRole(current, requested constants.Role) bool {
	if current != constants.RoleUnassigned {
		return false
	}
	return requested == constants.RoleStudent || requested == constants.RoleAlumni
}
