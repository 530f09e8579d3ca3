// Package workflow defines the inspection state machine shared by the
// quality control and warehouse approval stages.
//
//	pending -> in_progress -> submitted -> approved
//	                                    -> rejected
//
// Every transition is looked up in a single table keyed by action. A lookup
// checks the current state first (InvalidTransition) and then the caller's
// roles (Forbidden).
package workflow

import (
	"fmt"

	"warehouse/pkg/apperror"
)

type State string

const (
	Pending    State = "pending"
	InProgress State = "in_progress"
	Submitted  State = "submitted"
	Approved   State = "approved"
	Rejected   State = "rejected"
)

// Terminal reports whether no further action is possible from s
func (s State) Terminal() bool {
	return s == Approved || s == Rejected
}

type Action string

const (
	ActionStart       Action = "start"
	ActionUpdateLines Action = "update_lines"
	ActionSubmit      Action = "submit"
	ActionApprove     Action = "approve"
	ActionReject      Action = "reject"
	ActionAssign      Action = "assign"
)

// Role is what the caller is to a particular record, derived per call.
type Role string

const (
	RoleAssignee   Role = "assignee"   // caller is the record's current assignee
	RoleEditor     Role = "editor"     // holds <stage>:update
	RoleApprover   Role = "approver"   // holds <stage>:approve
	RoleSupervisor Role = "supervisor" // holds <stage>:assign
)

type rule struct {
	from  []State
	to    State // empty keeps the current state
	roles []Role
}

var rules = map[Action]rule{
	ActionStart:       {from: []State{Pending}, to: InProgress, roles: []Role{RoleAssignee}},
	ActionUpdateLines: {from: []State{Pending, InProgress}, roles: []Role{RoleAssignee, RoleEditor}},
	ActionSubmit:      {from: []State{Pending, InProgress}, to: Submitted, roles: []Role{RoleAssignee}},
	ActionApprove:     {from: []State{Submitted}, to: Approved, roles: []Role{RoleApprover}},
	ActionReject:      {from: []State{Submitted}, to: Rejected, roles: []Role{RoleApprover}},
	ActionAssign:      {from: []State{Pending, InProgress, Submitted}, roles: []Role{RoleSupervisor}},
}

// Next returns the state reached when a caller holding roles performs action from the given state.
func Next(from State, action Action, roles ...Role) (State, error) {
	r, ok := rules[action]
	if !ok {
		return from, fmt.Errorf("unknown action %q: %w", action, apperror.ErrInvalidTransition)
	}

	if !containsState(r.from, from) {
		return from, fmt.Errorf("cannot %s a record in status %q: %w", action, from, apperror.ErrInvalidTransition)
	}

	if !anyRole(r.roles, roles) {
		return from, fmt.Errorf("not allowed to %s this record: %w", action, apperror.ErrForbidden)
	}

	if r.to == "" {
		return from, nil
	}
	return r.to, nil
}

// Allowed lists the actions a caller with roles may take from state.
func Allowed(from State, roles ...Role) []Action {
	order := []Action{ActionStart, ActionUpdateLines, ActionSubmit, ActionApprove, ActionReject, ActionAssign}
	var out []Action
	for _, a := range order {
		if _, err := Next(from, a, roles...); err == nil {
			out = append(out, a)
		}
	}
	return out
}

func containsState(states []State, s State) bool {
	for _, candidate := range states {
		if candidate == s {
			return true
		}
	}
	return false
}

func anyRole(allowed, held []Role) bool {
	for _, a := range allowed {
		for _, h := range held {
			if a == h {
				return true
			}
		}
	}
	return false
}
