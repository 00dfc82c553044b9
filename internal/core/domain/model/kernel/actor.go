package kernel

import (
	"errors"
	"fmt"
	"strings"

	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor or SystemActor")

// Role is the capacity in which an actor acts on an order.
type Role string

const (
	RoleStaff      Role = "staff"
	RoleSupervisor Role = "supervisor"
	RoleBuyer      Role = "buyer"
	RoleSystem     Role = "system"
)

func (r Role) Validate() error {
	switch r {
	case RoleStaff, RoleSupervisor, RoleBuyer, RoleSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a known role", string(r)))
	}
}

// Actor is recorded as statusUpdatedBy and in the transition history.
type Actor struct {
	id    string
	role  Role
	guard guard.ConstructorGuard
}

func NewActor(id string, role Role) (Actor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor")
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// SystemActor is the identity of background processes such as the
// finalization sweep.
func SystemActor(process string) Actor {
	return Actor{id: "system:" + process, role: RoleSystem, guard: guard.NewConstructorGuard()}
}

func (a Actor) ID() string { return a.id }
func (a Actor) Role() Role { return a.role }
func (a Actor) IsStaff() bool {
	return a.role == RoleStaff || a.role == RoleSupervisor
}

// IsPrivileged reports whether the actor may finalize an order or move it
// back out of FINALIZED.
func (a Actor) IsPrivileged() bool {
	return a.role == RoleSupervisor || a.role == RoleSystem
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) String() string {
	return a.id
}
