// Package policy is the single decision point for request authorization.
//
// Allow is a pure function over (actor, action, resource): no I/O, no clock,
// deterministic, and total; unknown actions deny. Services load the target
// resource, build the Actor from the resolved user plus the request claim,
// and call Allow before any mutation.
package policy

import "github.com/clubhub/events-api/internal/core/domain"

// Action enumerates every guarded operation in the system.
type Action int

const (
	EventRead Action = iota
	EventCreate
	EventUpdate
	EventDelete
	EventCoverUpload
	EventTogglePaid
	AttendanceMark
	RegistrationView
	RegistrationListByEvent
	PaymentUpdate
	CheckinMark
	PostRead
	PostCreate
	PostUpdate
	PostDelete
	ImageRead
	ImageCreate
	ImageDelete
)

// Actor is the authorization view of a request's identity: the persisted
// user's id and role column combined with the group set from the verified
// claim. Two privilege signals exist (role column vs. "admin" group); both
// are honored, but only through the Admin predicate below so the
// canonicalization lives in exactly one place.
type Actor struct {
	ID     string
	Role   domain.UserRole
	Groups []string
}

// Admin reports whether the actor carries admin privilege via either signal.
func (a Actor) Admin() bool {
	return a.Role == domain.RoleAdmin || a.inGroup(domain.GroupAdmin)
}

// Host reports whether the actor carries the host capability group.
func (a Actor) Host() bool { return a.inGroup(domain.GroupHost) }

func (a Actor) inGroup(group string) bool {
	for _, g := range a.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// Resource is the minimal view the policy needs of a target resource. For
// attendance and payment actions the owner is the event's creator, not the
// registration's user. Callers pass the event.
type Resource interface {
	OwnerID() string
}

// rule describes what an action demands. Flags compose:
//   - public: always allowed, no actor required
//   - host: the "host" group is required (strict: the admin signals do not
//     substitute for it, matching the capability model of the provider)
//   - owner: the actor must own the resource; admin privilege overrides
//   - ownerOrHost: owning the resource, the host group, or admin, used for
//     registration reads where both the registrant and organizers may look
type rule struct {
	public      bool
	host        bool
	owner       bool
	ownerOrHost bool
}

var rules = map[Action]rule{
	EventRead: {public: true},
	PostRead:  {public: true},
	ImageRead: {public: true},

	EventCreate: {host: true},
	PostCreate:  {host: true},
	ImageCreate: {host: true},

	EventUpdate:      {owner: true},
	EventDelete:      {owner: true},
	EventCoverUpload: {owner: true},
	EventTogglePaid:  {owner: true},
	PostUpdate:       {owner: true},
	PostDelete:       {owner: true},
	ImageDelete:      {owner: true},

	AttendanceMark: {host: true, owner: true},
	PaymentUpdate:  {host: true, owner: true},
	CheckinMark:    {host: true, owner: true},

	RegistrationView:        {ownerOrHost: true},
	RegistrationListByEvent: {host: true},
}

// Allow decides whether actor may perform action on res. For owner-scoped
// actions res must be non-nil; for everything else it is ignored.
func Allow(actor Actor, action Action, res Resource) bool {
	r, known := rules[action]
	if !known {
		return false
	}
	if r.public {
		return true
	}
	if actor.ID == "" {
		return false
	}
	if r.ownerOrHost {
		return owns(actor, res) || actor.Host() || actor.Admin()
	}
	if r.host && !actor.Host() {
		return false
	}
	if r.owner && !owns(actor, res) && !actor.Admin() {
		return false
	}
	return true
}

func owns(actor Actor, res Resource) bool {
	return res != nil && res.OwnerID() == actor.ID
}
