package domain

// Group names issued by the identity provider. Membership in one of these
// gates specific actions; everything else in the group set is ignored.
const (
	GroupHost  = "host"
	GroupAdmin = "admin"
)

// Claim is the verified identity assertion derived from a bearer credential.
// It lives for the duration of a single request and is never persisted.
type Claim struct {
	Subject  string
	Email    string
	Username string
	Groups   []string
}

// InGroup reports whether the claim carries the given capability group.
func (c *Claim) InGroup(group string) bool {
	for _, g := range c.Groups {
		if g == group {
			return true
		}
	}
	return false
}
