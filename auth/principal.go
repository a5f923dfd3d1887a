package auth

// Principal is the authenticated identity and role set derived from
// credentials at login or from a verified token. It is request-scoped
// and never persisted.
type Principal struct {
	Subject string
	Roles   []string
}

// HasAnyRole returns true when the principal holds at least one of the
// given roles. An empty required set admits any authenticated principal.
func (p *Principal) HasAnyRole(required ...string) bool {
	if len(required) == 0 {
		return true
	}
	for _, want := range required {
		for _, have := range p.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
