package identity

// Claims is the identity assertion produced by a successful login. Both
// session serializers (cookie and bearer token) consume this same value,
// so role claims never diverge between the two transports.
type Claims struct {
	UserID   uint     `json:"user_id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
}

func (c *Claims) HasRole(name string) bool {
	for _, r := range c.Roles {
		if r == name {
			return true
		}
	}
	return false
}
