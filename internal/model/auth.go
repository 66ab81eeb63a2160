package model

// TokenResponse is the login success payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

// Permission describes who may invoke an operation. The zero value (no
// roles) allows any authenticated account.
type Permission struct {
	roles []string
}

// AnyAuthenticated allows every authenticated account regardless of role.
func AnyAuthenticated() Permission {
	return Permission{}
}

// RoleIn allows only accounts whose role is in the given set.
func RoleIn(roles ...string) Permission {
	return Permission{roles: roles}
}

func (p Permission) Allows(role string) bool {
	if len(p.roles) == 0 {
		return true
	}
	for _, r := range p.roles {
		if r == role {
			return true
		}
	}
	return false
}
