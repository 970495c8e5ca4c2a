package enums

import "fmt"

// MemberRole is the coarse role string attached to a workshop user.
type MemberRole string

const (
	MemberRoleOwner      MemberRole = "owner"
	MemberRoleManager    MemberRole = "manager"
	MemberRoleTechnician MemberRole = "technician"
)

var validMemberRoles = []MemberRole{
	MemberRoleOwner,
	MemberRoleManager,
	MemberRoleTechnician,
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MemberRole.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
