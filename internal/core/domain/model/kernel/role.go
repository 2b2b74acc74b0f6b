package kernel

import (
	"fmt"

	"afrimercato/internal/pkg/errs"
)

// Role identifies the actor issuing a command. Every guarded state transition
// checks the caller's role against the transition table, so the role travels
// with the command envelope rather than being inferred from context.
//
// The identity collaborator resolves the authenticated session to a Role at
// the HTTP boundary; inside the core the role is just a validated tag.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer is the buyer who placed the order.
	RoleCustomer

	// RoleVendor is the store owner fulfilling the order.
	RoleVendor

	// RolePicker is the in-store worker collecting items.
	RolePicker

	// RoleRider is the courier transporting the picked order.
	RoleRider

	// RoleAdmin is an administrative operator with override powers.
	RoleAdmin

	// RoleSystem marks transitions triggered by the system itself,
	// such as dispatch assignment and substitution timeouts.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleCustomer: "Customer",
		RoleVendor:   "Vendor",
		RolePicker:   "Picker",
		RoleRider:    "Rider",
		RoleAdmin:    "Admin",
		RoleSystem:   "System",
	}
}

// RoleFromString parses a role name as supplied by the identity collaborator.
// Matching is exact on the canonical names returned by String.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the canonical role name, or "Unknown" for invalid values.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}
