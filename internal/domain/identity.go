package domain

// EmployeeIdentifier maps a vendor employee code to a profile inside one organization.
type EmployeeIdentifier struct {
	OrganizationID string `json:"organization_id"`
	EmployeeCode   string `json:"employee_code"`
	ProfileID      string `json:"profile_id"`
}

// Profile is the subset of a user profile needed to resolve employee codes.
type Profile struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	DisplayName    string `json:"display_name"`
	Email          string `json:"email"`
}

// ResolveMethod records which lookup tier resolved an employee code.
type ResolveMethod string

const (
	ResolveByIdentifier  ResolveMethod = "identifier"
	ResolveByName        ResolveMethod = "name"
	ResolveByEmailPrefix ResolveMethod = "email_prefix"
)

// Resolution is the result of resolving one employee code.
// An empty Method means the code is unmatched.
type Resolution struct {
	EmployeeCode string        `json:"employee_code"`
	ProfileID    string        `json:"profile_id,omitempty"`
	Method       ResolveMethod `json:"method,omitempty"`
}

// Matched reports whether the code was resolved to a profile.
func (r Resolution) Matched() bool {
	return r.Method != "" && r.ProfileID != ""
}
