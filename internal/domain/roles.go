package domain

// Role is the closed set of portal roles. Tokens and the permission
// matrix only ever carry one of these values.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleStudent    Role = "student"
	RoleCounselor  Role = "counselor"
	RoleParent     Role = "parent"
	RoleCollegeRep Role = "college_rep"
)

var allRoles = []Role{RoleAdmin, RoleStudent, RoleCounselor, RoleParent, RoleCollegeRep}

func (r Role) Valid() bool {
	for _, role := range allRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Capability names a privileged portal operation. Route handlers consult
// the Permissions matrix instead of hard-coding role lists.
type Capability string

const (
	CapManageUsers          Capability = "manage-users"
	CapManageColleges       Capability = "manage-colleges"
	CapManageLeads          Capability = "manage-leads"
	CapManageAds            Capability = "manage-ads"
	CapManageSubscriptions  Capability = "manage-subscriptions"
	CapViewAnalytics        Capability = "view-analytics"
	CapApplyToColleges      Capability = "apply-to-colleges"
	CapCompareColleges      Capability = "compare-colleges"
	CapCounselStudents      Capability = "counsel-students"
	CapManageCollegeProfile Capability = "manage-college-profile"
)

// Permissions maps each capability to the roles allowed to exercise it.
// Who can log in is decided by authentication; what they can do is
// decided here.
var Permissions = map[Capability][]Role{
	CapManageUsers:          {RoleAdmin},
	CapManageColleges:       {RoleAdmin},
	CapManageLeads:          {RoleAdmin, RoleCounselor},
	CapManageAds:            {RoleAdmin},
	CapManageSubscriptions:  {RoleAdmin},
	CapViewAnalytics:        {RoleAdmin, RoleCollegeRep},
	CapApplyToColleges:      {RoleStudent, RoleParent},
	CapCompareColleges:      {RoleStudent, RoleParent, RoleCounselor},
	CapCounselStudents:      {RoleCounselor},
	CapManageCollegeProfile: {RoleCollegeRep, RoleAdmin},
}

// CheckRole reports whether role is a member of required. An empty
// required set allows any role.
func CheckRole(role Role, required ...Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// Can reports whether role may exercise the given capability.
func Can(role Role, capability Capability) bool {
	allowed, ok := Permissions[capability]
	if !ok {
		return false
	}
	return CheckRole(role, allowed...)
}
