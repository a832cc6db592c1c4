package domain

// Action names a portal operation gated by the policy table.
type Action string

const (
	ActionRequestCreate   Action = "request:create"
	ActionRequestListOwn  Action = "request:list_own"
	ActionRequestListTeam Action = "request:list_team"
	ActionRequestListAll  Action = "request:list_all"
	ActionRequestReview   Action = "request:review"   // first tier, chef
	ActionRequestFinalize Action = "request:finalize" // second tier, admin
	ActionRequestDelete   Action = "request:delete"

	ActionUserManage       Action = "user:manage"
	ActionDepartmentManage Action = "department:manage"
	ActionAppControlWrite  Action = "app_control:write"
	ActionDashboardView    Action = "dashboard:view"
	ActionAuditView        Action = "audit:view"
	ActionCalendarView     Action = "calendar:view"
)

// policy is the single (role, action) allow table consulted by middleware
// and services, instead of role conditionals scattered per route.
var policy = map[UserRole]map[Action]bool{
	RoleUser: {
		ActionRequestCreate:  true,
		ActionRequestListOwn: true,
		ActionRequestDelete:  true,
		ActionCalendarView:   true,
	},
	RoleChef: {
		ActionRequestCreate:   true,
		ActionRequestListOwn:  true,
		ActionRequestListTeam: true,
		ActionRequestReview:   true,
		ActionRequestDelete:   true,
		ActionCalendarView:    true,
	},
	RoleAdmin: {
		ActionRequestCreate:    true,
		ActionRequestListOwn:   true,
		ActionRequestListTeam:  true,
		ActionRequestListAll:   true,
		ActionRequestFinalize:  true,
		ActionRequestDelete:    true,
		ActionUserManage:       true,
		ActionDepartmentManage: true,
		ActionAppControlWrite:  true,
		ActionDashboardView:    true,
		ActionAuditView:        true,
		ActionCalendarView:     true,
	},
}

// Allowed reports whether role may perform action.
func Allowed(role UserRole, action Action) bool {
	return policy[role][action]
}
