package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portail-rh/internal/domain"
)

func TestAllowed(t *testing.T) {
	// Every role submits and lists its own requests.
	for _, role := range []domain.UserRole{domain.RoleUser, domain.RoleChef, domain.RoleAdmin} {
		assert.True(t, domain.Allowed(role, domain.ActionRequestCreate), "%s should create", role)
		assert.True(t, domain.Allowed(role, domain.ActionRequestListOwn), "%s should list own", role)
	}

	// Review is the chef tier, finalize the admin tier.
	assert.True(t, domain.Allowed(domain.RoleChef, domain.ActionRequestReview))
	assert.False(t, domain.Allowed(domain.RoleChef, domain.ActionRequestFinalize))
	assert.True(t, domain.Allowed(domain.RoleAdmin, domain.ActionRequestFinalize))
	assert.False(t, domain.Allowed(domain.RoleUser, domain.ActionRequestReview))

	// Administration surfaces stay admin-only.
	for _, action := range []domain.Action{
		domain.ActionUserManage,
		domain.ActionDepartmentManage,
		domain.ActionAppControlWrite,
		domain.ActionDashboardView,
		domain.ActionAuditView,
		domain.ActionRequestListAll,
	} {
		assert.True(t, domain.Allowed(domain.RoleAdmin, action))
		assert.False(t, domain.Allowed(domain.RoleChef, action), "chef should not have %s", action)
		assert.False(t, domain.Allowed(domain.RoleUser, action), "user should not have %s", action)
	}

	// Unknown role gets nothing.
	assert.False(t, domain.Allowed(domain.UserRole("guest"), domain.ActionRequestCreate))
}
