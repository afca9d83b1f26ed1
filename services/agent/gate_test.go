package agent

import (
	"testing"

	"hebelki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRegistry() *Registry {
	return NewToolset(&HandlerDeps{})
}

func TestGateCustomerTier(t *testing.T) {
	reg := fullRegistry()
	gate := NewGate(reg)
	customer := models.ActorContext{Type: models.ActorCustomer}

	t.Run("public tools are open", func(t *testing.T) {
		for _, name := range []ToolName{ToolGetCurrentDate, ToolListServices, ToolCheckAvailability, ToolCreateHold, ToolConfirmBooking, ToolSearchKnowledge} {
			assert.True(t, gate.Authorize(name, customer, nil), string(name))
		}
	})

	t.Run("everything above public is closed", func(t *testing.T) {
		for _, name := range reg.Names() {
			def, ok := reg.Lookup(name)
			require.True(t, ok)
			if def.Tier == TierPublic {
				continue
			}
			assert.False(t, gate.Authorize(name, customer, nil), string(name))
		}
	})

	t.Run("a whitelist on a customer grants nothing", func(t *testing.T) {
		caps := &models.MemberCapabilities{AllowedTools: []string{string(ToolSearchBookings), string(ToolGetRevenueReport)}}
		assert.False(t, gate.Authorize(ToolSearchBookings, customer, caps))
		assert.False(t, gate.Authorize(ToolGetRevenueReport, customer, caps))
	})
}

func TestGateStaffTier(t *testing.T) {
	reg := fullRegistry()
	gate := NewGate(reg)
	staff := models.ActorContext{Type: models.ActorStaff, ActorID: "maria"}

	t.Run("without whitelist the whole staff tier is open", func(t *testing.T) {
		for _, name := range reg.Names() {
			def, _ := reg.Lookup(name)
			got := gate.Authorize(name, staff, nil)
			if def.Tier == TierOwner {
				assert.False(t, got, string(name))
			} else {
				assert.True(t, got, string(name))
			}
		}
	})

	t.Run("whitelist narrows to listed tools plus public", func(t *testing.T) {
		caps := &models.MemberCapabilities{AllowedTools: []string{string(ToolSearchBookings)}}
		assert.True(t, gate.Authorize(ToolSearchBookings, staff, caps))
		assert.True(t, gate.Authorize(ToolListServices, staff, caps), "public stays open regardless")
		assert.False(t, gate.Authorize(ToolCreateInvoice, staff, caps))
		assert.False(t, gate.Authorize(ToolSendMessage, staff, caps))
	})

	t.Run("whitelist never grants owner tools", func(t *testing.T) {
		caps := &models.MemberCapabilities{AllowedTools: []string{
			string(ToolCreateService),
			string(ToolGetRevenueReport),
			string(ToolDeleteCustomerData),
		}}
		assert.False(t, gate.Authorize(ToolCreateService, staff, caps))
		assert.False(t, gate.Authorize(ToolGetRevenueReport, staff, caps))
		assert.False(t, gate.Authorize(ToolDeleteCustomerData, staff, caps))
	})

	t.Run("empty whitelist means tier default", func(t *testing.T) {
		caps := &models.MemberCapabilities{AllowedTools: nil}
		assert.True(t, gate.Authorize(ToolSearchBookings, staff, caps))
		assert.True(t, gate.Authorize(ToolCreateInvoice, staff, caps))
	})
}

func TestGateOwnerTier(t *testing.T) {
	reg := fullRegistry()
	gate := NewGate(reg)
	owner := models.ActorContext{Type: models.ActorOwner, ActorID: "anna"}

	t.Run("owner may call everything", func(t *testing.T) {
		for _, name := range reg.Names() {
			assert.True(t, gate.Authorize(name, owner, nil), string(name))
		}
	})

	t.Run("a stray whitelist does not narrow the owner", func(t *testing.T) {
		caps := &models.MemberCapabilities{AllowedTools: []string{string(ToolListServices)}}
		assert.True(t, gate.Authorize(ToolCreateService, owner, caps))
		assert.True(t, gate.Authorize(ToolVoidInvoice, owner, caps))
	})
}
