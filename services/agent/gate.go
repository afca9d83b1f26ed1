// File: services/agent/gate.go
package agent

import (
	"hebelki/models"
	"hebelki/utils"

	"go.uber.org/zap"
)

// Gate is the authoritative authorization layer for tool calls. Upstream
// surfaces (dashboard menus, the model-visible tool list) filter too, but
// never instead of this check.
type Gate struct {
	registry *Registry
	// quiet suppresses deny logging when the gate is used for visibility
	// filtering rather than an actual call.
	quiet bool
}

func NewGate(reg *Registry) *Gate {
	return &Gate{registry: reg}
}

// Authorize decides whether the actor may execute the named tool.
//
// Public tools are open to everyone. Customers get nothing else. A staff
// whitelist narrows access within the staff tier; it can never grant a tool
// above the actor's tier, so owner tools stay closed to staff no matter what
// the whitelist says. Owners are never narrowed.
func (g *Gate) Authorize(name ToolName, actor models.ActorContext, caps *models.MemberCapabilities) bool {
	def, ok := g.registry.Lookup(name)
	if !ok {
		g.deny(name, actor, "unregistered tool")
		return false
	}
	if def.Tier == TierPublic {
		return true
	}
	if actor.Type == models.ActorCustomer {
		g.deny(name, actor, "customer tier")
		return false
	}
	if def.Tier == TierOwner && actor.Type != models.ActorOwner {
		g.deny(name, actor, "owner tool")
		return false
	}
	if actor.Type == models.ActorStaff && caps != nil && len(caps.AllowedTools) > 0 {
		for _, allowed := range caps.AllowedTools {
			if ToolName(allowed) == name {
				return true
			}
		}
		g.deny(name, actor, "not whitelisted")
		return false
	}
	return true
}

func (g *Gate) deny(name ToolName, actor models.ActorContext, reason string) {
	if g.quiet {
		return
	}
	utils.GetLogger().Warn("Tool call denied",
		zap.String("tool", string(name)),
		zap.String("actorType", string(actor.Type)),
		zap.String("actorId", actor.ActorID),
		zap.String("reason", reason))
}
