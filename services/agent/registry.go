// File: services/agent/registry.go
package agent

import (
	"context"
	"fmt"
	"sort"

	"hebelki/models"
	"hebelki/utils"

	"go.uber.org/zap"
)

// Invocation is what a handler receives: validated arguments plus the
// server-injected identity. The identity is attached by the Dispatcher after
// authorization; it never rides inside the argument object.
type Invocation struct {
	Business     *models.Business
	Args         map[string]interface{}
	Actor        models.ActorContext
	Conversation string
}

// Handler executes one tool call. Business failures are returned as data in
// the result, never as Go errors.
type Handler func(ctx context.Context, inv *Invocation) *ToolResult

// ToolDefinition is one immutable registry entry. Tier is stamped from the
// partition the entry was registered under.
type ToolDefinition struct {
	Name        ToolName
	Description string
	Tier        Tier
	Params      ParameterSchema
	Handle      Handler
}

// Registry is the merged tool catalog. It is built once at startup and passed
// to the Dispatcher; nothing mutates it afterwards.
type Registry struct {
	tools map[ToolName]*ToolDefinition
}

// NewRegistry merges the three tier partitions into one lookup table,
// stamping each entry with its originating tier. Duplicate or empty names
// are a programming error and panic at startup.
func NewRegistry(public, staff, owner []*ToolDefinition) *Registry {
	r := &Registry{tools: make(map[ToolName]*ToolDefinition)}
	r.addPartition(public, TierPublic)
	r.addPartition(staff, TierStaff)
	r.addPartition(owner, TierOwner)
	return r
}

func (r *Registry) addPartition(defs []*ToolDefinition, tier Tier) {
	for _, def := range defs {
		if def.Name == "" {
			panic("tool registered without a name")
		}
		if def.Handle == nil {
			panic(fmt.Sprintf("tool %s registered without a handler", def.Name))
		}
		if _, exists := r.tools[def.Name]; exists {
			panic(fmt.Sprintf("tool %s registered twice", def.Name))
		}
		def.Tier = tier
		r.tools[def.Name] = def
	}
}

// Lookup resolves a tool by name. No validation beyond existence.
func (r *Registry) Lookup(name ToolName) (*ToolDefinition, bool) {
	def, ok := r.tools[name]
	return def, ok
}

// Len is the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Names lists every registered tool in stable order.
func (r *Registry) Names() []ToolName {
	names := make([]ToolName, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// VisibleTo lists the definitions an actor may actually call, in stable
// order. This is what gets advertised to the reasoning component, so the
// model never sees tools the gate would reject anyway.
func (r *Registry) VisibleTo(actor models.ActorContext, caps *models.MemberCapabilities) []*ToolDefinition {
	gate := Gate{registry: r, quiet: true}
	var out []*ToolDefinition
	for _, name := range r.Names() {
		def := r.tools[name]
		if gate.Authorize(def.Name, actor, caps) {
			out = append(out, def)
		}
	}
	return out
}

// SanitizeCapabilities drops whitelist entries that no longer name a
// registered tool, warning once per stale name. The write path rejects such
// names outright; this guards records written before a tool was renamed.
func (r *Registry) SanitizeCapabilities(caps *models.MemberCapabilities) *models.MemberCapabilities {
	if caps == nil {
		return nil
	}
	kept := make([]string, 0, len(caps.AllowedTools))
	for _, name := range caps.AllowedTools {
		if _, ok := r.tools[ToolName(name)]; !ok {
			utils.GetLogger().Warn("Dropping unknown tool from capability whitelist",
				zap.String("tool", name))
			continue
		}
		kept = append(kept, name)
	}
	if len(kept) == 0 {
		return nil
	}
	return &models.MemberCapabilities{AllowedTools: kept}
}
