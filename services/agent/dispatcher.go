// File: services/agent/dispatcher.go
package agent

import (
	"context"

	"hebelki/models"
	"hebelki/utils"

	"go.uber.org/zap"
)

// Dispatcher is the single entry point for tool execution. The sequence is
// fixed: existence, authorization, argument validation, handler. Unknown and
// unauthorized tools fail with the same message so callers cannot probe which
// operations exist.
type Dispatcher struct {
	registry *Registry
	gate     *Gate
}

func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{registry: reg, gate: NewGate(reg)}
}

// Execute runs one tool call under the server-injected identity.
//
// The returned error is a *ToolError and terminates the turn. Validation
// problems and business failures come back inside the ToolResult so the
// reasoning component can correct course conversationally. The Invocation is
// assembled only after authorization; handlers never see trust fields from
// model-controlled input.
func (d *Dispatcher) Execute(
	ctx context.Context,
	biz *models.Business,
	name ToolName,
	args map[string]interface{},
	actor models.ActorContext,
	caps *models.MemberCapabilities,
	conversationID string,
) (result *ToolResult, err error) {
	def, ok := d.registry.Lookup(name)
	if !ok {
		utils.GetLogger().Warn("Unknown tool requested",
			zap.String("tool", string(name)),
			zap.String("actorType", string(actor.Type)))
		return nil, NewUnknownToolError()
	}
	if !d.gate.Authorize(name, actor, caps) {
		return nil, NewNotAuthorizedError()
	}

	if args == nil {
		args = map[string]interface{}{}
	}
	if verr := def.Params.Validate(args); verr != nil {
		return Fail(CodeValidation, verr.Error()), nil
	}

	inv := &Invocation{
		Business:     biz,
		Args:         args,
		Actor:        actor,
		Conversation: conversationID,
	}

	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("Tool handler panicked",
				zap.String("tool", string(name)),
				zap.Any("panic", r))
			result = Fail(CodeInternal, "something went wrong executing the tool")
			err = nil
		}
	}()

	return def.Handle(ctx, inv), nil
}
