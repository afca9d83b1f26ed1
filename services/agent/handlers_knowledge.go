// File: services/agent/handlers_knowledge.go
package agent

import (
	"context"
	"strings"

	"hebelki/utils"

	"go.uber.org/zap"
)

func (d *HandlerDeps) handleSearchKnowledge(ctx context.Context, inv *Invocation) *ToolResult {
	query := strings.TrimSpace(argString(inv.Args, "query"))
	if query == "" {
		return Fail(CodeValidation, "query must not be empty")
	}
	hits, err := d.Knowledge.Search(ctx, inv.Business.ID, query, argInt(inv.Args, "limit"))
	if err != nil {
		utils.GetLogger().Warn("Knowledge search failed",
			zap.String("businessId", inv.Business.ID),
			zap.Error(err))
		return Fail(CodeInternal, "the knowledge base is unreachable right now")
	}
	return OK(map[string]interface{}{
		"hits":  jsonList(hits),
		"count": len(hits),
	})
}
