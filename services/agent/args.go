// File: services/agent/args.go
package agent

import (
	"encoding/json"

	"hebelki/services/booking"
	"hebelki/services/invoicing"
	"hebelki/utils"

	"go.uber.org/zap"
)

// Argument accessors. The schema has already validated types, so these only
// need to pick the value out.

func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argInt(args map[string]interface{}, key string) int {
	if f, ok := asFloat(args[key]); ok {
		return int(f)
	}
	return 0
}

func argFloat(args map[string]interface{}, key string) float64 {
	if f, ok := asFloat(args[key]); ok {
		return f
	}
	return 0
}

func argBool(args map[string]interface{}, key string) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return false
}

func argList(args map[string]interface{}, key string) []interface{} {
	if v, ok := args[key].([]interface{}); ok {
		return v
	}
	return nil
}

func argStringSlice(args map[string]interface{}, key string) []string {
	items := argList(args, key)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func argObject(args map[string]interface{}, key string) map[string]interface{} {
	if v, ok := args[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

// jsonMap flattens any model struct into the basic-typed map the function
// response protocol requires, honoring the struct's json tags.
func jsonMap(v interface{}) map[string]interface{} {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]interface{}{}
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}

// jsonList does the same for slices.
func jsonList(v interface{}) []interface{} {
	b, err := json.Marshal(v)
	if err != nil {
		return []interface{}{}
	}
	var out []interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return []interface{}{}
	}
	if out == nil {
		return []interface{}{}
	}
	return out
}

// failFrom maps a service-layer error onto a result the model can react to.
// Typed business failures keep their code; anything else is logged and
// reported generically.
func failFrom(err error) *ToolResult {
	if re := booking.AsReservationError(err); re != nil {
		return Fail(re.Code, re.Message)
	}
	if ie := invoicing.AsInvoiceError(err); ie != nil {
		return Fail(ie.Code, ie.Message)
	}
	utils.GetLogger().Error("Tool execution failed", zap.Error(err))
	return Fail(CodeInternal, "something went wrong, please try again")
}
