// File: services/agent/result.go
package agent

// Result codes for business failures carried inside a ToolResult. Codes the
// domain services raise (SLOT_UNAVAILABLE, HOLD_EXPIRED, NOT_FOUND) pass
// through unchanged.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_ERROR"
)

// ToolResult is what a handler hands back to the reasoning component.
// Business failures ride in here as data so the model can react
// conversationally; only dispatch-level failures become Go errors.
type ToolResult struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Code    string                 `json:"code,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// OK wraps a successful payload.
func OK(data map[string]interface{}) *ToolResult {
	return &ToolResult{Success: true, Data: data}
}

// Fail wraps an expected business failure with its code.
func Fail(code, msg string) *ToolResult {
	return &ToolResult{Success: false, Code: code, Error: msg}
}

// AsMap renders the result for the function-response turn.
func (r *ToolResult) AsMap() map[string]interface{} {
	out := map[string]interface{}{"success": r.Success}
	if r.Success {
		for k, v := range r.Data {
			out[k] = v
		}
		return out
	}
	out["code"] = r.Code
	out["error"] = r.Error
	return out
}
