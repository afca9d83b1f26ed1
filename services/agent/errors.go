// File: services/agent/errors.go
package agent

// ToolError kinds. Unknown-tool and not-authorized failures terminate the
// tool-call turn; everything softer travels inside a ToolResult instead.
const (
	ErrUnknownTool   = "UNKNOWN_TOOL"
	ErrNotAuthorized = "NOT_AUTHORIZED"
	ErrInternal      = "INTERNAL_ERROR"
)

// ToolError is a dispatch-level failure. Message is what the actor may see;
// for unknown and unauthorized tools it is deliberately the same so a
// customer-tier caller cannot probe which operations exist.
type ToolError struct {
	Kind    string
	Message string
}

func (e *ToolError) Error() string {
	return e.Message
}

func NewUnknownToolError() error {
	return &ToolError{Kind: ErrUnknownTool, Message: "tool not available"}
}

func NewNotAuthorizedError() error {
	return &ToolError{Kind: ErrNotAuthorized, Message: "tool not available"}
}

func NewInternalToolError() error {
	return &ToolError{Kind: ErrInternal, Message: "something went wrong executing the tool"}
}

// AsToolError unwraps err into a ToolError, or nil when it is some other
// kind of failure.
func AsToolError(err error) *ToolError {
	if te, ok := err.(*ToolError); ok {
		return te
	}
	return nil
}
