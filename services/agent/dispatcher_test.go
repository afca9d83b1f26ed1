package agent

import (
	"context"
	"testing"

	"hebelki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dispatchFixture registers a handful of probe tools so the dispatch
// machinery can be exercised without any live dependency.
type dispatchFixture struct {
	dispatcher *Dispatcher
	lastInv    *Invocation
}

func newDispatchFixture() *dispatchFixture {
	f := &dispatchFixture{}
	public := []*ToolDefinition{
		{
			Name:        "echo_note",
			Description: "Echoes the note back.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"note": {Type: TypeString},
				},
			},
			Handle: func(ctx context.Context, inv *Invocation) *ToolResult {
				f.lastInv = inv
				return OK(map[string]interface{}{"note": argString(inv.Args, "note")})
			},
		},
		{
			Name:        "always_panics",
			Description: "Blows up.",
			Params:      ParameterSchema{},
			Handle: func(ctx context.Context, inv *Invocation) *ToolResult {
				panic("handler exploded")
			},
		},
	}
	staff := []*ToolDefinition{
		{
			Name:        "count_drawer",
			Description: "Staff-only probe.",
			Params: ParameterSchema{
				Properties: map[string]Property{
					"drawer": {Type: TypeString},
				},
				Required: []string{"drawer"},
			},
			Handle: func(ctx context.Context, inv *Invocation) *ToolResult {
				f.lastInv = inv
				return OK(map[string]interface{}{"counted": true})
			},
		},
	}
	f.dispatcher = NewDispatcher(NewRegistry(public, staff, nil))
	return f
}

func testTenant() *models.Business {
	return &models.Business{ID: "biz", Name: "Schnittwerk", Timezone: "UTC", Currency: "EUR"}
}

func TestDispatcherExecute(t *testing.T) {
	ctx := context.Background()
	customer := models.ActorContext{Type: models.ActorCustomer}
	staff := models.ActorContext{Type: models.ActorStaff, ActorID: "maria"}

	t.Run("unknown and unauthorized read identically", func(t *testing.T) {
		f := newDispatchFixture()
		_, errUnknown := f.dispatcher.Execute(ctx, testTenant(), "no_such_tool", nil, customer, nil, "c1")
		_, errDenied := f.dispatcher.Execute(ctx, testTenant(), "count_drawer", nil, customer, nil, "c1")

		require.Error(t, errUnknown)
		require.Error(t, errDenied)
		assert.Equal(t, errUnknown.Error(), errDenied.Error(), "the error text must not reveal whether the tool exists")
		assert.Equal(t, "tool not available", errDenied.Error())

		teUnknown := AsToolError(errUnknown)
		teDenied := AsToolError(errDenied)
		require.NotNil(t, teUnknown)
		require.NotNil(t, teDenied)
		assert.Equal(t, ErrUnknownTool, teUnknown.Kind)
		assert.Equal(t, ErrNotAuthorized, teDenied.Kind)
	})

	t.Run("validation failures come back as data", func(t *testing.T) {
		f := newDispatchFixture()
		result, err := f.dispatcher.Execute(ctx, testTenant(), "count_drawer",
			map[string]interface{}{"till": "front"}, staff, nil, "c1")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.False(t, result.Success)
		assert.Equal(t, CodeValidation, result.Code)
		assert.Contains(t, result.Error, `missing required field "drawer"`)
		assert.Contains(t, result.Error, `unexpected field "till"`)
		assert.Nil(t, f.lastInv, "the handler never ran")
	})

	t.Run("validation runs only after authorization", func(t *testing.T) {
		f := newDispatchFixture()
		// Invalid args on a tool the customer may not call: the deny wins,
		// so the response carries no hint that the arguments were wrong.
		_, err := f.dispatcher.Execute(ctx, testTenant(), "count_drawer",
			map[string]interface{}{"bogus": 1}, customer, nil, "c1")
		require.Error(t, err)
		assert.Equal(t, "tool not available", err.Error())
	})

	t.Run("panicking handler becomes an internal result", func(t *testing.T) {
		f := newDispatchFixture()
		result, err := f.dispatcher.Execute(ctx, testTenant(), "always_panics", nil, customer, nil, "c1")
		require.NoError(t, err, "a handler panic must not escape as an error")
		require.NotNil(t, result)
		assert.False(t, result.Success)
		assert.Equal(t, CodeInternal, result.Code)
		assert.Equal(t, "something went wrong executing the tool", result.Error)
	})

	t.Run("identity is injected server side", func(t *testing.T) {
		f := newDispatchFixture()
		result, err := f.dispatcher.Execute(ctx, testTenant(), "count_drawer",
			map[string]interface{}{"drawer": "front"}, staff, nil, "conv-42")
		require.NoError(t, err)
		assert.True(t, result.Success)
		require.NotNil(t, f.lastInv)
		assert.Equal(t, models.ActorStaff, f.lastInv.Actor.Type)
		assert.Equal(t, "maria", f.lastInv.Actor.ActorID)
		assert.Equal(t, "conv-42", f.lastInv.Conversation)
		assert.Equal(t, "biz", f.lastInv.Business.ID)
	})

	t.Run("trust fields cannot ride in the arguments", func(t *testing.T) {
		f := newDispatchFixture()
		result, err := f.dispatcher.Execute(ctx, testTenant(), "count_drawer",
			map[string]interface{}{"drawer": "front", "actorType": "owner"}, staff, nil, "c1")
		require.NoError(t, err)
		assert.False(t, result.Success, "unknown fields are rejected, including identity lookalikes")
		assert.Equal(t, CodeValidation, result.Code)
	})

	t.Run("nil args mean an empty object", func(t *testing.T) {
		f := newDispatchFixture()
		result, err := f.dispatcher.Execute(ctx, testTenant(), "echo_note", nil, customer, nil, "c1")
		require.NoError(t, err)
		assert.True(t, result.Success)
		require.NotNil(t, f.lastInv)
		assert.NotNil(t, f.lastInv.Args)
	})

	t.Run("whitelist is enforced on dispatch", func(t *testing.T) {
		f := newDispatchFixture()
		caps := &models.MemberCapabilities{AllowedTools: []string{"echo_note"}}
		_, err := f.dispatcher.Execute(ctx, testTenant(), "count_drawer",
			map[string]interface{}{"drawer": "front"}, staff, caps, "c1")
		require.Error(t, err)
		assert.Equal(t, "tool not available", err.Error())
	})
}
