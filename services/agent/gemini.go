// File: services/agent/gemini.go
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hebelki/config"
	"hebelki/models"
	"hebelki/utils"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// maxToolRounds caps how many function-call rounds one turn may take before
// the conversation is handed back to the user.
const maxToolRounds = 8

// refusalReply is what the user sees when the model asked for a tool the
// dispatcher rejected. Unknown and unauthorized read the same on purpose.
const refusalReply = "That's not something I can help with here. I can assist with services, appointments and anything else about the business."

// TurnRequest is one inbound conversation message.
type TurnRequest struct {
	ConversationID string
	Message        string
	Actor          models.ActorContext
	Capabilities   *models.MemberCapabilities
}

// ToolCallRecord summarizes one dispatched tool call of a turn.
type ToolCallRecord struct {
	Tool    string `json:"tool"`
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
}

// TurnResponse is the completed turn.
type TurnResponse struct {
	ConversationID string                     `json:"conversationId"`
	Reply          string                     `json:"reply"`
	Intent         *models.ConversationIntent `json:"intent,omitempty"`
	ToolCalls      []ToolCallRecord           `json:"toolCalls,omitempty"`
}

// ConversationService runs agent turns end to end.
type ConversationService interface {
	HandleTurn(ctx context.Context, biz *models.Business, req TurnRequest) (*TurnResponse, error)
}

// GeminiAgent drives conversations through Gemini function calling. Each
// turn advertises only the tools the gate would let the actor call, then
// loops model → dispatcher → model until the model answers in text.
type GeminiAgent struct {
	client      *genai.Client
	modelName   string
	registry    *Registry
	dispatcher  *Dispatcher
	intents     IntentStore
	transcripts TranscriptStore
}

// NewGeminiAgent connects to the Gemini API with the configured key and
// model.
func NewGeminiAgent(ctx context.Context, reg *Registry, intents IntentStore, transcripts TranscriptStore) (*GeminiAgent, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiAgent{
		client:      client,
		modelName:   config.AppConfig.GeminiModel,
		registry:    reg,
		dispatcher:  NewDispatcher(reg),
		intents:     intents,
		transcripts: transcripts,
	}, nil
}

// Close releases the underlying API client.
func (a *GeminiAgent) Close() error {
	return a.client.Close()
}

// HandleTurn runs one full conversation turn.
func (a *GeminiAgent) HandleTurn(ctx context.Context, biz *models.Business, req TurnRequest) (*TurnResponse, error) {
	convID := req.ConversationID
	if convID == "" {
		convID = uuid.NewString()
	}
	logger := utils.GetLogger()

	intent, err := a.intents.Get(ctx, biz.ID, convID)
	if err != nil {
		logger.Warn("Failed to load conversation intent", zap.Error(err))
		intent = &models.ConversationIntent{State: models.IntentIdle}
	}
	history, err := a.transcripts.Load(ctx, biz.ID, convID)
	if err != nil {
		logger.Warn("Failed to load conversation transcript", zap.Error(err))
		history = nil
	}

	// A conversation that already confirmed a booking is bound to that
	// customer; later customer-tier turns stay scoped to their own records.
	if req.Actor.Type == models.ActorCustomer && req.Actor.CustomerScopeID == "" {
		req.Actor.CustomerScopeID = intent.CustomerID
	}

	caps := a.registry.SanitizeCapabilities(req.Capabilities)
	visible := a.registry.VisibleTo(req.Actor, caps)

	model := a.client.GenerativeModel(a.modelName)
	if len(visible) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: declarationsFor(visible)}}
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt(biz, req.Actor, intent, time.Now()))},
	}

	chat := model.StartChat()
	chat.History = toGenaiHistory(history)

	var (
		reply   string
		records []ToolCallRecord
	)
	parts := []genai.Part{genai.Text(req.Message)}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := chat.SendMessage(ctx, parts...)
		if err != nil {
			return nil, fmt.Errorf("gemini generate error: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			reply = "Sorry, I didn't catch that. Could you say it again?"
			break
		}

		var sb strings.Builder
		var calls []genai.FunctionCall
		for _, part := range resp.Candidates[0].Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				sb.WriteString(string(p))
			case genai.FunctionCall:
				calls = append(calls, p)
			}
		}
		if len(calls) == 0 {
			reply = strings.TrimSpace(sb.String())
			break
		}

		responses := make([]genai.Part, 0, len(calls))
		rejected := false
		for _, call := range calls {
			result, err := a.dispatcher.Execute(ctx, biz, ToolName(call.Name), call.Args, req.Actor, caps, convID)
			if err != nil {
				// Dispatch-level failure: the turn ends with a generic
				// refusal and the model learns nothing about the catalog.
				rejected = true
				break
			}
			records = append(records, ToolCallRecord{
				Tool:    call.Name,
				Success: result.Success,
				Code:    result.Code,
			})
			intent = advanceIntent(intent, ToolName(call.Name), call.Args, result)
			responses = append(responses, genai.FunctionResponse{
				Name:     call.Name,
				Response: result.AsMap(),
			})
		}
		if rejected {
			reply = refusalReply
			break
		}
		parts = responses
	}

	if reply == "" {
		reply = "I wasn't able to finish that request. Could you rephrase it?"
	}

	if err := a.intents.Set(ctx, biz.ID, convID, intent); err != nil {
		logger.Warn("Failed to persist conversation intent", zap.Error(err))
	}
	if err := a.transcripts.Append(ctx, biz.ID, convID,
		TranscriptEntry{Role: "user", Text: req.Message},
		TranscriptEntry{Role: "model", Text: reply},
	); err != nil {
		logger.Warn("Failed to persist conversation transcript", zap.Error(err))
	}

	return &TurnResponse{
		ConversationID: convID,
		Reply:          reply,
		Intent:         intent,
		ToolCalls:      records,
	}, nil
}

// systemPrompt frames the model for this business and actor, with the
// advisory intent reminder folded in when there is one.
func systemPrompt(biz *models.Business, actor models.ActorContext, intent *models.ConversationIntent, now time.Time) string {
	loc := biz.Location()
	local := now.In(loc)

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are the assistant of %s.", biz.Name)
	if biz.Description != "" {
		fmt.Fprintf(&sb, " %s.", strings.TrimSuffix(biz.Description, "."))
	}
	fmt.Fprintf(&sb, "\nCurrent local time: %s (%s).",
		local.Format("Monday, 2 January 2006 15:04"), biz.Timezone)
	fmt.Fprintf(&sb, "\nPrices are in %s.", biz.Currency)

	switch actor.Type {
	case models.ActorOwner:
		sb.WriteString("\nYou are talking to the business owner.")
	case models.ActorStaff:
		sb.WriteString("\nYou are talking to a staff member.")
	default:
		if actor.CustomerScopeID != "" {
			sb.WriteString("\nYou are talking to a returning customer of this conversation.")
		} else {
			sb.WriteString("\nYou are talking to a customer.")
		}
	}

	sb.WriteString("\nUse the provided tools for every factual claim about services, availability, bookings or prices; never invent data.")
	sb.WriteString("\nA booking is only fixed once confirm_booking succeeded. Holds expire after a few minutes.")
	sb.WriteString("\nKeep replies short and natural, in the language the user writes in.")

	if intent != nil {
		if reminder := intent.Reminder(now); reminder != "" {
			sb.WriteString("\n")
			sb.WriteString(reminder)
		}
	}
	return sb.String()
}

// declarationsFor renders registry entries into the wire tool declarations.
func declarationsFor(defs []*ToolDefinition) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, def := range defs {
		params := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema, len(def.Params.Properties)),
			Required:   def.Params.Required,
		}
		for name, prop := range def.Params.Properties {
			params.Properties[name] = genaiSchema(prop)
		}
		out = append(out, &genai.FunctionDeclaration{
			Name:        string(def.Name),
			Description: def.Description,
			Parameters:  params,
		})
	}
	return out
}

func genaiSchema(p Property) *genai.Schema {
	s := &genai.Schema{Description: p.Description}
	switch p.Type {
	case TypeString:
		s.Type = genai.TypeString
	case TypeNumber:
		s.Type = genai.TypeNumber
	case TypeInteger:
		s.Type = genai.TypeInteger
	case TypeBoolean:
		s.Type = genai.TypeBoolean
	case TypeArray:
		s.Type = genai.TypeArray
		if p.Items != nil {
			s.Items = genaiSchema(*p.Items)
		}
	case TypeObject:
		s.Type = genai.TypeObject
		s.Properties = make(map[string]*genai.Schema, len(p.Properties))
		for name, nested := range p.Properties {
			s.Properties[name] = genaiSchema(nested)
		}
		s.Required = p.Required
	}
	if len(p.Enum) > 0 {
		s.Enum = p.Enum
	}
	return s
}

func toGenaiHistory(entries []TranscriptEntry) []*genai.Content {
	out := make([]*genai.Content, 0, len(entries))
	for _, e := range entries {
		out = append(out, &genai.Content{
			Role:  e.Role,
			Parts: []genai.Part{genai.Text(e.Text)},
		})
	}
	return out
}
