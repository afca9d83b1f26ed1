package handlers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"hebelki/config"
	"hebelki/middleware"
	"hebelki/services/agent"
	"hebelki/utils"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	maxVoiceNoteBytes = 5 * 1024 * 1024
	voiceNoteExt      = ".wav"
)

// AgentHandler exposes the conversational surface. Identity comes from the
// auth middleware, never from the request body.
type AgentHandler struct {
	Agent agent.ConversationService
}

func NewAgentHandler(svc agent.ConversationService) *AgentHandler {
	return &AgentHandler{Agent: svc}
}

type chatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message" binding:"required"`
}

// ChatHandler runs one text turn of the agent conversation.
// POST /api/:business/agent/chat
func (h *AgentHandler) ChatHandler(c *gin.Context) {
	biz := tenantOf(c)
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.Agent.HandleTurn(c.Request.Context(), biz, agent.TurnRequest{
		ConversationID: req.ConversationID,
		Message:        req.Message,
		Actor:          middleware.Actor(c),
		Capabilities:   middleware.Capabilities(c),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Agent turn failed", "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VoiceHandler transcribes an uploaded WAV voice note and feeds the
// transcript through the same turn path as text.
// POST /api/:business/agent/voice (multipart: audio, conversationId?, language?)
func (h *AgentHandler) VoiceHandler(c *gin.Context) {
	biz := tenantOf(c)
	language := c.DefaultPostForm("language", "en-US")
	conversationID := c.PostForm("conversationId")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "audio file is required", err.Error())
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != voiceNoteExt {
		utils.JSONError(c, http.StatusBadRequest, "invalid file type",
			fmt.Sprintf("expected %s, got %s", voiceNoteExt, ext))
		return
	}

	audioData, err := io.ReadAll(io.LimitReader(file, maxVoiceNoteBytes))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to read audio file", err.Error())
		return
	}

	wav, err := parseWaveHeader(audioData)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid WAV file", err.Error())
		return
	}

	transcript, err := transcribe(c, audioData, wav, language)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "speech recognition failed", err.Error())
		return
	}
	if transcript == "" {
		c.JSON(http.StatusOK, gin.H{"transcription": "", "reply": "I couldn't hear anything in that recording."})
		return
	}

	resp, err := h.Agent.HandleTurn(c.Request.Context(), biz, agent.TurnRequest{
		ConversationID: conversationID,
		Message:        transcript,
		Actor:          middleware.Actor(c),
		Capabilities:   middleware.Capabilities(c),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Agent turn failed", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription":  transcript,
		"conversationId": resp.ConversationID,
		"reply":          resp.Reply,
		"intent":         resp.Intent,
	})
}

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}
	var header waveHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE file")
	}
	// PCM format code 1; compressed uploads are rejected rather than
	// transcoded server-side.
	if header.AudioFormat != 1 {
		return nil, fmt.Errorf("unsupported WAV format code %d, want PCM", header.AudioFormat)
	}
	if header.NumChannels != 1 && header.NumChannels != 2 {
		return nil, fmt.Errorf("unsupported channel count %d", header.NumChannels)
	}
	return &header, nil
}

func transcribe(c *gin.Context, audioData []byte, wav *waveHeader, language string) (string, error) {
	ctx := c.Request.Context()

	var opts []option.ClientOption
	if config.AppConfig.SpeechCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.SpeechCredentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to initialize speech client: %w", err)
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(wav.SampleRate),
			LanguageCode:      language,
			AudioChannelCount: int32(wav.NumChannels),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		return "", err
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}
