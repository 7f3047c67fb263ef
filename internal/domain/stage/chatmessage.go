package stage

import (
	"fmt"
	"strings"
	"time"
)

// MaxMessageLength is the maximum length of a text chat message.
const MaxMessageLength = 512

// MessageType distinguishes plain text messages, uploaded file links,
// and system events rendered specially by the client.
type MessageType string

const (
	MessageTypeText  MessageType = "TEXT"
	MessageTypeFile  MessageType = "FILE"
	MessageTypeEvent MessageType = "EVENT"
)

// Well-known event payloads broadcast into a stage's chat stream.
const (
	EventRequestToSpeak = "REQUEST_TO_SPEAK"
	EventMadeSpeaker    = "MADE_SPEAKER"
	EventMadeListener   = "MADE_LISTENER"
)

// FileMeta describes an uploaded attachment. It is only set on FILE
// messages.
type FileMeta struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ChatMessage is a single entry in a stage's chat history.
type ChatMessage struct {
	ID          uint
	SID         string
	Type        MessageType
	MessageData string
	FileMeta    *FileMeta
	StageID     uint
	UserID      uint
	CreatedAt   time.Time
}

// NewTextMessage creates a TEXT message after trimming and length
// validation. The caller is responsible for sanitizing the content.
func NewTextMessage(sid string, stageID, userID uint, text string) (*ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message is required")
	}
	if len(text) > MaxMessageLength {
		return nil, fmt.Errorf("message must be less than %d chars", MaxMessageLength)
	}
	return newMessage(sid, MessageTypeText, text, stageID, userID)
}

// NewFileMessage creates a FILE message whose payload is the public URL
// of an uploaded attachment.
func NewFileMessage(sid string, stageID, userID uint, url string, meta *FileMeta) (*ChatMessage, error) {
	if url == "" {
		return nil, fmt.Errorf("file URL is required")
	}
	msg, err := newMessage(sid, MessageTypeFile, url, stageID, userID)
	if err != nil {
		return nil, err
	}
	msg.FileMeta = meta
	return msg, nil
}

// NewEventMessage creates an EVENT message carrying a well-known event
// payload.
func NewEventMessage(sid string, stageID, userID uint, event string) (*ChatMessage, error) {
	if event == "" {
		return nil, fmt.Errorf("event is required")
	}
	return newMessage(sid, MessageTypeEvent, event, stageID, userID)
}

func newMessage(sid string, typ MessageType, data string, stageID, userID uint) (*ChatMessage, error) {
	if sid == "" {
		return nil, fmt.Errorf("sid is required")
	}
	if stageID == 0 {
		return nil, fmt.Errorf("stage ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &ChatMessage{
		SID:         sid,
		Type:        typ,
		MessageData: data,
		StageID:     stageID,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}, nil
}
