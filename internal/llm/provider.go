package llm

import (
	"context"
	"encoding/base64"
	"fmt"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a message in the chat
type Message struct {
	Role    Role
	Content string
}

// Image is attached to the last user message of a request.
type Image struct {
	Data     []byte
	MIMEType string
}

// DataURL encodes the image as a base64 data URL.
func (i Image) DataURL() string {
	mime := i.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(i.Data))
}

// Request is one completion call against a single model.
type Request struct {
	Model    string
	Messages []Message
	Image    *Image
	// JSONSchema, when set, asks the model for a JSON object matching it.
	JSONSchema  map[string]interface{}
	SchemaName  string
	Temperature float64
}

// Provider is a hosted LLM back-end. A provider reports quota or rate-limit
// rejections as *QuotaError so that ModelChain can fall through to the next
// model.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// lastUserIndex returns the index of the last user message, or -1.
func lastUserIndex(messages []Message) int {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return i
		}
	}
	return -1
}
