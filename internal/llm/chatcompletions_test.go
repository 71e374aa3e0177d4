package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletionsProviderStructuredOutput(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"items\":[]}"}}]}`))
	}))
	defer server.Close()

	p := NewChatCompletionsProvider("test-key", server.URL)
	out, err := p.Complete(context.Background(), Request{
		Model: "vision-1",
		Messages: []Message{
			{Role: RoleSystem, Content: "sys"},
			{Role: RoleUser, Content: "look"},
		},
		Image:      &Image{Data: []byte{0xff, 0xd8}, MIMEType: "image/jpeg"},
		JSONSchema: map[string]interface{}{"type": "object"},
		SchemaName: "analysis",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, out)

	assert.Equal(t, "vision-1", captured["model"])
	format := captured["response_format"].(map[string]interface{})
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "analysis", format["json_schema"].(map[string]interface{})["name"])

	messages := captured["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "sys", messages[0].(map[string]interface{})["content"])
	parts := messages[1].(map[string]interface{})["content"].([]interface{})
	require.Len(t, parts, 2)
	imagePart := parts[1].(map[string]interface{})
	assert.Equal(t, "image_url", imagePart["type"])
	assert.Equal(t, "data:image/jpeg;base64,/9g=", imagePart["image_url"].(map[string]interface{})["url"])
}

func TestChatCompletionsProviderQuota(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"slow down"}`))
	}))
	defer server.Close()

	p := NewChatCompletionsProvider("k", server.URL)
	_, err := p.Complete(context.Background(), Request{Model: "m"})
	assert.True(t, IsQuotaError(err))
}

func TestChatCompletionsProviderErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/empty":
			w.Write([]byte(`{"choices":[]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	_, err := NewChatCompletionsProvider("k", server.URL+"/fail").Complete(context.Background(), Request{Model: "m"})
	require.Error(t, err)
	assert.False(t, IsQuotaError(err))

	_, err = NewChatCompletionsProvider("k", server.URL+"/empty").Complete(context.Background(), Request{Model: "m"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
