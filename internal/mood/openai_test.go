package mood

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chatCompletionBody(content string) string {
	quoted, _ := json.Marshal(content)
	return fmt.Sprintf(`{
		"id": "chatcmpl-test",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "gpt-4o-mini",
		"choices": [{
			"index": 0,
			"message": {"role": "assistant", "content": %s},
			"finish_reason": "stop"
		}]
	}`, quoted)
}

func TestOpenAI_Classify(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLabel string
		wantErr   bool
	}{
		{
			name:      "single word",
			status:    http.StatusOK,
			body:      chatCompletionBody("joy"),
			wantLabel: "joy",
		},
		{
			name:      "noisy reply is cleaned",
			status:    http.StatusOK,
			body:      chatCompletionBody("  Sadness. The writer seems down."),
			wantLabel: "sadness",
		},
		{
			name:    "empty reply",
			status:  http.StatusOK,
			body:    chatCompletionBody("   "),
			wantErr: true,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":{"message":"boom","type":"server_error"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotAuth string
			var gotBody map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				_ = json.NewDecoder(r.Body).Decode(&gotBody)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			o, err := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL})
			if err != nil {
				t.Fatalf("NewOpenAI() error = %v", err)
			}

			label, err := o.Classify(context.Background(), "today was wonderful")

			if (err != nil) != tt.wantErr {
				t.Fatalf("Classify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if gotPath != "/chat/completions" {
				t.Errorf("request path = %q, want /chat/completions", gotPath)
			}
			if gotAuth != "Bearer sk-test" {
				t.Errorf("Authorization = %q, want Bearer sk-test", gotAuth)
			}
			if gotBody["model"] != DefaultOpenAIModel {
				t.Errorf("model = %v, want %s", gotBody["model"], DefaultOpenAIModel)
			}
			if label != tt.wantLabel {
				t.Errorf("Classify() = %q, want %q", label, tt.wantLabel)
			}
		})
	}
}

func TestNewOpenAI_MissingKey(t *testing.T) {
	_, err := NewOpenAI(OpenAIConfig{Model: "gpt-4o-mini"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("NewOpenAI() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		reply string
		want  string
	}{
		{"joy", "joy"},
		{"Joy.", "joy"},
		{"\"fear\"", "fear"},
		{"**anger** because...", "anger"},
		{"", ""},
		{"   \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			if got := cleanLabel(tt.reply); got != tt.want {
				t.Errorf("cleanLabel(%q) = %q, want %q", tt.reply, got, tt.want)
			}
		})
	}
}
