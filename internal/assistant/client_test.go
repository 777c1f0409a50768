package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGenerate(t *testing.T) {
	var gotPath, gotKey string

	var gotBody generateRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Role: "model", Parts: []part{{Text: "hello back"}}}},
			},
		})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "gemini-test", "secret-key")

	text, err := c.Generate(context.Background(), "be brief", []Turn{{Role: "user", Text: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, "hello back", text)

	assert.Equal(t, "/v1beta/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "secret-key", gotKey)
	require.NotNil(t, gotBody.SystemInstruction)
	assert.Equal(t, "be brief", gotBody.SystemInstruction.Parts[0].Text)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "user", gotBody.Contents[0].Role)
}

func TestClientGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			},
		},
		{
			name: "empty candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(generateResponse{})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			c := NewClient(ts.URL, "gemini-test", "k")

			_, err := c.Generate(context.Background(), "", []Turn{{Role: "user", Text: "hi"}})
			assert.Error(t, err)
		})
	}
}
