package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAction(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    *Action
		wantErr error
	}{
		{
			name:  "fenced action",
			reply: "Sure, on it.\n```json\n{\"action\": \"create_task\", \"parameters\": {\"title\": \"Call Dana\"}}\n```\nDone.",
			want:  &Action{Name: "create_task", Parameters: map[string]string{"title": "Call Dana"}},
		},
		{
			name:  "action with no parameters",
			reply: "```json\n{\"action\": \"send_email\"}\n```",
			want:  &Action{Name: "send_email", Parameters: map[string]string{}},
		},
		{
			name:    "plain conversational reply",
			reply:   "The pipeline has 4 open opportunities worth $12,000.",
			wantErr: ErrNoAction,
		},
		{
			name:    "unclosed fence",
			reply:   "```json\n{\"action\": \"create_task\"}",
			wantErr: ErrNoAction,
		},
		{
			name:    "invalid json inside fence",
			reply:   "```json\n{\"action\": create_task}\n```",
			wantErr: ErrBadAction,
		},
		{
			name:    "missing action name",
			reply:   "```json\n{\"parameters\": {\"title\": \"x\"}}\n```",
			wantErr: ErrBadAction,
		},
		{
			name:    "unknown fields rejected",
			reply:   "```json\n{\"action\": \"create_task\", \"extra\": true}\n```",
			wantErr: ErrBadAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := ExtractAction(tt.reply)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, action)
		})
	}
}

func TestActionParam(t *testing.T) {
	a := &Action{Name: "create_task", Parameters: map[string]string{"title": "Call Dana"}}

	title, ok := a.Param("title")
	assert.True(t, ok)
	assert.Equal(t, "Call Dana", title)

	_, ok = a.Param("missing")
	assert.False(t, ok)
}
