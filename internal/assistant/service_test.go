package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfield/crmd/internal/lead"
	"github.com/stackfield/crmd/internal/legalcase"
	"github.com/stackfield/crmd/internal/task"
)

type stubGen struct {
	reply string
	err   error
}

func (s *stubGen) Generate(ctx context.Context, system string, turns []Turn) (string, error) {
	return s.reply, s.err
}

type stubDeps struct {
	tasks []task.CreateParams
	leads []lead.CreateParams
	notes []string
	sent  []string
}

func (s *stubDeps) Create(ctx context.Context, tenantID string, params task.CreateParams) (*task.Task, error) {
	s.tasks = append(s.tasks, params)

	return &task.Task{ID: "task-1", Title: params.Title}, nil
}

type stubLeads struct{ deps *stubDeps }

func (s stubLeads) Create(ctx context.Context, tenantID string, params lead.CreateParams) (*lead.Lead, error) {
	s.deps.leads = append(s.deps.leads, params)

	return &lead.Lead{ID: "lead-1", Name: params.Name}, nil
}

func (s *stubDeps) AddNote(ctx context.Context, tenantID, id, author, body string) (*legalcase.Note, error) {
	s.notes = append(s.notes, body)

	return &legalcase.Note{Body: body}, nil
}

func (s *stubDeps) Send(ctx context.Context, to, subject, html string) error {
	s.sent = append(s.sent, to)

	return nil
}

func newTestService(gen Generator, deps *stubDeps) *Service {
	return NewService(gen, deps, stubLeads{deps: deps}, deps, deps)
}

func TestChatPlainReply(t *testing.T) {
	deps := &stubDeps{}
	svc := newTestService(&stubGen{reply: "You have 3 overdue tasks."}, deps)

	reply, err := svc.Chat(context.Background(), "t1", "dana", []Turn{{Role: "user", Text: "status?"}})
	require.NoError(t, err)
	assert.Equal(t, "You have 3 overdue tasks.", reply.Text)
	assert.Empty(t, reply.Executed)
	assert.Empty(t, deps.tasks)
}

func TestChatExecutesAction(t *testing.T) {
	deps := &stubDeps{}
	svc := newTestService(&stubGen{
		reply: "```json\n{\"action\": \"create_task\", \"parameters\": {\"title\": \"Call Dana\", \"due_date\": \"2026-09-15\"}}\n```",
	}, deps)

	reply, err := svc.Chat(context.Background(), "t1", "dana", nil)
	require.NoError(t, err)
	assert.Contains(t, reply.Executed, "Call Dana")

	require.Len(t, deps.tasks, 1)
	assert.Equal(t, "Call Dana", deps.tasks[0].Title)
	assert.Equal(t, "dana", deps.tasks[0].Assignee)
	require.NotNil(t, deps.tasks[0].DueDate)
	assert.Equal(t, "2026-09-15", deps.tasks[0].DueDate.Format("2006-01-02"))
}

func TestChatMalformedActionFallsBackToText(t *testing.T) {
	deps := &stubDeps{}
	svc := newTestService(&stubGen{reply: "```json\n{not json}\n```"}, deps)

	reply, err := svc.Chat(context.Background(), "t1", "dana", nil)
	require.NoError(t, err)
	assert.Empty(t, reply.Executed)
	assert.Empty(t, deps.tasks)
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name    string
		action  *Action
		wantErr bool
		check   func(t *testing.T, deps *stubDeps, confirmation string)
	}{
		{
			name:   "create_lead",
			action: &Action{Name: "create_lead", Parameters: map[string]string{"name": "Acme", "score": "70"}},
			check: func(t *testing.T, deps *stubDeps, confirmation string) {
				require.Len(t, deps.leads, 1)
				assert.Equal(t, 70, deps.leads[0].Score)
			},
		},
		{
			name:   "add_case_note",
			action: &Action{Name: "add_case_note", Parameters: map[string]string{"case_id": "c1", "body": "spoke to counsel"}},
			check: func(t *testing.T, deps *stubDeps, confirmation string) {
				assert.Equal(t, []string{"spoke to counsel"}, deps.notes)
			},
		},
		{
			name:   "send_email",
			action: &Action{Name: "send_email", Parameters: map[string]string{"to": "a@b.com", "subject": "hi"}},
			check: func(t *testing.T, deps *stubDeps, confirmation string) {
				assert.Equal(t, []string{"a@b.com"}, deps.sent)
			},
		},
		{
			name:    "unknown action",
			action:  &Action{Name: "delete_everything", Parameters: map[string]string{}},
			wantErr: true,
		},
		{
			name:    "create_task missing title",
			action:  &Action{Name: "create_task", Parameters: map[string]string{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := &stubDeps{}
			svc := newTestService(&stubGen{}, deps)

			confirmation, err := svc.Dispatch(context.Background(), "t1", "dana", tt.action)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownAction)

				return
			}

			require.NoError(t, err)
			tt.check(t, deps, confirmation)
		})
	}
}
