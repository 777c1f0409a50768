package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/stackfield/crmd/internal/lead"
	"github.com/stackfield/crmd/internal/legalcase"
	"github.com/stackfield/crmd/internal/task"
)

// ErrUnknownAction is returned when the model asks for something we do not
// know how to perform. The text is user-facing.
var ErrUnknownAction = errors.New("unable to complete that action")

type Generator interface {
	Generate(ctx context.Context, system string, turns []Turn) (string, error)
}

type TaskCreator interface {
	Create(ctx context.Context, tenantID string, params task.CreateParams) (*task.Task, error)
}

type LeadCreator interface {
	Create(ctx context.Context, tenantID string, params lead.CreateParams) (*lead.Lead, error)
}

type CaseNoter interface {
	AddNote(ctx context.Context, tenantID, id, author, body string) (*legalcase.Note, error)
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Handler performs one named action on behalf of the model.
type Handler func(ctx context.Context, tenantID, actor string, params map[string]string) (string, error)

type Service struct {
	gen      Generator
	handlers map[string]Handler
}

const systemPrompt = `You are an assistant inside a CRM. Answer questions in plain text.
When the user asks you to perform an action, reply with a fenced json block:
` + "```json" + `
{"action": "<name>", "parameters": {"key": "value"}}
` + "```" + `
Known actions: create_task, create_lead, add_case_note, send_email.`

func NewService(gen Generator, tasks TaskCreator, leads LeadCreator, cases CaseNoter, email EmailSender) *Service {
	s := &Service{gen: gen, handlers: make(map[string]Handler)}

	s.handlers["create_task"] = createTask(tasks)
	s.handlers["create_lead"] = createLead(leads)
	s.handlers["add_case_note"] = addCaseNote(cases)
	s.handlers["send_email"] = sendEmail(email)

	return s
}

// Reply is one assistant answer. Executed carries the confirmation text when
// the model's reply contained an action we performed.
type Reply struct {
	Text     string
	Executed string
}

// Chat sends the conversation to the model and executes any action embedded
// in the reply. A reply with no action, or an unparseable one, is still
// returned as plain text.
func (s *Service) Chat(ctx context.Context, tenantID, actor string, turns []Turn) (*Reply, error) {
	text, err := s.gen.Generate(ctx, systemPrompt, turns)
	if err != nil {
		return nil, fmt.Errorf("generating reply: %w", err)
	}

	reply := &Reply{Text: text}

	action, err := ExtractAction(text)
	if err != nil {
		if errors.Is(err, ErrNoAction) || errors.Is(err, ErrBadAction) {
			return reply, nil
		}

		return nil, err
	}

	confirmation, err := s.Dispatch(ctx, tenantID, actor, action)
	if err != nil {
		return nil, err
	}

	reply.Executed = confirmation

	return reply, nil
}

// Dispatch runs the handler registered for the action's name.
func (s *Service) Dispatch(ctx context.Context, tenantID, actor string, action *Action) (string, error) {
	handler, ok := s.handlers[action.Name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, action.Name)
	}

	return handler(ctx, tenantID, actor, action.Parameters)
}

func createTask(tasks TaskCreator) Handler {
	return func(ctx context.Context, tenantID, actor string, params map[string]string) (string, error) {
		title, ok := params["title"]
		if !ok || title == "" {
			return "", fmt.Errorf("%w: create_task needs a title", ErrUnknownAction)
		}

		create := task.CreateParams{Title: title, Assignee: actor}

		if due, ok := params["due_date"]; ok {
			parsed, err := time.Parse("2006-01-02", due)
			if err != nil {
				return "", fmt.Errorf("%w: bad due_date %q", ErrUnknownAction, due)
			}

			create.DueDate = &parsed
		}

		t, err := tasks.Create(ctx, tenantID, create)
		if err != nil {
			return "", fmt.Errorf("creating task: %w", err)
		}

		return fmt.Sprintf("Created task %q", t.Title), nil
	}
}

func createLead(leads LeadCreator) Handler {
	return func(ctx context.Context, tenantID, actor string, params map[string]string) (string, error) {
		name, ok := params["name"]
		if !ok || name == "" {
			return "", fmt.Errorf("%w: create_lead needs a name", ErrUnknownAction)
		}

		create := lead.CreateParams{
			Name:    name,
			Company: params["company"],
			Email:   params["email"],
			Phone:   params["phone"],
		}

		if score, ok := params["score"]; ok {
			n, err := strconv.Atoi(score)
			if err != nil {
				return "", fmt.Errorf("%w: bad score %q", ErrUnknownAction, score)
			}

			create.Score = n
		}

		l, err := leads.Create(ctx, tenantID, create)
		if err != nil {
			return "", fmt.Errorf("creating lead: %w", err)
		}

		return fmt.Sprintf("Created lead %q", l.Name), nil
	}
}

func addCaseNote(cases CaseNoter) Handler {
	return func(ctx context.Context, tenantID, actor string, params map[string]string) (string, error) {
		caseID, body := params["case_id"], params["body"]
		if caseID == "" || body == "" {
			return "", fmt.Errorf("%w: add_case_note needs case_id and body", ErrUnknownAction)
		}

		if _, err := cases.AddNote(ctx, tenantID, caseID, actor, body); err != nil {
			return "", fmt.Errorf("adding case note: %w", err)
		}

		return "Added note to case", nil
	}
}

func sendEmail(email EmailSender) Handler {
	return func(ctx context.Context, tenantID, actor string, params map[string]string) (string, error) {
		to, subject, html := params["to"], params["subject"], params["body"]
		if to == "" || subject == "" {
			return "", fmt.Errorf("%w: send_email needs to and subject", ErrUnknownAction)
		}

		if err := email.Send(ctx, to, subject, html); err != nil {
			return "", fmt.Errorf("sending email: %w", err)
		}

		return fmt.Sprintf("Sent email to %s", to), nil
	}
}
