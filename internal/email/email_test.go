package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSend(t *testing.T) {
	var gotAuth string

	var gotBody sendRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/emails", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Write([]byte(`{"id": "msg-1"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "re_testkey", "crm@example.com")

	err := c.Send(context.Background(), "dana@example.com", "Invoice ready", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_testkey", gotAuth)
	assert.Equal(t, sendRequest{
		From:    "crm@example.com",
		To:      "dana@example.com",
		Subject: "Invoice ready",
		HTML:    "<p>hi</p>",
	}, gotBody)
}

func TestClientSendRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "invalid to address"}`, http.StatusUnprocessableEntity)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", "crm@example.com")

	err := c.Send(context.Background(), "not-an-address", "x", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestTemplateRender(t *testing.T) {
	tmpl := &Template{
		Subject: "Invoice {{number}} for {{name}}",
		Body:    "Hi {{ name }}, your total is {{total}}.",
	}

	subject, body := tmpl.Render(map[string]string{
		"number": "INV-7",
		"name":   "Dana",
		"total":  "$25.00",
	})

	assert.Equal(t, "Invoice INV-7 for Dana", subject)
	assert.Equal(t, "Hi Dana, your total is $25.00.", body)
}

func TestTemplateRenderKeepsMissingPlaceholders(t *testing.T) {
	tmpl := &Template{Subject: "Hello {{name}}", Body: "Your code is {{code}}"}

	subject, body := tmpl.Render(map[string]string{"name": "Dana"})

	assert.Equal(t, "Hello Dana", subject)
	assert.Equal(t, "Your code is {{code}}", body)
}

func TestTemplatePlaceholders(t *testing.T) {
	tmpl := &Template{
		Subject: "Invoice {{number}}",
		Body:    "Hi {{name}}, invoice {{number}} is due.",
	}

	assert.Equal(t, []string{"number", "name"}, tmpl.Placeholders())
}

type memRepo struct {
	templates map[string]*Template
}

func (m *memRepo) CreateTemplate(ctx context.Context, t *Template) error {
	if m.templates == nil {
		m.templates = make(map[string]*Template)
	}

	t.ID = "tpl-1"
	m.templates[t.ID] = t

	return nil
}

func (m *memRepo) GetTemplate(ctx context.Context, tenantID, id string) (*Template, error) {
	t, ok := m.templates[id]
	if !ok || t.TenantID != tenantID {
		return nil, ErrNotFound
	}

	return t, nil
}

func (m *memRepo) ListTemplates(ctx context.Context, tenantID string) ([]*Template, error) {
	var out []*Template

	for _, t := range m.templates {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}

	return out, nil
}

func (m *memRepo) UpdateTemplate(ctx context.Context, t *Template) error { return nil }

func (m *memRepo) DeleteTemplate(ctx context.Context, tenantID, id string) error {
	delete(m.templates, id)

	return nil
}

type captureSender struct {
	to, subject, html string
}

func (c *captureSender) Send(ctx context.Context, to, subject, html string) error {
	c.to, c.subject, c.html = to, subject, html

	return nil
}

func TestServiceSendTemplated(t *testing.T) {
	repo := &memRepo{}
	sender := &captureSender{}
	svc := NewService(repo, sender)

	tmpl, err := svc.CreateTemplate(context.Background(), "t1", TemplateParams{
		Name:    "invoice-ready",
		Subject: "Invoice {{number}}",
		Body:    "Hi {{name}}",
	})
	require.NoError(t, err)

	err = svc.SendTemplated(context.Background(), "t1", tmpl.ID, "dana@example.com", map[string]string{
		"number": "INV-7",
		"name":   "Dana",
	})
	require.NoError(t, err)

	assert.Equal(t, "dana@example.com", sender.to)
	assert.Equal(t, "Invoice INV-7", sender.subject)
	assert.Equal(t, "Hi Dana", sender.html)
}

func TestServiceSendTemplatedWrongTenant(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &captureSender{})

	tmpl, err := svc.CreateTemplate(context.Background(), "t1", TemplateParams{Name: "n", Subject: "s"})
	require.NoError(t, err)

	err = svc.SendTemplated(context.Background(), "t2", tmpl.ID, "x@y.com", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
