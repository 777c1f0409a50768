package contact_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfield/crmd/internal/contact"
)

// Hand-rolled mock; the repository surface is small enough that gomock would
// be more ceremony than help here.
type mockRepo struct {
	contacts map[string]*contact.Contact
	creates  int
}

func newMockRepo(contacts ...*contact.Contact) *mockRepo {
	m := &mockRepo{contacts: map[string]*contact.Contact{}}
	for _, c := range contacts {
		m.contacts[c.ID] = c
	}

	return m
}

func (m *mockRepo) CreateContact(_ context.Context, c *contact.Contact) error {
	m.creates++
	c.ID = fmt.Sprintf("contact-%d", m.creates)
	m.contacts[c.ID] = c

	return nil
}

func (m *mockRepo) GetContact(_ context.Context, _, id string) (*contact.Contact, error) {
	c, ok := m.contacts[id]
	if !ok {
		return nil, contact.ErrNotFound
	}

	cp := *c

	return &cp, nil
}

func (m *mockRepo) FindByEmail(_ context.Context, _, email string) (*contact.Contact, error) {
	for _, c := range m.contacts {
		if strings.EqualFold(c.Email, email) {
			cp := *c
			return &cp, nil
		}
	}

	return nil, contact.ErrNotFound
}

func (m *mockRepo) ListContacts(_ context.Context, _ string) ([]*contact.Contact, error) {
	return nil, nil
}

func (m *mockRepo) UpdateContact(_ context.Context, c *contact.Contact) error {
	m.contacts[c.ID] = c
	return nil
}

func (m *mockRepo) DeleteContact(_ context.Context, _, id string) error {
	delete(m.contacts, id)
	return nil
}

func TestService_FindOrCreate_ReusesByEmail(t *testing.T) {
	repo := newMockRepo()
	svc := contact.NewService(repo)

	first, created, err := svc.FindOrCreate(context.Background(), "t1", contact.CreateParams{
		Name:  "Ana Ferreira",
		Email: "ana@acme.test",
	})
	require.NoError(t, err)
	assert.True(t, created)

	// A second conversion with the same email attaches to the first contact
	// instead of minting a duplicate.
	second, created, err := svc.FindOrCreate(context.Background(), "t1", contact.CreateParams{
		Name:  "Ana F.",
		Email: "ana@acme.test",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.creates)
}

func TestService_FindOrCreate_EmptyEmailAlwaysCreates(t *testing.T) {
	repo := newMockRepo()
	svc := contact.NewService(repo)

	_, created, err := svc.FindOrCreate(context.Background(), "t1", contact.CreateParams{Name: "No Email"})
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = svc.FindOrCreate(context.Background(), "t1", contact.CreateParams{Name: "Also No Email"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, repo.creates)
}

func TestService_FindOrCreate_LookupErrorPropagates(t *testing.T) {
	svc := contact.NewService(failingRepo{newMockRepo()})

	_, _, err := svc.FindOrCreate(context.Background(), "t1", contact.CreateParams{Email: "x@y.test"})
	assert.ErrorIs(t, err, errBoom)
}

var errBoom = fmt.Errorf("connection reset")

type failingRepo struct{ *mockRepo }

func (failingRepo) FindByEmail(_ context.Context, _, _ string) (*contact.Contact, error) {
	return nil, errBoom
}
