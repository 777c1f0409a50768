package legalcase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfield/crmd/internal/legalcase"
)

// Hand-rolled mock; the repository surface is small enough that gomock would
// be more ceremony than help here.
type mockRepo struct {
	cases   map[string]*legalcase.Case
	history []*legalcase.HistoryEntry
	notes   []*legalcase.Note
}

func newMockRepo(cases ...*legalcase.Case) *mockRepo {
	m := &mockRepo{cases: map[string]*legalcase.Case{}}
	for _, c := range cases {
		m.cases[c.ID] = c
	}

	return m
}

func (m *mockRepo) CreateCase(_ context.Context, c *legalcase.Case) error {
	c.ID = "case-" + c.Title
	m.cases[c.ID] = c

	return nil
}

func (m *mockRepo) GetCase(_ context.Context, _, id string) (*legalcase.Case, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, legalcase.ErrNotFound
	}

	cp := *c

	return &cp, nil
}

func (m *mockRepo) ListCases(_ context.Context, _ string, _ legalcase.ListFilter) ([]*legalcase.Case, error) {
	return nil, nil
}

func (m *mockRepo) UpdateCase(_ context.Context, c *legalcase.Case) error {
	m.cases[c.ID] = c
	return nil
}

func (m *mockRepo) DeleteCase(_ context.Context, _, id string) error {
	delete(m.cases, id)
	return nil
}

func (m *mockRepo) AppendNote(_ context.Context, note *legalcase.Note) error {
	note.ID = "note-1"
	m.notes = append(m.notes, note)

	return nil
}

func (m *mockRepo) AppendHistory(_ context.Context, entry *legalcase.HistoryEntry) error {
	entry.ID = "hist-1"
	m.history = append(m.history, entry)

	return nil
}

func TestService_UpdateStatus_AppendsHistory(t *testing.T) {
	repo := newMockRepo(&legalcase.Case{ID: "case-1", TenantID: "t1", Status: legalcase.StatusIntake})
	svc := legalcase.NewService(repo, nil)

	c, err := svc.UpdateStatus(context.Background(), "t1", "case-1", legalcase.StatusDiscovery, "attorney-7")
	require.NoError(t, err)

	assert.Equal(t, legalcase.StatusDiscovery, c.Status)
	require.Len(t, repo.history, 1)
	assert.Equal(t, legalcase.StatusIntake, repo.history[0].From)
	assert.Equal(t, legalcase.StatusDiscovery, repo.history[0].To)
	assert.Equal(t, "attorney-7", repo.history[0].Actor)
}

func TestService_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	repo := newMockRepo(&legalcase.Case{ID: "case-1", TenantID: "t1", Status: legalcase.StatusOnHold})
	svc := legalcase.NewService(repo, nil)

	_, err := svc.UpdateStatus(context.Background(), "t1", "case-1", legalcase.StatusOnHold, "attorney-7")
	require.NoError(t, err)
	assert.Empty(t, repo.history)
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	svc := legalcase.NewService(newMockRepo(), nil)

	_, err := svc.UpdateStatus(context.Background(), "t1", "case-1", legalcase.Status("Bogus"), "")
	assert.ErrorIs(t, err, legalcase.ErrUnknownStatus)
}

func TestService_AddNote(t *testing.T) {
	repo := newMockRepo(&legalcase.Case{ID: "case-1", TenantID: "t1", Status: legalcase.StatusIntake})
	svc := legalcase.NewService(repo, nil)

	note, err := svc.AddNote(context.Background(), "t1", "case-1", "attorney-7", "Client called about discovery.")
	require.NoError(t, err)
	assert.Equal(t, "case-1", note.CaseID)
	require.Len(t, repo.notes, 1)

	_, err = svc.AddNote(context.Background(), "t1", "missing", "attorney-7", "x")
	assert.ErrorIs(t, err, legalcase.ErrNotFound)
}
