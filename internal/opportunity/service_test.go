package opportunity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfield/crmd/internal/opportunity"
)

type mockRepo struct {
	opps map[string]*opportunity.Opportunity
}

func newMockRepo(opps ...*opportunity.Opportunity) *mockRepo {
	m := &mockRepo{opps: map[string]*opportunity.Opportunity{}}
	for _, o := range opps {
		m.opps[o.ID] = o
	}

	return m
}

func (m *mockRepo) CreateOpportunity(_ context.Context, o *opportunity.Opportunity) error {
	o.ID = "opp-" + o.Title
	m.opps[o.ID] = o

	return nil
}

func (m *mockRepo) GetOpportunity(_ context.Context, _, id string) (*opportunity.Opportunity, error) {
	o, ok := m.opps[id]
	if !ok {
		return nil, opportunity.ErrNotFound
	}

	cp := *o

	return &cp, nil
}

func (m *mockRepo) ListOpportunities(_ context.Context, _ string, _ opportunity.ListFilter) ([]*opportunity.Opportunity, error) {
	out := make([]*opportunity.Opportunity, 0, len(m.opps))
	for _, o := range m.opps {
		out = append(out, o)
	}

	return out, nil
}

func (m *mockRepo) UpdateOpportunity(_ context.Context, o *opportunity.Opportunity) error {
	m.opps[o.ID] = o
	return nil
}

func (m *mockRepo) DeleteOpportunity(_ context.Context, _, id string) error {
	delete(m.opps, id)
	return nil
}

func TestService_MoveStage(t *testing.T) {
	repo := newMockRepo(&opportunity.Opportunity{ID: "opp-1", TenantID: "t1", Stage: opportunity.StageProposal})
	svc := opportunity.NewService(repo)

	o, err := svc.MoveStage(context.Background(), "t1", "opp-1", opportunity.StageClosedWon)
	require.NoError(t, err)

	assert.Equal(t, opportunity.StageClosedWon, o.Stage)
	assert.NotNil(t, o.CloseDate, "closing sets the close date")
}

func TestService_MoveStage_ClosedStaysClosed(t *testing.T) {
	repo := newMockRepo(&opportunity.Opportunity{ID: "opp-1", TenantID: "t1", Stage: opportunity.StageClosedLost})
	svc := opportunity.NewService(repo)

	_, err := svc.MoveStage(context.Background(), "t1", "opp-1", opportunity.StageProspecting)
	assert.ErrorIs(t, err, opportunity.ErrClosedStage)
}

func TestService_MoveStage_UnknownStage(t *testing.T) {
	svc := opportunity.NewService(newMockRepo())

	_, err := svc.MoveStage(context.Background(), "t1", "opp-1", opportunity.Stage("Bogus"))
	assert.ErrorIs(t, err, opportunity.ErrUnknownStage)
}

func TestSummarize(t *testing.T) {
	opps := []*opportunity.Opportunity{
		{Stage: opportunity.StageProspecting, Value: 100_00},
		{Stage: opportunity.StageProspecting, Value: 250_00},
		{Stage: opportunity.StageClosedWon, Value: 900_00},
	}

	summary := opportunity.Summarize(opps)
	require.Len(t, summary, len(opportunity.Pipeline))

	assert.Equal(t, opportunity.StageProspecting, summary[0].Stage)
	assert.Equal(t, 2, summary[0].Count)
	assert.Equal(t, int64(350_00), summary[0].Value)

	// Empty stages still appear with zero counts.
	assert.Equal(t, opportunity.StageQualification, summary[1].Stage)
	assert.Zero(t, summary[1].Count)
}
