package lead_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stackfield/crmd/internal/contact"
	"github.com/stackfield/crmd/internal/lead"
	"github.com/stackfield/crmd/internal/opportunity"
)

const tenant = "tenant-1"

func newService(t *testing.T) (*lead.Service, *lead.MockRepository, *lead.MockContactDirectory, *lead.MockOpportunityCreator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := lead.NewMockRepository(ctrl)
	contacts := lead.NewMockContactDirectory(ctrl)
	opps := lead.NewMockOpportunityCreator(ctrl)

	return lead.NewService(repo, contacts, opps, nil), repo, contacts, opps
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    lead.CreateParams
		setupMock func(m *lead.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: lead.CreateParams{
				Name:    "Maria Santos",
				Company: "Acme",
				Email:   "maria@acme.test",
				Score:   72,
			},
			setupMock: func(m *lead.MockRepository) {
				m.EXPECT().
					CreateLead(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, l *lead.Lead) error {
						l.ID = "lead-1"
						return nil
					})
			},
		},
		{
			name:    "ScoreTooHigh",
			params:  lead.CreateParams{Name: "X", Score: 101},
			wantErr: lead.ErrInvalidScore,
		},
		{
			name:    "ScoreNegative",
			params:  lead.CreateParams{Name: "X", Score: -1},
			wantErr: lead.ErrInvalidScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := svc.Create(context.Background(), tenant, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, lead.StatusNew, got.Status, "status defaults to New")
			assert.Equal(t, tenant, got.TenantID)
		})
	}
}

func TestService_UpdateStatus_TerminalRejected(t *testing.T) {
	for _, status := range []lead.Status{lead.StatusConverted, lead.StatusLost} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo, _, _ := newService(t)

			repo.EXPECT().
				GetLead(gomock.Any(), tenant, "lead-1").
				Return(&lead.Lead{ID: "lead-1", Status: status}, nil)

			_, err := svc.UpdateStatus(context.Background(), tenant, "lead-1", lead.StatusContacted)
			assert.ErrorIs(t, err, lead.ErrTerminalStatus)
		})
	}
}

func TestService_Convert_NewContact(t *testing.T) {
	svc, repo, contacts, opps := newService(t)

	l := &lead.Lead{
		ID:      "lead-1",
		Name:    "Maria Santos",
		Company: "Acme",
		Email:   "maria@acme.test",
		Status:  lead.StatusQualified,
	}

	repo.EXPECT().GetLead(gomock.Any(), tenant, "lead-1").Return(l, nil)

	// Ordering: the lead is marked Converted before the contact step runs.
	markConverted := repo.EXPECT().
		UpdateLead(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got *lead.Lead) error {
			assert.Equal(t, lead.StatusConverted, got.Status)
			return nil
		})

	newContact := &contact.Contact{ID: "contact-9", Email: "maria@acme.test"}
	contacts.EXPECT().
		FindOrCreate(gomock.Any(), tenant, contact.CreateParams{
			Name:    "Maria Santos",
			Email:   "maria@acme.test",
			Company: "Acme",
		}).
		Return(newContact, true, nil).
		After(markConverted)

	opps.EXPECT().
		Create(gomock.Any(), tenant, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, params opportunity.CreateParams) (*opportunity.Opportunity, error) {
			assert.Equal(t, "contact-9", params.ContactID)
			return &opportunity.Opportunity{ID: "opp-3", ContactID: params.ContactID}, nil
		})

	repo.EXPECT().
		UpdateLead(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got *lead.Lead) error {
			require.NotNil(t, got.ContactID)
			require.NotNil(t, got.OpportunityID)
			assert.Equal(t, "contact-9", *got.ContactID)
			assert.Equal(t, "opp-3", *got.OpportunityID)

			return nil
		})

	result, err := svc.Convert(context.Background(), tenant, "lead-1", lead.ConvertOptions{
		CreateOpportunity: true,
		OpportunityValue:  500_000,
	})
	require.NoError(t, err)
	assert.True(t, result.ContactCreated)
	assert.Equal(t, "contact-9", result.Contact.ID)
	assert.Equal(t, "opp-3", result.Opportunity.ID)
}

func TestService_Convert_ReusesContactByEmail(t *testing.T) {
	svc, repo, contacts, opps := newService(t)

	l := &lead.Lead{ID: "lead-2", Name: "Bob", Email: "shared@acme.test", Status: lead.StatusNew}

	repo.EXPECT().GetLead(gomock.Any(), tenant, "lead-2").Return(l, nil)
	repo.EXPECT().UpdateLead(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	reused := &contact.Contact{ID: "contact-existing", Email: "shared@acme.test"}
	contacts.EXPECT().
		FindOrCreate(gomock.Any(), tenant, gomock.Any()).
		Return(reused, false, nil)

	// The derived opportunity must reference the reused contact id.
	opps.EXPECT().
		Create(gomock.Any(), tenant, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, params opportunity.CreateParams) (*opportunity.Opportunity, error) {
			assert.Equal(t, "contact-existing", params.ContactID)
			return &opportunity.Opportunity{ID: "opp-1"}, nil
		})

	result, err := svc.Convert(context.Background(), tenant, "lead-2", lead.ConvertOptions{CreateOpportunity: true})
	require.NoError(t, err)
	assert.False(t, result.ContactCreated)
	assert.Equal(t, "contact-existing", result.Contact.ID)
}

func TestService_Convert_Rejections(t *testing.T) {
	type testCase struct {
		name    string
		status  lead.Status
		wantErr error
	}

	tests := []testCase{
		{name: "AlreadyConverted", status: lead.StatusConverted, wantErr: lead.ErrAlreadyConverted},
		{name: "Lost", status: lead.StatusLost, wantErr: lead.ErrTerminalStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newService(t)

			repo.EXPECT().
				GetLead(gomock.Any(), tenant, "lead-1").
				Return(&lead.Lead{ID: "lead-1", Status: tt.status}, nil)

			_, err := svc.Convert(context.Background(), tenant, "lead-1", lead.ConvertOptions{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Convert_ContactStepFails(t *testing.T) {
	svc, repo, contacts, _ := newService(t)

	repo.EXPECT().
		GetLead(gomock.Any(), tenant, "lead-1").
		Return(&lead.Lead{ID: "lead-1", Status: lead.StatusNew}, nil)
	repo.EXPECT().UpdateLead(gomock.Any(), gomock.Any()).Return(nil)

	contacts.EXPECT().
		FindOrCreate(gomock.Any(), tenant, gomock.Any()).
		Return(nil, false, errors.New("db down"))

	_, err := svc.Convert(context.Background(), tenant, "lead-1", lead.ConvertOptions{})
	assert.Error(t, err)
}

func TestService_ImportBatch(t *testing.T) {
	svc, repo, _, _ := newService(t)

	params := []lead.CreateParams{
		{Name: "New Person", Email: "new@acme.test"},
		{Name: "Duplicate", Email: "Known@acme.test"},
		{Name: "No Email"},
	}

	existing := &lead.Lead{ID: "lead-7", Email: "known@acme.test"}

	repo.EXPECT().
		FindByEmails(gomock.Any(), tenant, []string{"new@acme.test", "Known@acme.test"}).
		Return([]*lead.Lead{existing}, nil)

	repo.EXPECT().
		CreateLeads(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, leads []*lead.Lead) error {
			require.Len(t, leads, 2)
			assert.Equal(t, "New Person", leads[0].Name)
			assert.Equal(t, "No Email", leads[1].Name)

			return nil
		})

	result, err := svc.ImportBatch(context.Background(), tenant, params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 2)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	svc, _, _, _ := newService(t)

	result, err := svc.ImportBatch(context.Background(), tenant, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
}
