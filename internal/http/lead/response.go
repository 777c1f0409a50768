package lead

import (
	"time"

	"github.com/stackfield/crmd/internal/lead"
)

type leadResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Company       string      `json:"company,omitempty"`
	Email         string      `json:"email,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	Score         int         `json:"score"`
	Status        lead.Status `json:"status"`
	LastContacted string      `json:"last_contacted,omitempty"`
	ContactID     *string     `json:"contact_id,omitempty"`
	OpportunityID *string     `json:"opportunity_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     *time.Time  `json:"updated_at,omitempty"`
}

func toResponse(l *lead.Lead) leadResponse {
	return leadResponse{
		ID:            l.ID,
		Name:          l.Name,
		Company:       l.Company,
		Email:         l.Email,
		Phone:         l.Phone,
		Score:         l.Score,
		Status:        l.Status,
		LastContacted: l.LastContacted,
		ContactID:     l.ContactID,
		OpportunityID: l.OpportunityID,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func toResponseList(leads []*lead.Lead) []leadResponse {
	resp := make([]leadResponse, len(leads))
	for i, l := range leads {
		resp[i] = toResponse(l)
	}

	return resp
}

type convertResponse struct {
	Lead           leadResponse `json:"lead"`
	ContactID      string       `json:"contact_id"`
	ContactCreated bool         `json:"contact_created"`
	OpportunityID  string       `json:"opportunity_id,omitempty"`
}

func toConvertResponse(result *lead.ConvertResult) convertResponse {
	resp := convertResponse{
		Lead:           toResponse(result.Lead),
		ContactID:      result.Contact.ID,
		ContactCreated: result.ContactCreated,
	}

	if result.Opportunity != nil {
		resp.OpportunityID = result.Opportunity.ID
	}

	return resp
}
