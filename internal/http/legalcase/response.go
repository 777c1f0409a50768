package legalcase

import (
	"time"

	"github.com/stackfield/crmd/internal/legalcase"
)

type caseResponse struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Status     legalcase.Status  `json:"status"`
	AttorneyID string            `json:"attorney_id,omitempty"`
	Defendant  partyPayload      `json:"defendant"`
	Opposition partyPayload      `json:"opposition"`
	Notes      []noteResponse    `json:"notes,omitempty"`
	History    []historyResponse `json:"history,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  *time.Time        `json:"updated_at,omitempty"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type historyResponse struct {
	From      legalcase.Status `json:"from"`
	To        legalcase.Status `json:"to"`
	Actor     string           `json:"actor,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func toNoteResponse(n legalcase.Note) noteResponse {
	return noteResponse{ID: n.ID, Author: n.Author, Body: n.Body, CreatedAt: n.CreatedAt}
}

func toResponse(c *legalcase.Case) caseResponse {
	resp := caseResponse{
		ID:         c.ID,
		Title:      c.Title,
		Status:     c.Status,
		AttorneyID: c.AttorneyID,
		Defendant:  fromParty(c.Defendant),
		Opposition: fromParty(c.Opposition),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}

	for _, n := range c.Notes {
		resp.Notes = append(resp.Notes, toNoteResponse(n))
	}

	for _, e := range c.History {
		resp.History = append(resp.History, historyResponse{
			From:      e.From,
			To:        e.To,
			Actor:     e.Actor,
			CreatedAt: e.CreatedAt,
		})
	}

	return resp
}
