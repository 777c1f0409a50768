package lead_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/stackfield/crmd/internal/auth"
	leadHttp "github.com/stackfield/crmd/internal/http/lead"
	"github.com/stackfield/crmd/internal/lead"
)

const testTenant = "tenant-1"

// newRouter mounts the handler behind a stub auth layer so requests carry a
// tenant the same way they do behind the real middleware.
func newRouter(repo *lead.MockRepository) http.Handler {
	h := leadHttp.NewHandler(lead.NewService(repo, nil, nil, nil))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.WithClaims(req.Context(), &auth.Claims{TenantID: testTenant, UserID: "user-1"})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/leads", h.Routes)

	return r
}

func TestHandler_ListFilters(t *testing.T) {
	tests := []struct {
		name   string
		target string
		filter lead.ListFilter
	}{
		{
			name:   "min_score",
			target: "/leads?min_score=70",
			filter: lead.ListFilter{MinScore: new(70)},
		},
		{
			name:   "status and min_score",
			target: "/leads?status=qualified&min_score=50",
			filter: lead.ListFilter{Status: new(lead.StatusQualified), MinScore: new(50)},
		},
		{
			name:   "query only",
			target: "/leads?q=acme",
			filter: lead.ListFilter{Query: new("acme")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := lead.NewMockRepository(ctrl)

			repo.EXPECT().
				ListLeads(gomock.Any(), testTenant, tt.filter).
				Return([]*lead.Lead{}, nil)

			rec := httptest.NewRecorder()
			newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestHandler_ListRejectsInvalidMinScore(t *testing.T) {
	for _, bad := range []string{"abc", "-1", "101"} {
		t.Run(bad, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := lead.NewMockRepository(ctrl)

			rec := httptest.NewRecorder()
			newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads?min_score="+bad, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
