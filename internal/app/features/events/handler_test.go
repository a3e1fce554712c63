package events_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/communitycare/carehub/internal/app/coordinator"
	eventsfeature "github.com/communitycare/carehub/internal/app/features/events"
	"github.com/communitycare/carehub/internal/domain/models"
	"github.com/communitycare/carehub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*eventsfeature.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	coord := coordinator.New(db, nil, zap.NewNop())
	return &eventsfeature.Handler{Coord: coord, Log: zap.NewNop()}, testutil.NewFixtures(t, db)
}

func TestCreate(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fixtures.CreateUser(ctx, "Org", "org@example.com", models.RoleOrganizer)

	body := `{
		"title": "Community Picnic",
		"date": "2026-10-01T00:00:00Z",
		"start_time": "11:00",
		"location": "Main Park",
		"needs_volunteers": true,
		"volunteers_needed": 4
	}`
	req := httptest.NewRequest("POST", "/events", strings.NewReader(body))
	req = testutil.WithUser(req, organizer)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Event       models.Event        `json:"event"`
		Opportunity *models.Opportunity `json:"opportunity"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Event.ApprovalStatus.Status != models.StatusPending {
		t.Errorf("event status = %q, want pending", out.Event.ApprovalStatus.Status)
	}
	if out.Opportunity == nil {
		t.Error("expected the auto-created opportunity in the response")
	}
}

func TestUpdate_OnlyOwnerOrAdmin(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com", models.RoleOrganizer)
	stranger := fixtures.CreateUser(ctx, "Stranger", "stranger@example.com", models.RoleOrganizer)
	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com", models.RoleAdmin)
	event := fixtures.CreateApprovedEvent(ctx, "Guarded Event", owner.ID)

	do := func(as models.User) int {
		req := httptest.NewRequest("PATCH", "/events/"+event.ID.Hex(),
			strings.NewReader(`{"location":"New Hall"}`))
		req = testutil.WithUser(req, as)
		req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
		rec := httptest.NewRecorder()
		h.Update(rec, req)
		return rec.Code
	}

	if code := do(stranger); code != http.StatusForbidden {
		t.Errorf("stranger update status = %d, want 403", code)
	}
	if code := do(owner); code != http.StatusOK {
		t.Errorf("owner update status = %d, want 200", code)
	}
	if code := do(admin); code != http.StatusOK {
		t.Errorf("admin update status = %d, want 200", code)
	}
}

func TestApprove_AlreadyDecidedConflict(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fixtures.CreateUser(ctx, "Org", "org@example.com", models.RoleOrganizer)
	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com", models.RoleAdmin)
	event := fixtures.CreatePendingEvent(ctx, "Decide Once", organizer.ID)

	approve := func() int {
		req := httptest.NewRequest("POST", "/events/"+event.ID.Hex()+"/approve", nil)
		req = testutil.WithUser(req, admin)
		req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
		rec := httptest.NewRecorder()
		h.Approve(rec, req)
		return rec.Code
	}

	if code := approve(); code != http.StatusOK {
		t.Fatalf("first approve status = %d, want 200", code)
	}
	if code := approve(); code != http.StatusConflict {
		t.Errorf("second approve status = %d, want 409", code)
	}
}

func TestReject_RequiresReason(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fixtures.CreateUser(ctx, "Org", "org@example.com", models.RoleOrganizer)
	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com", models.RoleAdmin)
	event := fixtures.CreatePendingEvent(ctx, "Needs Reason", organizer.ID)

	req := httptest.NewRequest("POST", "/events/"+event.ID.Hex()+"/reject",
		strings.NewReader(`{}`))
	req = testutil.WithUser(req, admin)
	req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
	rec := httptest.NewRecorder()
	h.Reject(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("reject without reason status = %d, want 400", rec.Code)
	}
}

func TestGet_UnknownID(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "U", "u@example.com", models.RoleSeeker)

	req := httptest.NewRequest("GET", "/events/ffffffffffffffffffffffff", nil)
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "id", "ffffffffffffffffffffffff")
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	req = httptest.NewRequest("GET", "/events/nonsense", nil)
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "id", "nonsense")
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a malformed id", rec.Code)
	}
}
