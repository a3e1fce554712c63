package coordinator_test

import (
	"testing"
	"time"

	"github.com/communitycare/carehub/internal/app/coordinator"
	"github.com/communitycare/carehub/internal/domain/models"
	"github.com/communitycare/carehub/internal/testutil"
)

// TestBeachCleanupLifecycle walks one event through its whole life:
// organizer creates it with a volunteer opportunity, admin approves (which
// mirrors onto the opportunity and fires the announcement), a volunteer
// applies and is selected, an attendee registers, attendance is recorded,
// and finally deletion cascades everything away.
func TestBeachCleanupLifecycle(t *testing.T) {
	coord, b, fixtures := newTestCoordinator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fixtures.CreateUser(ctx, "Olivia Organizer", "olivia@example.com", models.RoleOrganizer)
	volunteer := fixtures.CreateUser(ctx, "Victor Volunteer", "victor@example.com", models.RoleVolunteer)
	attendee := fixtures.CreateUser(ctx, "Sam Seeker", "sam@example.com", models.RoleSeeker)

	// Organizer creates the event; it needs ten volunteers.
	event, opp, err := coord.CreateEvent(ctx, organizer.ID, coordinator.CreateEventInput{
		Title:            "Beach Cleanup",
		Date:             time.Now().UTC().Add(14 * 24 * time.Hour),
		StartTime:        "08:00",
		EndTime:          "11:00",
		Location:         "North Shore",
		Description:      "Gloves and bags provided",
		NeedsVolunteers:  true,
		VolunteersNeeded: 10,
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if opp == nil {
		t.Fatal("expected a volunteer opportunity")
	}

	// Nothing shows in public lists while the event is pending.
	views, err := coord.ListEventsForUser(ctx, attendee.ID)
	if err != nil {
		t.Fatalf("ListEventsForUser failed: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("pending event visible in public list: %v", views)
	}

	// Admin approves; the opportunity mirrors and the announcement fires.
	if err := coord.ApproveEvent(ctx, event.ID); err != nil {
		t.Fatalf("ApproveEvent failed: %v", err)
	}
	if len(b.approved) != 1 {
		t.Fatalf("got %d approval broadcasts, want 1", len(b.approved))
	}

	// The volunteer applies and the organizer selects them.
	app, err := coord.ApplyForOpportunity(ctx, volunteer, opp.ID, "I live nearby")
	if err != nil {
		t.Fatalf("ApplyForOpportunity failed: %v", err)
	}
	if app.ExperienceDays < 0 {
		t.Errorf("ExperienceDays = %d, want non-negative", app.ExperienceDays)
	}
	if err := coord.UpdateApplicationStatus(ctx, app.ID, models.ApplicationSelected); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	// An attendee registers; the event now shows as registered for them.
	created, err := coord.RegisterForEvent(ctx, attendee, event.ID, "")
	if err != nil || !created {
		t.Fatalf("RegisterForEvent = (%v, %v), want (true, nil)", created, err)
	}
	views, err = coord.ListEventsForUser(ctx, attendee.ID)
	if err != nil {
		t.Fatalf("ListEventsForUser failed: %v", err)
	}
	if len(views) != 1 || !views[0].Registered {
		t.Fatalf("views = %v, want the approved event flagged registered", views)
	}

	// The volunteer sees their selection merged onto the opportunity list.
	oppViews, err := coord.ListOpportunitiesForUser(ctx, volunteer.ID)
	if err != nil {
		t.Fatalf("ListOpportunitiesForUser failed: %v", err)
	}
	if len(oppViews) != 1 || oppViews[0].ApplicationStatus != models.ApplicationSelected {
		t.Fatalf("oppViews = %v, want selected status merged", oppViews)
	}

	// Day of: the volunteer showed up.
	if err := coord.UpdateAttendance(ctx, app.ID, models.AttendancePresent); err != nil {
		t.Fatalf("UpdateAttendance failed: %v", err)
	}

	// Cleanup: the cascade leaves nothing behind.
	if err := coord.DeleteEventCascade(ctx, event.ID); err != nil {
		t.Fatalf("DeleteEventCascade failed: %v", err)
	}
	apps, err := coord.Applications.ListByUser(ctx, volunteer.ID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(apps) != 0 {
		t.Errorf("%d applications left after cascade", len(apps))
	}
	regs, err := coord.UserRegistrations(ctx, attendee.ID)
	if err != nil {
		t.Fatalf("UserRegistrations failed: %v", err)
	}
	if len(regs) != 0 {
		t.Errorf("%d registrations left after cascade", len(regs))
	}
}
