package service

import (
	"fmt"
	"sync"
	"testing"

	"cleanops_backend/platform/apperr"

	"github.com/google/uuid"
)

func referenceRoster() []Worker {
	return []Worker{
		{
			ID: "W001", Name: "Maria", IsActive: true,
			Skills:            []string{"standard", "deep", "airbnb"},
			Zones:             []string{"78701", "78702"},
			PreferredJobTypes: []string{"airbnb"},
			MaxDailyJobs:      3, Rating: 4.9, CompletedJobs: 320,
		},
		{
			ID: "W002", Name: "James", IsActive: true,
			Skills:       []string{"standard", "deep"},
			Zones:        []string{"78704"},
			MaxDailyJobs: 4, Rating: 4.7, CompletedJobs: 510,
		},
		{
			ID: "W003", Name: "Sofia", IsActive: true,
			Skills:       []string{"standard", "move_in_out"},
			Zones:        []string{"78701", "78705"},
			MaxDailyJobs: 2, Rating: 4.8, CompletedJobs: 150,
		},
		{
			ID: "W004", Name: "Alex", IsActive: true,
			Skills:       []string{"standard", "post_construction"},
			Zones:        []string{"78702", "78703"},
			MaxDailyJobs: 3, Rating: 4.2, CompletedJobs: 60,
		},
	}
}

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	d := NewDirectory()
	d.Load(referenceRoster())
	return d
}

func testJob(serviceType, address, date, time string) Job {
	return Job{
		BookingID:   uuid.New(),
		Address:     address,
		ServiceType: serviceType,
		ServiceDate: date,
		ServiceTime: time,
	}
}

func TestAssignSelectsZoneAndSkillMatch(t *testing.T) {
	d := newTestDirectory(t)

	a, err := d.Assign(testJob("airbnb", "501 Congress Ave, Austin, TX 78701", "2026-09-10", "10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Assigned {
		t.Fatalf("expected assignment, got reason %q", a.Reason)
	}
	if a.Worker.ID != "W001" {
		t.Fatalf("expected Maria (W001) for a 78701 airbnb job, got %s", a.Worker.ID)
	}
	if a.Zone != "78701" {
		t.Fatalf("expected zone 78701 extracted, got %q", a.Zone)
	}
}

func TestAssignNeverSelectsWorkerOutsideZoneOrSkill(t *testing.T) {
	d := newTestDirectory(t)

	// 78704 is James's zone only; he lacks the airbnb skill, so nobody fits.
	a, err := d.Assign(testJob("airbnb", "1200 S Lamar Blvd, Austin, TX 78704", "2026-09-10", "10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Assigned {
		t.Fatalf("expected no assignment, got worker %s", a.Worker.ID)
	}
	if len(a.Alternatives) == 0 {
		t.Fatalf("expected skill-matching alternatives")
	}
	for _, alt := range a.Alternatives {
		if alt.ID != "W001" {
			t.Fatalf("only W001 holds the airbnb skill, got alternative %s", alt.ID)
		}
	}
}

func TestAssignSequentialBookingsNeverOverlap(t *testing.T) {
	d := newTestDirectory(t)

	// Sofia (W003) is the only move_in_out worker.
	first, err := d.Assign(testJob("move_in_out", "2100 Guadalupe St, Austin, TX 78705", "2026-09-11", "09:00"))
	if err != nil || !first.Assigned {
		t.Fatalf("expected first assignment, got %+v err=%v", first, err)
	}
	if first.Worker.ID != "W003" {
		t.Fatalf("expected Sofia (W003), got %s", first.Worker.ID)
	}

	// Overlapping window on the same date must not land on her.
	second, err := d.Assign(testJob("move_in_out", "2200 Guadalupe St, Austin, TX 78705", "2026-09-11", "10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Assigned {
		t.Fatalf("expected overlap to exclude the only eligible worker, got %s", second.Worker.ID)
	}

	// A non-overlapping window later the same day fits.
	third, err := d.Assign(testJob("move_in_out", "2300 Guadalupe St, Austin, TX 78705", "2026-09-11", "13:00"))
	if err != nil || !third.Assigned {
		t.Fatalf("expected non-overlapping assignment, got %+v err=%v", third, err)
	}

	day, err := d.Schedule("W003", "2026-09-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(day.Booked) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(day.Booked))
	}
	for i := 1; i < len(day.Booked); i++ {
		prev, cur := day.Booked[i-1], day.Booked[i]
		if cur.StartMinute < prev.EndMinute {
			t.Fatalf("overlapping intervals: %+v then %+v", prev, cur)
		}
	}
}

func TestAssignRespectsDailyCapacity(t *testing.T) {
	d := newTestDirectory(t)

	// Sofia caps at 2 jobs per day; book two non-overlapping windows.
	for _, start := range []string{"08:00", "12:00"} {
		a, err := d.Assign(testJob("move_in_out", "Austin, TX 78705", "2026-09-12", start))
		if err != nil || !a.Assigned {
			t.Fatalf("expected assignment at %s, got %+v err=%v", start, a, err)
		}
	}

	over, err := d.Assign(testJob("move_in_out", "Austin, TX 78705", "2026-09-12", "16:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if over.Assigned {
		t.Fatalf("expected capacity to exclude W003, got %s", over.Worker.ID)
	}
}

func TestAssignWithoutZoneTreatsZoneAsWildcard(t *testing.T) {
	d := newTestDirectory(t)

	a, err := d.Assign(testJob("standard", "somewhere without a postal code", "2026-09-13", "10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Assigned {
		t.Fatalf("expected wildcard zone to match the roster, got reason %q", a.Reason)
	}
	if a.Zone != "" {
		t.Fatalf("expected empty zone, got %q", a.Zone)
	}
}

func TestAssignScoringPrefersHigherScore(t *testing.T) {
	d := newTestDirectory(t)

	// 78702 is serviced by Maria and Alex; Maria's rating and experience win.
	a, err := d.Assign(testJob("standard", "E 6th St, Austin, TX 78702", "2026-09-14", "10:00"))
	if err != nil || !a.Assigned {
		t.Fatalf("expected assignment, got %+v err=%v", a, err)
	}
	if a.Worker.ID != "W001" {
		t.Fatalf("expected W001 to outscore W004, got %s", a.Worker.ID)
	}
}

func TestAssignBreaksTiesByLowestWorkerID(t *testing.T) {
	d := NewDirectory()
	twin := func(id string) Worker {
		return Worker{
			ID: id, Name: "Twin " + id, IsActive: true,
			Skills: []string{"standard"}, Zones: []string{"78701"},
			MaxDailyJobs: 3, Rating: 4.5, CompletedJobs: 100,
		}
	}
	d.Load([]Worker{twin("W102"), twin("W101"), twin("W103")})

	a, err := d.Assign(testJob("standard", "Austin, TX 78701", "2026-09-15", "10:00"))
	if err != nil || !a.Assigned {
		t.Fatalf("expected assignment, got %+v err=%v", a, err)
	}
	if a.Worker.ID != "W101" {
		t.Fatalf("expected lowest ID to win the tie, got %s", a.Worker.ID)
	}
}

func TestAssignUnrecognizedServiceTypeRequiresStandardSkill(t *testing.T) {
	d := newTestDirectory(t)

	a, err := d.Assign(testJob("window_washing", "Austin, TX 78704", "2026-09-16", "10:00"))
	if err != nil || !a.Assigned {
		t.Fatalf("expected fallback to the standard skill, got %+v err=%v", a, err)
	}
	if a.Worker.ID != "W002" {
		t.Fatalf("expected the only 78704 worker, got %s", a.Worker.ID)
	}
}

func TestAssignRejectsJobPastMidnight(t *testing.T) {
	d := newTestDirectory(t)

	_, err := d.Assign(testJob("standard", "Austin, TX 78701", "2026-09-17", "23:00"))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for a job ending past midnight, got %v", err)
	}
}

func TestAssignRejectsMalformedTime(t *testing.T) {
	d := newTestDirectory(t)

	_, err := d.Assign(testJob("standard", "Austin, TX 78701", "2026-09-17", "9 AM"))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for malformed time, got %v", err)
	}
}

func TestAssignSkipsInactiveWorkers(t *testing.T) {
	d := newTestDirectory(t)
	if err := d.SetActive("W001", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := d.Assign(testJob("airbnb", "Austin, TX 78701", "2026-09-18", "10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Assigned {
		t.Fatalf("expected no assignment with the only airbnb worker inactive, got %s", a.Worker.ID)
	}
	if len(a.Alternatives) != 0 {
		t.Fatalf("inactive workers must not appear as alternatives, got %+v", a.Alternatives)
	}
}

func TestConcurrentAssignmentsNeverDoubleBook(t *testing.T) {
	d := NewDirectory()
	d.Load([]Worker{{
		ID: "W201", Name: "Solo", IsActive: true,
		Skills: []string{"standard"}, Zones: []string{"78701"},
		MaxDailyJobs: 10, Rating: 4.0, CompletedJobs: 50,
	}})

	const attempts = 16
	var wg sync.WaitGroup
	assigned := make(chan uuid.UUID, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			job := testJob("standard", fmt.Sprintf("%d Main St, Austin, TX 78701", n), "2026-09-19", "10:00")
			a, err := d.Assign(job)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if a.Assigned {
				assigned <- job.BookingID
			}
		}(i)
	}
	wg.Wait()
	close(assigned)

	var winners int
	for range assigned {
		winners++
	}
	if winners != 1 {
		t.Fatalf("expected exactly one assignment for a single overlapping window, got %d", winners)
	}
}

func TestReassignRoutesThroughConflictChecks(t *testing.T) {
	d := newTestDirectory(t)

	job := testJob("standard", "Austin, TX 78701", "2026-09-20", "10:00")
	a, err := d.Assign(job)
	if err != nil || !a.Assigned {
		t.Fatalf("expected assignment, got %+v err=%v", a, err)
	}

	// Block Sofia's 10:00 window, then try to move the booking onto her.
	blocker, err := d.Assign(testJob("move_in_out", "Austin, TX 78705", "2026-09-20", "09:00"))
	if err != nil || !blocker.Assigned || blocker.Worker.ID != "W003" {
		t.Fatalf("expected Sofia to take the blocking job, got %+v err=%v", blocker, err)
	}

	_, _, err = d.Reassign(job.BookingID, "2026-09-20", "W003")
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict moving into an occupied window, got %v", err)
	}

	// A free worker accepts the move.
	fromID, to, err := d.Reassign(job.BookingID, "2026-09-20", "W004")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fromID != a.Worker.ID || to.ID != "W004" {
		t.Fatalf("expected move from %s to W004, got from=%s to=%s", a.Worker.ID, fromID, to.ID)
	}

	day, err := d.Schedule("W004", "2026-09-20")
	if err != nil || len(day.Booked) != 1 || day.Booked[0].BookingID != job.BookingID {
		t.Fatalf("expected the reservation on W004, got %+v err=%v", day, err)
	}
	old, err := d.Schedule(a.Worker.ID, "2026-09-20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range old.Booked {
		if r.BookingID == job.BookingID {
			t.Fatalf("reservation still present on the original worker")
		}
	}
}

func TestReleaseFreesTheWindow(t *testing.T) {
	d := newTestDirectory(t)

	job := testJob("move_in_out", "Austin, TX 78705", "2026-09-21", "10:00")
	a, err := d.Assign(job)
	if err != nil || !a.Assigned {
		t.Fatalf("expected assignment, got %+v err=%v", a, err)
	}

	workerID, err := d.Release(job.BookingID, "2026-09-21")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if workerID != a.Worker.ID {
		t.Fatalf("expected release from %s, got %s", a.Worker.ID, workerID)
	}

	again, err := d.Assign(testJob("move_in_out", "Austin, TX 78705", "2026-09-21", "10:00"))
	if err != nil || !again.Assigned {
		t.Fatalf("expected the freed window to accept a new booking, got %+v err=%v", again, err)
	}
}

func TestMetricsCountsReservationsPerDate(t *testing.T) {
	d := newTestDirectory(t)

	for _, tc := range []struct{ date, start string }{
		{"2026-09-22", "09:00"},
		{"2026-09-22", "13:00"},
		{"2026-09-23", "09:00"},
	} {
		a, err := d.Assign(testJob("airbnb", "Austin, TX 78701", tc.date, tc.start))
		if err != nil || !a.Assigned || a.Worker.ID != "W001" {
			t.Fatalf("expected W001 assignment on %s %s, got %+v err=%v", tc.date, tc.start, a, err)
		}
	}

	m, err := d.Metrics("W001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.UpcomingJobs != 3 {
		t.Fatalf("expected 3 upcoming jobs, got %d", m.UpcomingJobs)
	}
	if m.DailyLoad["2026-09-22"] != 2 || m.DailyLoad["2026-09-23"] != 1 {
		t.Fatalf("unexpected daily load: %+v", m.DailyLoad)
	}
}

func TestParseClockRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"9:05", 545},
		{"23:59", 1439},
	} {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}

	if RenderClock(545) != "09:05" {
		t.Fatalf("RenderClock(545) = %q", RenderClock(545))
	}

	for _, bad := range []string{"24:00", "12:60", "noon", "1200", ""} {
		if _, err := ParseClock(bad); err == nil {
			t.Fatalf("ParseClock(%q) accepted invalid input", bad)
		}
	}
}

func TestExtractZoneFindsFirstFiveDigitCode(t *testing.T) {
	if zone := ExtractZone("501 Congress Ave, Austin, TX 78701"); zone != "78701" {
		t.Fatalf("expected 78701, got %q", zone)
	}
	if zone := ExtractZone("123456 Long Number Rd"); zone != "" {
		t.Fatalf("expected no zone in a 6-digit run, got %q", zone)
	}
	if zone := ExtractZone("no code here"); zone != "" {
		t.Fatalf("expected empty zone, got %q", zone)
	}
}
