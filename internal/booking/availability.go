package booking

import (
	"context"
	"time"

	"github.com/la-masion/booking-api/internal/catalog"
	"github.com/la-masion/booking-api/internal/schedule"
	"github.com/la-masion/booking-api/internal/square"
)

// Availability is the result of a blocked-slot query for one day and service.
type Availability struct {
	Date         string
	Timezone     string
	LocationID   string
	TeamMemberID string
	BlockedTimes []string
}

// occupiedInterval is one appointment's claim on the calendar, derived from a
// Square booking record. Not persisted.
type occupiedInterval struct {
	start           time.Time
	end             time.Time
	squareBookingID string
}

// BlockedSlots computes which grid slots are unavailable on the given day for
// the given service. Read-only against Square; safe to poll.
func (s *Service) BlockedSlots(ctx context.Context, date, serviceID string) (*Availability, error) {
	if !schedule.ValidDate(date) {
		s.metrics.ObserveAvailability("invalid")
		return nil, validationErrorf("Missing or invalid date")
	}
	treatment := catalog.TreatmentByID(serviceID)
	if treatment == nil {
		s.metrics.ObserveAvailability("invalid")
		return nil, validationErrorf("Invalid serviceId")
	}
	durationMinutes, err := treatment.DurationMinutes()
	if err != nil {
		return nil, configurationErrorf(err.Error())
	}

	location, err := s.sq.ResolveLocation(ctx, s.opts.LocationID)
	if err != nil {
		return nil, err
	}
	loc := schedule.LoadLocation(location.Timezone)

	teamMemberID, err := s.sq.ResolveTeamMemberID(ctx, location.ID, s.opts.TeamMemberID)
	if err != nil {
		return nil, err
	}

	dayStart, err := schedule.DayStart(date, loc)
	if err != nil {
		return nil, validationErrorf("Invalid date")
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	bookings, err := s.sq.ListBookings(ctx, location.ID, teamMemberID, dayStart, dayEnd)
	if err != nil {
		s.metrics.ObserveAvailability("error")
		return nil, err
	}

	intervals := occupiedIntervals(bookings, teamMemberID)

	blocked := make([]string, 0)
	for _, label := range schedule.Slots() {
		slotMinutes, ok := schedule.ParseTimeLabel(label)
		if !ok {
			continue
		}
		slotStart := schedule.SlotStart(dayStart, slotMinutes)
		slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)
		for _, iv := range intervals {
			if schedule.Overlaps(slotStart, slotEnd, iv.start, iv.end) {
				blocked = append(blocked, label)
				break
			}
		}
	}

	timezone := location.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	s.metrics.ObserveAvailability("ok")
	return &Availability{
		Date:         date,
		Timezone:     timezone,
		LocationID:   location.ID,
		TeamMemberID: teamMemberID,
		BlockedTimes: blocked,
	}, nil
}

// occupiedIntervals derives occupied time ranges from Square bookings. A
// booking's duration is the sum of its segments for the resolved team member
// (duration plus intermission gap) plus the trailing transition buffer.
// Bookings with no parseable start or a non-positive duration are skipped.
func occupiedIntervals(bookings []square.Booking, teamMemberID string) []occupiedInterval {
	intervals := make([]occupiedInterval, 0, len(bookings))
	for _, b := range bookings {
		if b.StartAt == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, b.StartAt)
		if err != nil {
			continue
		}
		totalMinutes := 0
		for _, seg := range b.AppointmentSegments {
			if seg.TeamMemberID != teamMemberID {
				continue
			}
			totalMinutes += seg.DurationMinutes + seg.IntermissionMinutes
		}
		durationMinutes := totalMinutes + b.TransitionTimeMinutes
		if durationMinutes <= 0 {
			continue
		}
		intervals = append(intervals, occupiedInterval{
			start:           start,
			end:             start.Add(time.Duration(durationMinutes) * time.Minute),
			squareBookingID: b.ID,
		})
	}
	return intervals
}
