package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/slotgate/availability-api/internal/dto"
	"github.com/slotgate/availability-api/internal/models"
	appErrors "github.com/slotgate/availability-api/pkg/errors"
)

// WorkingHoursSource returns the recurring weekly availability windows for
// a user within a date range.
type WorkingHoursSource interface {
	FetchWorkingHours(ctx context.Context, username string, from, to time.Time) ([]models.WorkingHourRule, error)
}

// BusyIntervalSource returns already committed bookings for a user within a
// date range.
type BusyIntervalSource interface {
	FetchBusyIntervals(ctx context.Context, username string, from, to time.Time) ([]models.BusyInterval, error)
}

// ScheduleSource returns the user's schedules with date-pinned entries.
type ScheduleSource interface {
	ListSchedules(ctx context.Context, username string) ([]models.Schedule, error)
}

// AvailabilityService computes free-time intervals from working hours and
// busy intervals. All inputs are treated as immutable snapshots; the
// service itself holds no mutable state and is safe for concurrent use.
type AvailabilityService struct {
	workingHours WorkingHoursSource
	busy         BusyIntervalSource
	schedules    ScheduleSource
	loc          *time.Location
	maxRangeDays int
	logger       *zap.Logger
}

// NewAvailabilityService constructs the calculator. offsetMinutes is the
// fixed UTC offset of the target zone applied to every window boundary.
func NewAvailabilityService(workingHours WorkingHoursSource, busy BusyIntervalSource, schedules ScheduleSource, offsetMinutes, maxRangeDays int, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		workingHours: workingHours,
		busy:         busy,
		schedules:    schedules,
		loc:          fixedZone(offsetMinutes),
		maxRangeDays: maxRangeDays,
		logger:       logger,
	}
}

// ComputeFreeSlots returns the ordered free intervals for a user between
// startDate and endDate. A missing or equal endDate means exactly one day.
// Emitted intervals are grouped by day, then by rule, then chronologically
// within the rule's window; windows of overlapping rules are intentionally
// not merged or re-sorted across rules.
func (s *AvailabilityService) ComputeFreeSlots(ctx context.Context, username string, startDate time.Time, endDate *time.Time) ([]models.FreeInterval, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "username is required")
	}
	if startDate.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start date is required")
	}

	start := s.midnight(startDate)
	end := start.AddDate(0, 0, 1)
	if endDate != nil && !endDate.IsZero() {
		resolved := s.midnight(*endDate)
		if resolved.Before(start) {
			return nil, appErrors.ErrInvalidRange
		}
		// Equal dates collapse to a one-day query rather than an empty
		// half-open range.
		if resolved.After(start) {
			end = resolved
		}
	}

	if s.maxRangeDays > 0 {
		if days := int(end.Sub(start) / (24 * time.Hour)); days > s.maxRangeDays {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("date range exceeds %d days", s.maxRangeDays))
		}
	}

	rules, busy, err := s.fetchSnapshot(ctx, username, start, end)
	if err != nil {
		return nil, err
	}

	sorted := sortBusy(busy)

	free := make([]models.FreeInterval, 0)
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		weekday := int(day.Weekday())
		for _, rule := range rules {
			if !rule.AppliesOn(weekday) {
				continue
			}
			dayStart := day.Add(time.Duration(rule.StartMinute) * time.Minute)
			dayEnd := day.Add(time.Duration(rule.EndMinute) * time.Minute)
			free = append(free, carveWindow(dayStart, dayEnd, sorted)...)
		}
	}

	s.logger.Debug("computed free slots",
		zap.String("username", username),
		zap.Int("rules", len(rules)),
		zap.Int("busy", len(busy)),
		zap.Int("slots", len(free)),
	)

	return dedupe(free), nil
}

// FreeScheduleOn computes free intervals for one day from date-pinned
// schedule entries instead of recurring weekly rules. Entries without a
// date are recurring and belong to ComputeFreeSlots.
func (s *AvailabilityService) FreeScheduleOn(ctx context.Context, username string, date time.Time) ([]models.FreeInterval, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "username is required")
	}
	if date.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}

	day := s.midnight(date)
	next := day.AddDate(0, 0, 1)

	schedules, busy, err := s.fetchDaySnapshot(ctx, username, day, next)
	if err != nil {
		return nil, err
	}

	sorted := sortBusy(busy)

	free := make([]models.FreeInterval, 0)
	for _, schedule := range schedules {
		for _, entry := range schedule.Availability {
			if entry.Date == nil {
				continue
			}
			windowStart, windowEnd, err := s.entryWindow(entry)
			if err != nil {
				s.logger.Warn("skipping malformed schedule entry",
					zap.String("username", username),
					zap.Int("schedule_id", schedule.ID),
					zap.Error(err),
				)
				continue
			}
			// Only entries intersecting the queried day count.
			if !windowStart.Before(next) || !windowEnd.After(day) {
				continue
			}
			free = append(free, carveWindow(windowStart, windowEnd, sorted)...)
		}
	}

	return dedupe(free), nil
}

// fetchSnapshot issues the two independent upstream reads concurrently and
// joins them before computation. The first failure wins; nothing is
// retried or swallowed.
func (s *AvailabilityService) fetchSnapshot(ctx context.Context, username string, from, to time.Time) ([]models.WorkingHourRule, []models.BusyInterval, error) {
	type rulesResult struct {
		rules []models.WorkingHourRule
		err   error
	}
	type busyResult struct {
		busy []models.BusyInterval
		err  error
	}

	rulesCh := make(chan rulesResult, 1)
	busyCh := make(chan busyResult, 1)

	go func() {
		rules, err := s.workingHours.FetchWorkingHours(ctx, username, from, to)
		rulesCh <- rulesResult{rules: rules, err: err}
	}()
	go func() {
		busy, err := s.busy.FetchBusyIntervals(ctx, username, from, to)
		busyCh <- busyResult{busy: busy, err: err}
	}()

	rules := <-rulesCh
	busy := <-busyCh
	if rules.err != nil {
		return nil, nil, rules.err
	}
	if busy.err != nil {
		return nil, nil, busy.err
	}
	return rules.rules, busy.busy, nil
}

func (s *AvailabilityService) fetchDaySnapshot(ctx context.Context, username string, from, to time.Time) ([]models.Schedule, []models.BusyInterval, error) {
	type schedulesResult struct {
		schedules []models.Schedule
		err       error
	}
	type busyResult struct {
		busy []models.BusyInterval
		err  error
	}

	schedulesCh := make(chan schedulesResult, 1)
	busyCh := make(chan busyResult, 1)

	go func() {
		schedules, err := s.schedules.ListSchedules(ctx, username)
		schedulesCh <- schedulesResult{schedules: schedules, err: err}
	}()
	go func() {
		busy, err := s.busy.FetchBusyIntervals(ctx, username, from, to)
		busyCh <- busyResult{busy: busy, err: err}
	}()

	schedules := <-schedulesCh
	busy := <-busyCh
	if schedules.err != nil {
		return nil, nil, schedules.err
	}
	if busy.err != nil {
		return nil, nil, busy.err
	}
	return schedules.schedules, busy.busy, nil
}

// carveWindow subtracts busy intervals from [dayStart, dayEnd). The cursor
// only moves forward and never beyond dayEnd, which keeps the subtraction
// correct for overlapping and out-of-window busy intervals alike.
func carveWindow(dayStart, dayEnd time.Time, busy []models.BusyInterval) []models.FreeInterval {
	var free []models.FreeInterval
	cursor := dayStart
	for _, b := range busy {
		// Half-open overlap: [b.Start, b.End) must intersect [dayStart, dayEnd).
		if !b.Start.Before(dayEnd) || !b.End.After(dayStart) {
			continue
		}
		if cursor.Before(b.Start) {
			free = append(free, models.FreeInterval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if cursor.After(dayEnd) {
			cursor = dayEnd
		}
	}
	if cursor.Before(dayEnd) {
		free = append(free, models.FreeInterval{Start: cursor, End: dayEnd})
	}
	return free
}

// sortBusy drops empty intervals and orders the rest by start, keeping the
// original order of equal starts. Sorting is required: processing busy
// intervals out of order would move the cursor past earlier gaps.
func sortBusy(busy []models.BusyInterval) []models.BusyInterval {
	sorted := make([]models.BusyInterval, 0, len(busy))
	for _, b := range busy {
		if !b.End.After(b.Start) {
			continue
		}
		sorted = append(sorted, b)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return sorted
}

// dedupe collapses intervals with the same textual representation, keeping
// the first occurrence and the overall order.
func dedupe(intervals []models.FreeInterval) []models.FreeInterval {
	seen := make(map[string]struct{}, len(intervals))
	out := make([]models.FreeInterval, 0, len(intervals))
	for _, iv := range intervals {
		key := iv.Start.Format(dto.SlotLayout) + "/" + iv.End.Format(dto.SlotLayout)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, iv)
	}
	return out
}

// midnight anchors a calendar date at 00:00 in the target zone.
func (s *AvailabilityService) midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

func (s *AvailabilityService) entryWindow(entry models.ScheduleEntry) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04:05", *entry.Date+" "+normalizeClock(entry.StartTime), s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02 15:04:05", *entry.Date+" "+normalizeClock(entry.EndTime), s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time: %w", err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("entry window %s-%s is empty", entry.StartTime, entry.EndTime)
	}
	return start, end, nil
}

// normalizeClock accepts "09:00" and "09:00:00" alike.
func normalizeClock(clock string) string {
	if strings.Count(clock, ":") == 1 {
		return clock + ":00"
	}
	return clock
}

func fixedZone(offsetMinutes int) *time.Location {
	sign := "+"
	minutes := offsetMinutes
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, minutes/60, minutes%60)
	return time.FixedZone(name, offsetMinutes*60)
}
