package service

import (
	"context"
	"sort"
	"time"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

const defaultInsightDays = 30

// MemberFrontingTime is the accumulated front time for one member over the
// analysed window.
type MemberFrontingTime struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name,omitempty"`
	Hours       float64 `json:"hours"`
	Percentage  float64 `json:"percentage"`
}

// SwitchFrequency summarises how often fronts change over the window.
type SwitchFrequency struct {
	Days          int     `json:"days"`
	TotalSwitches int     `json:"total_switches"`
	PerDay        float64 `json:"per_day"`
}

// InsightsService computes fronting statistics from the upstream switch
// history.
type InsightsService struct {
	system    ports.SystemClient
	directory ports.MemberDirectory
	now       func() time.Time
}

func NewInsightsService(system ports.SystemClient, directory ports.MemberDirectory) *InsightsService {
	return &InsightsService{system: system, directory: directory, now: time.Now}
}

// FrontingTime returns per-member front durations over the last `days`
// days, sorted by hours descending. The open interval of the most recent
// switch is counted up to now.
func (s *InsightsService) FrontingTime(ctx context.Context, days int) ([]MemberFrontingTime, error) {
	if days <= 0 {
		days = defaultInsightDays
	}
	now := s.now().UTC()
	since := now.AddDate(0, 0, -days)

	switches, err := s.system.ListSwitches(ctx, since)
	if err != nil {
		return nil, err
	}
	members, err := s.directory.Members(ctx)
	if err != nil {
		return nil, err
	}

	// Oldest first so each switch's duration runs to the next one.
	sort.Slice(switches, func(i, j int) bool {
		return switches[i].Timestamp.Before(switches[j].Timestamp)
	})

	totals := make(map[string]time.Duration)
	for i, sw := range switches {
		start := sw.Timestamp
		if start.Before(since) {
			start = since
		}
		end := now
		if i+1 < len(switches) {
			end = switches[i+1].Timestamp
		}
		if !end.After(start) {
			continue
		}
		for _, id := range sw.MemberIDs {
			totals[id] += end.Sub(start)
		}
	}

	var window time.Duration
	for _, d := range totals {
		window += d
	}

	out := make([]MemberFrontingTime, 0, len(totals))
	for id, d := range totals {
		entry := MemberFrontingTime{ID: id, Name: id, Hours: d.Hours()}
		if window > 0 {
			entry.Percentage = float64(d) / float64(window) * 100
		}
		for i := range members {
			if members[i].ID == id {
				entry.Name = members[i].Name
				entry.DisplayName = members[i].DisplayName
				break
			}
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hours > out[j].Hours })
	return out, nil
}

// SwitchFrequency returns the switch count and daily rate over the last
// `days` days.
func (s *InsightsService) SwitchFrequency(ctx context.Context, days int) (*SwitchFrequency, error) {
	if days <= 0 {
		days = defaultInsightDays
	}
	since := s.now().UTC().AddDate(0, 0, -days)

	switches, err := s.system.ListSwitches(ctx, since)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, sw := range switches {
		if !sw.Timestamp.Before(since) {
			count++
		}
	}
	return &SwitchFrequency{
		Days:          days,
		TotalSwitches: count,
		PerDay:        float64(count) / float64(days),
	}, nil
}
