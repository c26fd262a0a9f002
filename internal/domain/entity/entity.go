package entity

import "time"

// RosterRecord is one duty assignment: a calendar date (ISO YYYY-MM-DD, no
// time component), a college/workplace label and a person's name.
type RosterRecord struct {
	ID      int64
	Date    string
	College string
	Name    string
}

// RosterStats summarizes the full roster table. MinDate/MaxDate are empty
// strings when the table is empty.
type RosterStats struct {
	MinDate string
	MaxDate string
	Count   int
}

// Chat is one entry of the chat directory, upserted by id whenever the bot
// sees a chat.
type Chat struct {
	ChatID    int64
	Type      string
	Title     string
	Username  string
	Status    string
	AddedAt   time.Time
	UpdatedAt time.Time
}

// SchedulePolicy is the administrator-configured firing policy, persisted as
// flat settings. Exactly one mode is active; Days empty means "every day"
// for the weekly mode.
type SchedulePolicy struct {
	Mode         string
	Days         []int
	Time         string
	EveryHours   int
	EveryMinutes int
}

// SkipReason classifies why an imported row was dropped.
type SkipReason string

const (
	SkipBadDate   SkipReason = "unparseable date"
	SkipEmptyName SkipReason = "empty name"
)

// ImportSummary aggregates the per-row outcomes of a roster import.
type ImportSummary struct {
	Imported int
	Skipped  int
	Reasons  map[SkipReason]int
}

func (s *ImportSummary) AddSkip(reason SkipReason) {
	if s.Reasons == nil {
		s.Reasons = make(map[SkipReason]int)
	}
	s.Reasons[reason]++
	s.Skipped++
}

// TickResult is the in-band status returned to the trigger layer. Every tick
// path produces one of these; the trigger never sees a hard failure that
// could cause destructive retries.
type TickResult struct {
	OK     bool   `json:"ok"`
	Skip   string `json:"skip,omitempty"`
	Posted bool   `json:"posted,omitempty"`
	Done   string `json:"done,omitempty"`
	Error  string `json:"error,omitempty"`
}
