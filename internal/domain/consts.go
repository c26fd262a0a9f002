package domain

// Weekday ordinals as used by the schedule settings (0=Sunday..6=Saturday).
const (
	Sunday    = 0
	Monday    = 1
	Tuesday   = 2
	Wednesday = 3
	Thursday  = 4
	Friday    = 5
	Saturday  = 6
)

// ArabicWeekdayNames maps weekday ordinals to their Arabic names,
// indexed by time.Weekday.
var ArabicWeekdayNames = [7]string{
	"الأحد", "الإثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت",
}

// Schedule modes.
const (
	ModeWeeklyDays   = "weekly_days"
	ModeDaily        = "daily"
	ModeEveryHours   = "every_hours"
	ModeEveryMinutes = "every_minutes"
)

// Settings keys. The settings table is a flat string key/value map; every
// component re-reads what it needs on each operation, so the process carries
// no long-lived scheduling state.
const (
	KeySchedEnabled      = "sched_enabled"
	KeySchedMode         = "sched_mode"
	KeySchedDaysCSV      = "sched_days_csv"
	KeySchedTime         = "sched_time"
	KeySchedEveryHours   = "sched_every_hours"
	KeySchedEveryMinutes = "sched_every_minutes"
	KeyPostSpanDays      = "post_span_days"
	KeyOrderNumber       = "order_number"
	KeyOrderDate         = "order_date"
	KeyCursorISO         = "cursor_iso"
	KeyLastFireKey       = "last_fire_key"
	KeyTargetChatID      = "target_chat_id"
	KeyTargetTopicID     = "target_topic_id"
	KeyNowMessage        = "now_message"
)

// UnspecifiedCollege is the sentinel label for roster rows without a
// workplace/college value.
const UnspecifiedCollege = "غير محدد"

// Canonical college labels produced by site normalization.
const (
	CollegePharmacy        = "كلية الصيدلة"
	CollegeMedicalSciences = "كلية العلوم الطبية"
)

// DefaultNotificationTime is used when a schedule has no configured time.
const DefaultNotificationTime = "09:00"

// Span limits. The wizard accepts 1-14 days per message; the posting path
// tolerates manually edited settings up to 30.
const (
	DefaultSpanDays = 7
	MaxWizardSpan   = 14
	MaxPostSpan     = 30
)
