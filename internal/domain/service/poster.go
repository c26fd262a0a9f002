package service

import (
	"log"
	"strconv"
	"time"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
)

// PostChunkSize is the maximum length of a single roster message; longer
// renderings are split at line boundaries.
const PostChunkSize = 4000

type posterService struct {
	dm        contract.DataManager
	transport contract.MessageTransport
	message   *messageService
	loc       *time.Location
}

func newPoster(dm contract.DataManager, transport contract.MessageTransport, message *messageService, loc *time.Location) *posterService {
	return &posterService{
		dm:        dm,
		transport: transport,
		message:   message,
		loc:       loc,
	}
}

// PostNextBlock posts the next unposted roster window and advances the
// cursor. Configuration problems come back as an in-band TickResult with
// err == nil, so the caller still records the fire key for the instant;
// transport and storage failures return err != nil and leave both the
// cursor and the fire key untouched, making the same window retry on the
// next qualifying instant.
func (s *posterService) PostNextBlock() (*entity.TickResult, error) {
	settings := s.dm.Settings()

	enabled, err := settings.Get(domain.KeySchedEnabled)
	if err != nil {
		return nil, err
	}
	if enabled != "true" {
		return &entity.TickResult{OK: true, Skip: "disabled"}, nil
	}

	targetRaw, err := settings.Get(domain.KeyTargetChatID)
	if err != nil {
		return nil, err
	}
	targetID, _ := strconv.ParseInt(targetRaw, 10, 64)
	if targetID == 0 {
		return &entity.TickResult{OK: false, Error: "no target_chat_id"}, nil
	}

	orderNo, err := settings.Get(domain.KeyOrderNumber)
	if err != nil {
		return nil, err
	}
	orderDate, err := settings.Get(domain.KeyOrderDate)
	if err != nil {
		return nil, err
	}
	if orderNo == "" || orderDate == "" {
		return &entity.TickResult{OK: false, Error: "missing order info"}, nil
	}

	spanDays, err := settingInt(settings, domain.KeyPostSpanDays, domain.DefaultSpanDays)
	if err != nil {
		return nil, err
	}
	spanDays = clamp(spanDays, 1, domain.MaxPostSpan)

	stats, err := s.dm.Roster().Stats()
	if err != nil {
		return nil, err
	}
	if stats.MinDate == "" {
		return &entity.TickResult{OK: false, Error: "empty roster"}, nil
	}

	cursor, err := settings.Get(domain.KeyCursorISO)
	if err != nil {
		return nil, err
	}
	// ISO dates compare correctly as strings. A cursor past the last record
	// is left alone so the exhaustion check below can fire.
	if cursor == "" || cursor < stats.MinDate {
		cursor = stats.MinDate
	}

	next, err := s.dm.Roster().NextDateOnOrAfter(cursor)
	if err != nil {
		return nil, err
	}
	if next == "" {
		if err := settings.Set(domain.KeySchedEnabled, "false"); err != nil {
			return nil, err
		}
		s.transport.NotifyOwner("✅ انتهت السجلات، أوقفتُ الجدولة.")
		return &entity.TickResult{OK: true, Done: "exhausted"}, nil
	}

	start, err := time.ParseInLocation("2006-01-02", next, s.loc)
	if err != nil {
		return nil, err
	}

	msg, err := s.message.BuildPeriodMessage(orderNo, orderDate, start, spanDays)
	if err != nil {
		return nil, err
	}

	topicID, err := settingInt64(settings, domain.KeyTargetTopicID)
	if err != nil {
		return nil, err
	}

	if err := s.transport.SendLongText(targetID, topicID, msg, PostChunkSize); err != nil {
		return nil, err
	}

	// Advance by the configured span from the window start. Gaps inside the
	// window are not compensated for; only the search above skips them.
	newCursor := start.AddDate(0, 0, spanDays).Format("2006-01-02")
	if err := settings.Set(domain.KeyCursorISO, newCursor); err != nil {
		return nil, err
	}

	log.Printf("Posted roster window starting %s (%d days), cursor now %s", next, spanDays, newCursor)
	return &entity.TickResult{OK: true, Posted: true}, nil
}

// Tick is the trigger entrypoint, invoked about once a minute. It always
// returns a status, never an error: the trigger layer must not retry on its
// own, so every failure is folded into the result.
func (s *posterService) Tick() *entity.TickResult {
	return s.tickAt(time.Now().In(s.loc))
}

func (s *posterService) tickAt(now time.Time) *entity.TickResult {
	settings := s.dm.Settings()

	enabled, err := settings.Get(domain.KeySchedEnabled)
	if err != nil {
		return tickError(err)
	}
	if enabled != "true" {
		return &entity.TickResult{OK: true, Skip: "disabled"}
	}

	policy, err := LoadPolicy(settings)
	if err != nil {
		return tickError(err)
	}

	decision := ShouldFire(policy, NowPartsOf(now))
	if !decision.Fire {
		return &entity.TickResult{OK: true, Skip: "not time"}
	}

	lastKey, err := settings.Get(domain.KeyLastFireKey)
	if err != nil {
		return tickError(err)
	}
	if lastKey == decision.Key {
		return &entity.TickResult{OK: true, Skip: "dupe minute"}
	}

	result, err := s.PostNextBlock()
	if err != nil {
		// fire key intentionally not recorded: the window retries on the
		// next qualifying instant
		log.Printf("Tick failed: %v", err)
		return tickError(err)
	}

	if err := settings.Set(domain.KeyLastFireKey, decision.Key); err != nil {
		return tickError(err)
	}

	return result
}

func tickError(err error) *entity.TickResult {
	return &entity.TickResult{OK: false, Error: err.Error()}
}

func settingInt64(settings contract.SettingsRepo, key string) (int64, error) {
	raw, err := settings.Get(key)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}
