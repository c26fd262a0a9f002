package contract

import (
	"context"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Settings() SettingsRepo
	Roster() RosterRepo
	Chat() ChatRepo
	Session() SessionRepo
}

// SettingsRepo is the flat string key/value configuration store.
type SettingsRepo interface {
	Set(key, value string) error
	// Get returns "" when the key is absent.
	Get(key string) (string, error)
	Delete(key string) error
}

// RosterRepo defines the contract for the roster table. Dates are ISO
// YYYY-MM-DD strings; empty string means "absent" on the scalar queries.
type RosterRepo interface {
	Clear() error
	Insert(record *entity.RosterRecord) error
	Range(fromDate, toDate string) ([]*entity.RosterRecord, error)
	Stats() (*entity.RosterStats, error)
	MinDate() (string, error)
	NextDateOnOrAfter(date string) (string, error)
}

// ChatRepo defines the contract for the chat directory.
type ChatRepo interface {
	Upsert(chat *entity.Chat) error
	GetByID(chatID int64) (*entity.Chat, error)
	// ListGroupsPage returns one page of active group/supergroup chats plus
	// the total count of such chats.
	ListGroupsPage(page, pageSize int) ([]*entity.Chat, int, error)
}

// SessionRepo stores per-user wizard state.
type SessionRepo interface {
	Set(userID int64, state *entity.WizardState) error
	// Get returns nil when the user has no saved state.
	Get(userID int64) (*entity.WizardState, error)
	Clear(userID int64) error
}
