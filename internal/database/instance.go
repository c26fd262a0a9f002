package database

import (
	"context"
	"fmt"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db           *DB
	settingsRepo contract.SettingsRepo
	rosterRepo   contract.RosterRepo
	chatRepo     contract.ChatRepo
	sessionRepo  contract.SessionRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := &instance{
		db: db,
	}
	instance.repoInstances()
	return instance
}

// repoInstances initializes all repositories
func (i *instance) repoInstances() {
	i.settingsRepo = newSettingsRepo(i.db.conn)
	i.rosterRepo = newRosterRepo(i.db.conn)
	i.chatRepo = newChatRepo(i.db.conn)
	i.sessionRepo = newSessionRepo(i.db.conn)
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		settingsRepo: newSettingsRepo(db),
		rosterRepo:   newRosterRepo(db),
		chatRepo:     newChatRepo(db),
		sessionRepo:  newSessionRepo(db),
	}
}

// Settings returns the settings repository
func (i *instance) Settings() contract.SettingsRepo {
	return i.settingsRepo
}

// Roster returns the roster repository
func (i *instance) Roster() contract.RosterRepo {
	return i.rosterRepo
}

// Chat returns the chat directory repository
func (i *instance) Chat() contract.ChatRepo {
	return i.chatRepo
}

// Session returns the wizard-state repository
func (i *instance) Session() contract.SessionRepo {
	return i.sessionRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
