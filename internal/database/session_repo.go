package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
)

type sessionRepository struct {
	db dbConn
}

func newSessionRepo(db dbConn) contract.SessionRepo {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Set(userID int64, state *entity.WizardState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard state: %w", err)
	}

	query := `
		INSERT INTO session_state (user_id, json) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET json = excluded.json, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, userID, string(stateJSON)); err != nil {
		return fmt.Errorf("failed to save wizard state: %w", err)
	}

	return nil
}

func (r *sessionRepository) Get(userID int64) (*entity.WizardState, error) {
	var stateJSON string
	err := r.db.QueryRow(`SELECT json FROM session_state WHERE user_id = ?`, userID).Scan(&stateJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wizard state: %w", err)
	}

	state := &entity.WizardState{}
	if err := json.Unmarshal([]byte(stateJSON), state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wizard state: %w", err)
	}

	return state, nil
}

func (r *sessionRepository) Clear(userID int64) error {
	if _, err := r.db.Exec(`DELETE FROM session_state WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear wizard state: %w", err)
	}

	return nil
}
