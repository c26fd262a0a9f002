package database

import (
	"fmt"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
)

type rosterRepository struct {
	db dbConn
}

func newRosterRepo(db dbConn) contract.RosterRepo {
	return &rosterRepository{db: db}
}

func (r *rosterRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM roster`); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}

	return nil
}

func (r *rosterRepository) Insert(record *entity.RosterRecord) error {
	result, err := r.db.Exec(
		`INSERT INTO roster (d, college, name) VALUES (?, ?, ?)`,
		record.Date, record.College, record.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert roster record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	record.ID = id
	return nil
}

func (r *rosterRepository) Range(fromDate, toDate string) ([]*entity.RosterRecord, error) {
	query := `
		SELECT id, d, college, name FROM roster
		WHERE d BETWEEN ? AND ?
		ORDER BY d, college, name
	`

	rows, err := r.db.Query(query, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster range: %w", err)
	}
	defer rows.Close()

	var records []*entity.RosterRecord
	for rows.Next() {
		record := &entity.RosterRecord{}
		if err := rows.Scan(&record.ID, &record.Date, &record.College, &record.Name); err != nil {
			return nil, fmt.Errorf("failed to scan roster record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster range: %w", err)
	}

	return records, nil
}

func (r *rosterRepository) Stats() (*entity.RosterStats, error) {
	stats := &entity.RosterStats{}
	query := `SELECT COALESCE(MIN(d), ''), COALESCE(MAX(d), ''), COUNT(*) FROM roster`

	err := r.db.QueryRow(query).Scan(&stats.MinDate, &stats.MaxDate, &stats.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster stats: %w", err)
	}

	return stats, nil
}

func (r *rosterRepository) MinDate() (string, error) {
	var minDate string
	err := r.db.QueryRow(`SELECT COALESCE(MIN(d), '') FROM roster`).Scan(&minDate)
	if err != nil {
		return "", fmt.Errorf("failed to get roster min date: %w", err)
	}

	return minDate, nil
}

func (r *rosterRepository) NextDateOnOrAfter(date string) (string, error) {
	var next string
	err := r.db.QueryRow(`SELECT COALESCE(MIN(d), '') FROM roster WHERE d >= ?`, date).Scan(&next)
	if err != nil {
		return "", fmt.Errorf("failed to get next roster date: %w", err)
	}

	return next, nil
}
