package database

import (
	"database/sql"
	"fmt"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
)

type chatRepository struct {
	db dbConn
}

func newChatRepo(db dbConn) contract.ChatRepo {
	return &chatRepository{db: db}
}

func (r *chatRepository) Upsert(chat *entity.Chat) error {
	query := `
		INSERT INTO chats (chat_id, type, title, username, status)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			username = excluded.username,
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query, chat.ChatID, chat.Type, chat.Title, chat.Username, chat.Status)
	if err != nil {
		return fmt.Errorf("failed to upsert chat: %w", err)
	}

	return nil
}

func (r *chatRepository) GetByID(chatID int64) (*entity.Chat, error) {
	chat := &entity.Chat{}
	query := `
		SELECT chat_id, type, title, username, status, added_at, updated_at
		FROM chats
		WHERE chat_id = ?
	`

	err := r.db.QueryRow(query, chatID).Scan(
		&chat.ChatID,
		&chat.Type,
		&chat.Title,
		&chat.Username,
		&chat.Status,
		&chat.AddedAt,
		&chat.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	return chat, nil
}

func (r *chatRepository) ListGroupsPage(page, pageSize int) ([]*entity.Chat, int, error) {
	countQuery := `
		SELECT COUNT(*) FROM chats
		WHERE status = 'active' AND (type = 'group' OR type = 'supergroup')
	`

	var total int
	if err := r.db.QueryRow(countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count group chats: %w", err)
	}

	query := `
		SELECT chat_id, type, title, username, status, added_at, updated_at
		FROM chats
		WHERE status = 'active' AND (type = 'group' OR type = 'supergroup')
		ORDER BY title
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, pageSize, page*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list group chats: %w", err)
	}
	defer rows.Close()

	var chats []*entity.Chat
	for rows.Next() {
		chat := &entity.Chat{}
		err := rows.Scan(
			&chat.ChatID,
			&chat.Type,
			&chat.Title,
			&chat.Username,
			&chat.Status,
			&chat.AddedAt,
			&chat.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read group chats: %w", err)
	}

	return chats, total, nil
}
