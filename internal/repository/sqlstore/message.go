package sqlstore

import (
	"context"
	"database/sql"

	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository"
)

var _ repository.MessageRepository = (*MessageStore)(nil)

// messageBase joins users twice, once per side of the conversation.
const messageBase = `SELECT messages.message_id AS message_id, messages.message AS message, messages.date_sent AS date_sent,
	messages.sender_id AS sender_id, sender.username AS sender_username,
	messages.receiver_id AS receiver_id, receiver.username AS receiver_username
FROM messages
LEFT JOIN users sender ON messages.sender_id = sender.user_id
LEFT JOIN users receiver ON messages.receiver_id = receiver.user_id`

const (
	oldestFirst = "messages.date_sent ASC, messages.message_id ASC"
	newestFirst = "messages.date_sent DESC, messages.message_id DESC"
)

type MessageStore struct {
	db   *DB
	base query
}

func mapMessage(r Row) model.Message {
	return model.Message{
		ID:       r.Int64("message_id"),
		Text:     r.String("message"),
		DateSent: r.Time("date_sent"),
		Sender: model.UserSummary{
			ID:       r.Int64("sender_id"),
			Username: r.String("sender_username"),
		},
		Receiver: model.UserSummary{
			ID:       r.Int64("receiver_id"),
			Username: r.String("receiver_username"),
		},
	}
}

func (s *MessageStore) Save(ctx context.Context, message *model.Message) error {
	if err := s.db.check("messages", "save", message); err != nil {
		return err
	}
	sent := s.db.timestamp(message.DateSent)

	id, err := s.db.insert(ctx, "messages", "message_id",
		`INSERT INTO messages (sender_id, receiver_id, message, date_sent) VALUES (?, ?, ?, ?)`,
		nullID(message.Sender.ID),
		nullID(message.Receiver.ID),
		message.Text,
		sent,
	)
	if err != nil {
		return err
	}
	message.ID = id
	message.DateSent = sent
	return nil
}

func (s *MessageStore) Delete(ctx context.Context, id int64) error {
	return s.db.remove(ctx, "messages", "message_id", id)
}

func (s *MessageStore) FindByID(ctx context.Context, id int64) (*model.Message, error) {
	return first(ctx, s.db, "messages", "find_by_id", s.base.Where("messages.message_id = ?", id), mapMessage)
}

func (s *MessageStore) FindAll(ctx context.Context) ([]model.Message, error) {
	return list(ctx, s.db, "messages", "find_all", s.base.OrderBy(oldestFirst), mapMessage)
}

func (s *MessageStore) FindByUserID(ctx context.Context, userID int64) ([]model.Message, error) {
	q := s.base.
		Where("messages.sender_id = ? OR messages.receiver_id = ?", userID, userID).
		OrderBy(oldestFirst)
	return list(ctx, s.db, "messages", "find_by_user_id", q, mapMessage)
}

func (s *MessageStore) FindBetween(ctx context.Context, userA, userB int64) ([]model.Message, error) {
	q := s.base.
		Where("(messages.sender_id = ? AND messages.receiver_id = ?) OR (messages.sender_id = ? AND messages.receiver_id = ?)",
			userA, userB, userB, userA).
		OrderBy(oldestFirst)
	return list(ctx, s.db, "messages", "find_between", q, mapMessage)
}

// CountByUserID counts the messages userID sent or received.
func (s *MessageStore) CountByUserID(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.run(ctx, "messages", "count_by_user_id", func(ctx context.Context, conn *sql.Conn) error {
		stmt, args := selectFrom(`SELECT COUNT(*) FROM messages`).
			Where("sender_id = ? OR receiver_id = ?", userID, userID).
			build(s.db.dialect)
		return conn.QueryRowContext(ctx, stmt, args...).Scan(&n)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Recent returns the latest limit messages of userID, newest first. A
// non-positive limit returns no messages.
func (s *MessageStore) Recent(ctx context.Context, userID int64, limit int) ([]model.Message, error) {
	if limit <= 0 {
		return []model.Message{}, nil
	}
	q := s.base.
		Where("messages.sender_id = ? OR messages.receiver_id = ?", userID, userID).
		OrderBy(newestFirst).
		Limit(limit)
	return list(ctx, s.db, "messages", "recent", q, mapMessage)
}
