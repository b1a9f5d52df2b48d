package postgres

import (
	"context"

	"termtalk/internal/domain/entity"
	domainerrors "termtalk/internal/domain/errors"
	"termtalk/internal/domain/repository"
	"termtalk/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// messageRepository implements the repository.MessageRepository interface using GORM.
// The messages table is an append-only, infinite-growth log read back in
// primary-key order.
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository is the constructor for messageRepository.
func NewMessageRepository(db *gorm.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

// Append inserts a message at the end of the log. The insert is durable
// before this returns; the database assigns the ID.
func (repo *messageRepository) Append(ctx context.Context, msg *entity.Message) error {
	msgM := fromMessageDomain(msg)

	if err := repo.db.WithContext(ctx).Create(msgM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "message is missing required fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append message")
	}

	msg.ID = msgM.ID
	msg.CreatedAt = msgM.CreatedAt

	return nil
}

// ListAll returns every message in the log, ascending by ID.
func (repo *messageRepository) ListAll(ctx context.Context) ([]entity.Message, error) {
	return repo.list(ctx, 0)
}

// ListAfter returns all messages with an ID greater than afterID, ascending by ID.
func (repo *messageRepository) ListAfter(ctx context.Context, afterID int64) ([]entity.Message, error) {
	return repo.list(ctx, afterID)
}

func (repo *messageRepository) list(ctx context.Context, afterID int64) ([]entity.Message, error) {
	var models []model.MessageModel

	query := repo.db.WithContext(ctx).Order("id ASC")
	if afterID > 0 {
		query = query.Where("id > ?", afterID)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	messages := make([]entity.Message, 0, len(models))
	for i := range models {
		messages = append(messages, *toMessageDomain(&models[i]))
	}

	return messages, nil
}

func toMessageDomain(m *model.MessageModel) *entity.Message {
	return &entity.Message{
		ID:        m.ID,
		Username:  m.Username,
		Text:      m.Text,
		Timestamp: m.Timestamp,
		CreatedAt: m.CreatedAt,
	}
}

func fromMessageDomain(msg *entity.Message) *model.MessageModel {
	return &model.MessageModel{
		Username:  msg.Username,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
		CreatedAt: msg.CreatedAt,
	}
}
