package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tailorlink/tailorlink-api/models"
	"github.com/tailorlink/tailorlink-api/utils"
)

// Chat repository errors. Controllers map these to response codes.
var (
	ErrEmptyMessage   = errors.New("message text is empty")
	ErrChatNotFound   = errors.New("chat not found")
	ErrNotParticipant = errors.New("user is not a participant of this chat")
)

// ChatRepository abstracts conversation storage so the HTTP layer never
// talks to the database directly and a real-time transport can be swapped
// in behind the same interface later.
type ChatRepository interface {
	ListChats(viewer *models.User) ([]models.ChatSummary, error)
	FindOrCreateChat(customer *models.User, tailorUserID uint) (*models.Chat, error)
	GetChat(chatID string) (*models.Chat, error)
	ListMessages(chat *models.Chat, viewer *models.User) ([]models.Message, error)
	AppendMessage(chat *models.Chat, sender *models.User, text string) (*models.Message, error)
}

// GormChatRepository is the database-backed ChatRepository.
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a ChatRepository backed by the given database.
func NewChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// IsParticipant reports whether the user belongs to the chat.
func IsParticipant(chat *models.Chat, user *models.User) bool {
	return chat.CustomerID == user.ID || chat.TailorUserID == user.ID
}

// ListChats returns the viewer's chats as per-viewer summaries, most
// recently updated first.
func (r *GormChatRepository) ListChats(viewer *models.User) ([]models.ChatSummary, error) {
	var chats []models.Chat
	if err := r.db.Where("customer_id = ? OR tailor_user_id = ?", viewer.ID, viewer.ID).
		Order("updated_at DESC").
		Find(&chats).Error; err != nil {
		return nil, err
	}

	summaries := make([]models.ChatSummary, 0, len(chats))
	for i := range chats {
		summary, err := r.summarize(&chats[i], viewer)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

// FindOrCreateChat returns the existing chat between the customer and the
// tailor, creating it on first contact.
func (r *GormChatRepository) FindOrCreateChat(customer *models.User, tailorUserID uint) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.Where("customer_id = ? AND tailor_user_id = ?", customer.ID, tailorUserID).
		First(&chat).Error
	if err == nil {
		return &chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chat = models.Chat{
		CustomerID:   customer.ID,
		TailorUserID: tailorUserID,
	}
	if err := r.db.Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetChat fetches one chat by id.
func (r *GormChatRepository) GetChat(chatID string) (*models.Chat, error) {
	var chat models.Chat
	if err := r.db.First(&chat, "id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// ListMessages returns the chat's messages in ascending timestamp order,
// ties broken by insertion order.
func (r *GormChatRepository) ListMessages(chat *models.Chat, viewer *models.User) ([]models.Message, error) {
	if !IsParticipant(chat, viewer) {
		return nil, ErrNotParticipant
	}

	var messages []models.Message
	if err := r.db.Where("chat_id = ?", chat.ID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// AppendMessage validates and appends a text message to the chat. Text that
// is empty after trimming is rejected before anything is written.
func (r *GormChatRepository) AppendMessage(chat *models.Chat, sender *models.User, text string) (*models.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	if !IsParticipant(chat, sender) {
		return nil, ErrNotParticipant
	}

	message := models.Message{
		ChatID:     chat.ID,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Text:       trimmed,
		Type:       models.MessageTypeText,
	}
	// The insert and the activity touch land together or not at all.
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		// Touch the chat so the conversation list sorts by recent activity.
		return tx.Model(chat).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// summarize builds the viewer-facing summary of one chat.
func (r *GormChatRepository) summarize(chat *models.Chat, viewer *models.User) (*models.ChatSummary, error) {
	// Pick the counterpart and the viewer's unread counter.
	participantID := chat.TailorUserID
	participantType := models.ParticipantTypeTailor
	unread := chat.CustomerUnread
	if viewer.ID == chat.TailorUserID {
		participantID = chat.CustomerID
		participantType = models.ParticipantTypeCustomer
		unread = chat.TailorUnread
	}

	var participant models.User
	if err := r.db.First(&participant, participantID).Error; err != nil {
		return nil, err
	}

	summary := models.ChatSummary{
		ID:              chat.ID,
		ParticipantID:   participant.ID,
		ParticipantName: participant.Name,
		ParticipantType: participantType,
		UnreadCount:     unread,
		IsOnline:        participant.IsOnline,
	}

	var last models.Message
	err := r.db.Where("chat_id = ?", chat.ID).
		Order("created_at DESC").
		Order("id DESC").
		First(&last).Error
	if err == nil {
		summary.LastMessage = last.Text
		t := last.CreatedAt
		summary.LastMessageTime = &t
		summary.LastMessageAge = utils.FormatRelativeTime(time.Now(), t)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &summary, nil
}
