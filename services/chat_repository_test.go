package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tailorlink/tailorlink-api/models"
)

func setupChatTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Chat{}, &models.Message{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func chatTestUsers(t *testing.T, db *gorm.DB) (*models.User, *models.User) {
	customer := &models.User{
		Auth0ID: "auth0|customer123",
		Name:    "Priya Sharma",
		Email:   "priya@example.com",
		Role:    "customer",
	}
	tailor := &models.User{
		Auth0ID:  "auth0|tailor123",
		Name:     "Meera's Traditional Designs",
		Email:    "meera@example.com",
		Role:     "tailor",
		IsOnline: true,
	}
	assert.NoError(t, db.Create(customer).Error)
	assert.NoError(t, db.Create(tailor).Error)
	return customer, tailor
}

func TestFindOrCreateChat(t *testing.T) {
	db := setupChatTestDB(t)
	repo := NewChatRepository(db)
	customer, tailor := chatTestUsers(t, db)

	chat, err := repo.FindOrCreateChat(customer, tailor.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, chat.ID)
	assert.Equal(t, customer.ID, chat.CustomerID)
	assert.Equal(t, tailor.ID, chat.TailorUserID)

	// Second call returns the same chat, not a duplicate
	again, err := repo.FindOrCreateChat(customer, tailor.ID)
	assert.NoError(t, err)
	assert.Equal(t, chat.ID, again.ID)

	var count int64
	db.Model(&models.Chat{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAppendMessage(t *testing.T) {
	db := setupChatTestDB(t)
	repo := NewChatRepository(db)
	customer, tailor := chatTestUsers(t, db)

	chat, err := repo.FindOrCreateChat(customer, tailor.ID)
	assert.NoError(t, err)

	// Backdate the chat so the activity touch is observable
	stale := time.Now().Add(-time.Hour)
	assert.NoError(t, db.Model(chat).Update("updated_at", stale).Error)

	message, err := repo.AppendMessage(chat, customer, "When can I expect it to be ready?")
	assert.NoError(t, err)
	assert.Equal(t, customer.ID, message.SenderID)
	assert.Equal(t, customer.Name, message.SenderName)
	assert.Equal(t, models.MessageTypeText, message.Type)
	assert.NotEmpty(t, message.ID)

	// The insert commits together with the chat activity touch
	var stored models.Chat
	assert.NoError(t, db.First(&stored, "id = ?", chat.ID).Error)
	assert.True(t, stored.UpdatedAt.After(stale))

	var count int64
	db.Model(&models.Message{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAppendMessageEmptyTextIsRejected(t *testing.T) {
	db := setupChatTestDB(t)
	repo := NewChatRepository(db)
	customer, tailor := chatTestUsers(t, db)

	chat, err := repo.FindOrCreateChat(customer, tailor.ID)
	assert.NoError(t, err)

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := repo.AppendMessage(chat, customer, text)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}

	// Nothing was written
	var count int64
	db.Model(&models.Message{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAppendMessageNonParticipantIsRejected(t *testing.T) {
	db := setupChatTestDB(t)
	repo := NewChatRepository(db)
	customer, tailor := chatTestUsers(t, db)

	outsider := &models.User{
		Auth0ID: "auth0|outsider",
		Name:    "Outsider",
		Email:   "outsider@example.com",
		Role:    "customer",
	}
	assert.NoError(t, db.Create(outsider).Error)

	chat, err := repo.FindOrCreateChat(customer, tailor.ID)
	assert.NoError(t, err)

	_, err = repo.AppendMessage(chat, outsider, "hello")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestListMessagesOrdering(t *testing.T) {
	db := setupChatTestDB(t)
	repo := NewChatRepository(db)
	customer, tailor := chatTestUsers(t, db)

	chat, err := repo.FindOrCreateChat(customer, tailor.ID)
	assert.NoError(t, err)

	// Insert with explicit timestamps, out of order, plus a same-timestamp
	// pair to exercise the insertion-order tiebreak.
	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	texts := []struct {
		text string
		at   time.Time
	}{
		{"third", base.Add(2 * time.Minute)},
		{"first", base},
		{"second", base.Add(time.Minute)},
		{"fourth", base.Add(2 * time.Minute)}, // same timestamp as "third", inserted later
	}
	for _, m := range texts {
		msg := models.Message{
			ChatID:     chat.ID,
			SenderID:   tailor.ID,
			SenderName: tailor.Name,
			Text:       m.text,
			Type:       models.MessageTypeText,
			CreatedAt:  m.at,
		}
		assert.NoError(t, db.Create(&msg).Error)
	}

	messages, err := repo.ListMessages(chat, customer)
	assert.NoError(t, err)
	assert.Len(t, messages, 4)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "second", messages[1].Text)
	assert.Equal(t, "third", messages[2].Text)
	assert.Equal(t, "fourth", messages[3].Text)
}

func TestListChatsSummaries(t *testing.T) {
	db := setupChatTestDB(t)
	repo := NewChatRepository(db)
	customer, tailor := chatTestUsers(t, db)

	chat, err := repo.FindOrCreateChat(customer, tailor.ID)
	assert.NoError(t, err)

	_, err = repo.AppendMessage(chat, tailor, "Your blouse is ready for pickup!")
	assert.NoError(t, err)

	// Stored unread counter is surfaced as-is
	assert.NoError(t, db.Model(chat).Update("customer_unread", 2).Error)

	// Customer's view: counterpart is the tailor
	summaries, err := repo.ListChats(customer)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, chat.ID, summaries[0].ID)
	assert.Equal(t, tailor.ID, summaries[0].ParticipantID)
	assert.Equal(t, tailor.Name, summaries[0].ParticipantName)
	assert.Equal(t, models.ParticipantTypeTailor, summaries[0].ParticipantType)
	assert.Equal(t, "Your blouse is ready for pickup!", summaries[0].LastMessage)
	assert.NotNil(t, summaries[0].LastMessageTime)
	assert.Equal(t, "now", summaries[0].LastMessageAge)
	assert.Equal(t, 2, summaries[0].UnreadCount)
	assert.True(t, summaries[0].IsOnline)

	// Tailor's view: counterpart is the customer, unread comes from the
	// tailor-side counter
	summaries, err = repo.ListChats(tailor)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, customer.ID, summaries[0].ParticipantID)
	assert.Equal(t, models.ParticipantTypeCustomer, summaries[0].ParticipantType)
	assert.Equal(t, 0, summaries[0].UnreadCount)
	assert.False(t, summaries[0].IsOnline)
}

func TestGetChatNotFound(t *testing.T) {
	db := setupChatTestDB(t)
	repo := NewChatRepository(db)

	_, err := repo.GetChat("no-such-chat")
	assert.ErrorIs(t, err, ErrChatNotFound)
}
