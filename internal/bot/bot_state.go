package bot

type BotState int

const (
	StateDefault BotState = iota

	// Состояния для выбора периода наград
	StateSelectingAwardRange
	StateAwaitingAwardStart
	StateAwaitingAwardEnd
)

type UserSession struct {
	State      BotState
	AwardStart string
}

func (b *Bot) getSession(chatID int64) UserSession {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if session, exists := b.userSessions[chatID]; exists {
		return *session
	}
	return UserSession{State: StateDefault}
}

func (b *Bot) setSession(chatID int64, session UserSession) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userSessions[chatID] = &session
}

func (b *Bot) resetSession(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.userSessions, chatID)
}
