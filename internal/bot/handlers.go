package bot

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"hamcrew-club/internal/repository"
	"hamcrew-club/internal/service"
	award_service "hamcrew-club/internal/service/award"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
)

// лимит Telegram на длину сообщения
const maxMessageLength = 4096

const (
	msgCancelled     = "❌ 취소되었습니다."
	msgUnknown       = "알 수 없는 명령입니다. /help 를 입력하세요."
	msgGenericError  = "❌ 요청 처리 중 오류가 발생했습니다."
	msgAskAwardStart = "📆 시작일을 입력하세요 (YYYY-MM-DD)"
	msgAskAwardEnd   = "📆 종료일을 입력하세요 (YYYY-MM-DD)"
	msgBadDate       = "❌ 날짜는 YYYY-MM-DD 형식으로 입력하세요."
	msgMemberUsage   = "사용법: /member 이름 또는 전화번호"
	msgNotFound      = "찾을 수 없습니다."
)

// Обработка сообщения здесь
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}
	chatID := message.Chat.ID
	if message.From != nil {
		b.logger.Debug("message received", zap.String("from", message.From.UserName), zap.String("text", message.Text))
	}

	// Сначала состояние, потом команды
	session := b.getSession(chatID)
	if session.State != StateDefault {
		if message.Text == btnCancel || (message.IsCommand() && message.Command() == "cancel") {
			b.cancelOperation(chatID)
			return
		}
		switch session.State {
		case StateSelectingAwardRange:
			b.handleAwardRangeSelection(ctx, chatID, message.Text)
			return
		case StateAwaitingAwardStart:
			b.handleAwardStartInput(chatID, message.Text)
			return
		case StateAwaitingAwardEnd:
			b.handleAwardEndInput(ctx, chatID, session.AwardStart, message.Text)
			return
		}
	}

	if message.IsCommand() {
		args := strings.TrimSpace(message.CommandArguments())
		switch message.Command() {
		case "start":
			b.sendWelcomeMessage(chatID)
		case "help":
			b.sendMessage(chatID, helpText)
		case "awards":
			b.handleAwardsCommand(ctx, chatID, args)
		case "calendar":
			b.handleCalendarCommand(ctx, chatID, args)
		case "today":
			b.handleTodayCommand(ctx, chatID)
		case "member":
			b.handleMemberCommand(ctx, chatID, args)
		case "cancel":
			b.cancelOperation(chatID)
		default:
			b.sendMessage(chatID, msgUnknown)
		}
		return
	}

	switch message.Text {
	case btnAwards:
		b.handleAwardsCommand(ctx, chatID, "")
	case btnMonthCalendar:
		b.handleCalendarCommand(ctx, chatID, "")
	case btnToday:
		b.handleTodayCommand(ctx, chatID)
	default:
		b.sendMessage(chatID, msgUnknown)
	}
}

const helpText = `함크루 봇 명령어
/awards - 시상 (기간 선택)
/awards 2025-01-01 2025-06-30 - 기간 지정 시상
/calendar - 이번 달 일정
/calendar 2025-03 - 해당 월 일정
/today - 오늘 일정
/member 이름 - 멤버 검색
/cancel - 입력 취소`

func (b *Bot) sendWelcomeMessage(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "👋 함크루 봇입니다.\n\n"+helpText)
	msg.ReplyMarkup = createMainKeyboard()
	b.send(msg)
}

// ///////////////////////////// награды ////////////////////////////////

func (b *Bot) handleAwardsCommand(ctx context.Context, chatID int64, args string) {
	fields := strings.Fields(args)
	switch {
	case len(fields) == 2:
		b.sendAwardReport(ctx, chatID, fields[0], fields[1])
	case len(fields) == 1 && fields[0] == btnThisYear:
		start, end := award_service.ThisYear(b.clock(), b.loc)
		b.sendAwardReport(ctx, chatID, start, end)
	case len(fields) == 0:
		b.setSession(chatID, UserSession{State: StateSelectingAwardRange})
		msg := tgbotapi.NewMessage(chatID, "🏆 시상 기간을 선택하세요")
		msg.ReplyMarkup = createAwardRangeKeyboard()
		b.send(msg)
	default:
		b.sendMessage(chatID, "사용법: /awards 시작일 종료일 (YYYY-MM-DD)")
	}
}

func (b *Bot) handleAwardRangeSelection(ctx context.Context, chatID int64, text string) {
	switch text {
	case btnRecentSixMonths:
		b.resetSession(chatID)
		start, end := award_service.RecentSixMonths(b.clock(), b.loc)
		b.sendAwardReport(ctx, chatID, start, end)
	case btnThisYear:
		b.resetSession(chatID)
		start, end := award_service.ThisYear(b.clock(), b.loc)
		b.sendAwardReport(ctx, chatID, start, end)
	case btnCustomRange:
		b.setSession(chatID, UserSession{State: StateAwaitingAwardStart})
		msg := tgbotapi.NewMessage(chatID, msgAskAwardStart)
		msg.ReplyMarkup = createCancelKeyboard()
		b.send(msg)
	default:
		b.sendMessage(chatID, "❌ 아래 버튼에서 선택하세요")
	}
}

func (b *Bot) handleAwardStartInput(chatID int64, text string) {
	start := strings.TrimSpace(text)
	if !service.IsYMD(start) {
		b.sendMessage(chatID, msgBadDate)
		return
	}
	b.setSession(chatID, UserSession{State: StateAwaitingAwardEnd, AwardStart: start})
	b.sendMessage(chatID, msgAskAwardEnd)
}

func (b *Bot) handleAwardEndInput(ctx context.Context, chatID int64, start, text string) {
	end := strings.TrimSpace(text)
	if !service.IsYMD(end) {
		b.sendMessage(chatID, msgBadDate)
		return
	}
	b.resetSession(chatID)
	b.sendAwardReport(ctx, chatID, start, end)
}

func (b *Bot) sendAwardReport(ctx context.Context, chatID int64, start, end string) {
	report, err := b.AwardService.Report(ctx, start, end)
	if err != nil {
		b.sendServiceError(chatID, err)
		return
	}
	msg := tgbotapi.NewMessage(chatID, truncate(formatAwardReport(report, topN)))
	msg.ReplyMarkup = createMainKeyboard()
	b.send(msg)
}

// ///////////////////////////// календарь ////////////////////////////////

func (b *Bot) handleCalendarCommand(ctx context.Context, chatID int64, month string) {
	if month == "" {
		month = b.clock().In(b.loc).Format(service.MonthLayout)
	}
	cal, err := b.EventService.Calendar(ctx, month, service.CalendarFilter{})
	if err != nil {
		b.sendServiceError(chatID, err)
		return
	}
	b.sendMessage(chatID, formatCalendar(cal))
}

func (b *Bot) handleTodayCommand(ctx context.Context, chatID int64) {
	now := b.clock()
	today := service.Today(now, b.loc)
	month := now.In(b.loc).Format(service.MonthLayout)

	cal, err := b.EventService.Calendar(ctx, month, service.CalendarFilter{Date: today})
	if err != nil {
		b.sendServiceError(chatID, err)
		return
	}
	b.sendMessage(chatID, formatDay(today, cal.ByDate[today]))
}

// ///////////////////////////// участники ////////////////////////////////

func (b *Bot) handleMemberCommand(ctx context.Context, chatID int64, query string) {
	if query == "" {
		b.sendMessage(chatID, msgMemberUsage)
		return
	}

	members, err := b.MemberService.ListMembers(ctx, service.MemberFilter{Query: query, Sort: service.SortNameAsc})
	if err != nil {
		b.sendServiceError(chatID, err)
		return
	}
	if len(members) != 1 {
		b.sendMessage(chatID, formatMemberList(query, members))
		return
	}

	detail, err := b.MemberService.MemberDetail(ctx, members[0].ID)
	if err != nil {
		b.sendServiceError(chatID, err)
		return
	}
	b.sendMessage(chatID, formatMemberDetail(detail))
}

// ///////////////////////////// отправка ////////////////////////////////

func (b *Bot) cancelOperation(chatID int64) {
	b.resetSession(chatID)
	msg := tgbotapi.NewMessage(chatID, msgCancelled)
	msg.ReplyMarkup = createMainKeyboard()
	b.send(msg)
}

// sendServiceError: текст ошибки формы показываем как есть, остальное в лог
func (b *Bot) sendServiceError(chatID int64, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		b.sendMessage(chatID, "❌ "+verr.Message)
	case errors.Is(err, repository.ErrNotFound):
		b.sendMessage(chatID, msgNotFound)
	default:
		b.logger.Error("bot request failed", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendMessage(chatID, msgGenericError)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, truncate(text)))
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Warn("send failed", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}

func truncate(text string) string {
	if len(text) <= maxMessageLength {
		return text
	}
	cut := maxMessageLength - len("\n…")
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "\n…"
}
