package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const (
	btnAwards        = "🏆 시상"
	btnMonthCalendar = "📅 이번 달 일정"
	btnToday         = "📌 오늘 일정"

	btnRecentSixMonths = "최근 6개월"
	btnThisYear        = "올해"
	btnCustomRange     = "기간 입력"
	btnCancel          = "❌ 취소"
)

func createMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAwards),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMonthCalendar),
			tgbotapi.NewKeyboardButton(btnToday),
		),
	)
}

// Клавиатура выбора периода наград
func createAwardRangeKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnRecentSixMonths),
			tgbotapi.NewKeyboardButton(btnThisYear),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCustomRange),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

func createCancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}
