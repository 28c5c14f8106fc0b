package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hamcrew-club/internal/models/config"
	"hamcrew-club/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
)

// sender - часть BotAPI, которой пользуются обработчики
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api    *tgbotapi.BotAPI
	sender sender

	AwardService  service.AwardService
	EventService  service.EventService
	MemberService service.MemberService

	clock  service.Clock
	loc    *time.Location
	logger *zap.Logger

	userSessions map[int64]*UserSession // chatID -> session
	mu           sync.RWMutex
}

func NewBot(
	cfg config.BotConfig,
	awardService service.AwardService,
	eventService service.EventService,
	memberService service.MemberService,
	clock service.Clock,
	loc *time.Location,
	logger *zap.Logger,
) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	api.Debug = cfg.Debug

	logger.Info("bot initialized", zap.String("username", api.Self.UserName), zap.Bool("debug", cfg.Debug))

	b := newBot(api, awardService, eventService, memberService, clock, loc, logger)
	b.api = api
	return b, nil
}

func newBot(
	s sender,
	awardService service.AwardService,
	eventService service.EventService,
	memberService service.MemberService,
	clock service.Clock,
	loc *time.Location,
	logger *zap.Logger,
) *Bot {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Bot{
		sender:        s,
		AwardService:  awardService,
		EventService:  eventService,
		MemberService: memberService,
		clock:         clock,
		loc:           loc,
		logger:        logger,
		userSessions:  make(map[int64]*UserSession),
	}
}

// Start читает обновления до отмены ctx или Stop
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("bot polling started", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) Stop() {
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	b.logger.Info("bot polling stopped")
}
