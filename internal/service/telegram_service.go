package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/dto"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/logger"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const telegramApiBase = "https://api.telegram.org"

// TelegramConfig binds the bot to a single account. The bridge is a personal
// assistant channel: every inbound chat message is attributed to UserId.
type TelegramConfig struct {
	BotToken string
	UserId   uuid.UUID
}

type ITelegramService interface {
	HandleUpdate(ctx context.Context, update *dto.TelegramUpdate) error
	History(ctx context.Context, userId uuid.UUID) ([]*entity.TelegramMessage, error)
}

type telegramService struct {
	cfg          TelegramConfig
	uowFactory   unitofwork.RepositoryFactory
	agentService IAgentService
	httpClient   *http.Client
	log          logger.ILogger
}

func NewTelegramService(
	cfg TelegramConfig,
	uowFactory unitofwork.RepositoryFactory,
	agentService IAgentService,
	log logger.ILogger,
) ITelegramService {
	return &telegramService{
		cfg:          cfg,
		uowFactory:   uowFactory,
		agentService: agentService,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		log:          log,
	}
}

// HandleUpdate records the inbound message, runs it through the agent
// pipeline, and sends the reply back to the chat. Errors after the inbound
// record still produce a reply so the chat never goes silent.
func (s *telegramService) HandleUpdate(ctx context.Context, update *dto.TelegramUpdate) error {
	if update.Message == nil || update.Message.Text == "" {
		return nil // edits, stickers, joins: nothing to do
	}

	chatId := update.Message.Chat.Id
	text := update.Message.Text

	s.record(ctx, chatId, text, "inbound")

	reply := s.replyFor(ctx, text)

	if err := s.sendMessage(ctx, chatId, reply); err != nil {
		s.log.Error("telegram", "send failed", map[string]interface{}{
			"chat_id": chatId,
			"error":   err.Error(),
		})
		return err
	}

	s.record(ctx, chatId, reply, "outbound")
	return nil
}

func (s *telegramService) replyFor(ctx context.Context, text string) string {
	res, err := s.agentService.ProcessMessage(ctx, s.cfg.UserId, &dto.AgentMessageRequest{
		Message: text,
		UserId:  s.cfg.UserId,
	})
	if err != nil {
		s.log.Warn("telegram", "agent pipeline failed", map[string]interface{}{"error": err.Error()})
		return "Sorry, I couldn't process that message right now."
	}
	return res.Response
}

func (s *telegramService) record(ctx context.Context, chatId int64, text, direction string) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	msg := entity.TelegramMessage{
		Id:        uuid.New(),
		UserId:    s.cfg.UserId,
		ChatId:    chatId,
		Text:      text,
		Direction: direction,
		CreatedAt: time.Now(),
	}
	if err := uow.TelegramRepository().Create(ctx, &msg); err != nil {
		s.log.Warn("telegram", "message record failed", map[string]interface{}{
			"direction": direction,
			"error":     err.Error(),
		})
	}
}

func (s *telegramService) sendMessage(ctx context.Context, chatId int64, text string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"chat_id": chatId,
		"text":    text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", telegramApiBase, s.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram sendMessage returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *telegramService) History(ctx context.Context, userId uuid.UUID) ([]*entity.TelegramMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.TelegramRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}
