package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"balimatch/server/internal/models"
	"balimatch/server/internal/search"
)

const apiBase = "https://api.telegram.org/bot"

// Callback data prefixes for the neighbor-suggestion buttons.
const (
	confirmPrefix = "nb:"
	declinePrefix = "nbno:"
)

// Telegram rejects callback_data longer than 64 bytes.
const maxCallbackData = 64

// Service speaks the Telegram Bot API directly and feeds inbound messages
// and callbacks into the search pipeline.
type Service struct {
	token       string
	pollTimeout int
	logger      *logrus.Logger
	client      *http.Client
	pipeline    *search.Pipeline
}

func NewService(token string, pollTimeout int, pipeline *search.Pipeline, logger *logrus.Logger) *Service {
	return &Service{
		token:       token,
		pollTimeout: pollTimeout,
		logger:      logger,
		client: &http.Client{
			Timeout: time.Duration(pollTimeout+10) * time.Second,
		},
		pipeline: pipeline,
	}
}

// Run long-polls getUpdates until the context is cancelled. Each update is
// handled in its own goroutine; handlers are stateless.
func (s *Service) Run(ctx context.Context) {
	var offset int64
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		updates, err := s.getUpdates(ctx, offset)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.WithError(err).Error("Failed to fetch updates")
			time.Sleep(3 * time.Second)
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			update := u
			go s.dispatch(ctx, &update)
		}
	}
}

func (s *Service) dispatch(ctx context.Context, u *models.TelegramUpdate) {
	switch {
	case u.Callback != nil:
		s.handleCallback(ctx, u.Callback)
	case u.Message != nil && u.Message.Chat != nil && u.Message.Text != "":
		s.handleMessage(ctx, u.Message)
	}
}

func (s *Service) handleMessage(ctx context.Context, m *models.TelegramMessage) {
	reply := s.pipeline.Handle(ctx, m.Text)

	var markup *models.InlineKeyboardMarkup
	if reply.Confirm != nil {
		confirmData := confirmPrefix + reply.Confirm.Payload
		if len(confirmData) <= maxCallbackData {
			markup = &models.InlineKeyboardMarkup{
				InlineKeyboard: [][]models.InlineKeyboardButton{{
					{Text: reply.Confirm.AcceptLabel, CallbackData: confirmData},
					{Text: reply.Confirm.DeclineLabel, CallbackData: declinePrefix + string(reply.Locale)},
				}},
			}
		} else {
			// An oversized payload would make sendMessage fail with 400;
			// better to deliver the prompt without buttons.
			s.logger.WithField("size", len(confirmData)).Warn("Continuation exceeds callback data budget, sending without buttons")
		}
	}

	if err := s.SendMessage(ctx, m.Chat.ID, reply.Text, markup); err != nil {
		s.logger.WithError(err).Error("Failed to send reply")
	}
}

func (s *Service) handleCallback(ctx context.Context, cb *models.TelegramCallbackQuery) {
	if err := s.answerCallback(ctx, cb.ID); err != nil {
		s.logger.WithError(err).Warn("Failed to answer callback query")
	}
	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}

	var reply *search.Reply
	switch {
	case strings.HasPrefix(cb.Data, confirmPrefix):
		reply = s.pipeline.HandleCallback(ctx, strings.TrimPrefix(cb.Data, confirmPrefix))
	case strings.HasPrefix(cb.Data, declinePrefix):
		reply = s.pipeline.DismissReply(models.Locale(strings.TrimPrefix(cb.Data, declinePrefix)))
	default:
		s.logger.WithField("data", cb.Data).Warn("Unknown callback payload")
		return
	}

	if err := s.SendMessage(ctx, cb.Message.Chat.ID, reply.Text, nil); err != nil {
		s.logger.WithError(err).Error("Failed to send callback reply")
	}
}

// SendMessage sends text to a chat, optionally with an inline keyboard.
func (s *Service) SendMessage(ctx context.Context, chatID int64, text string, markup *models.InlineKeyboardMarkup) error {
	if s.token == "" {
		return errors.New("Telegram bot token is not configured")
	}

	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	if markup != nil {
		payload["reply_markup"] = markup
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		apiBase+s.token+"/sendMessage", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token - please check your token from @BotFather")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

func (s *Service) getUpdates(ctx context.Context, offset int64) ([]models.TelegramUpdate, error) {
	url := fmt.Sprintf("%s%s/getUpdates?timeout=%d&offset=%d&allowed_updates=%s",
		apiBase, s.token, s.pollTimeout, offset, `["message","callback_query"]`)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("getUpdates failed (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed models.TelegramUpdatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %v", err)
	}
	if !parsed.OK {
		return nil, errors.New("getUpdates returned ok=false")
	}

	return parsed.Result, nil
}

func (s *Service) answerCallback(ctx context.Context, callbackID string) error {
	payload := map[string]interface{}{"callback_query_id": callbackID}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		apiBase+s.token+"/answerCallbackQuery", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("answerCallbackQuery failed (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}
