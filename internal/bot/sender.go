package bot

import (
	"gopkg.in/telebot.v4"
)

// TelegramSender delivers assignment messages through the live bot API.
type TelegramSender struct {
	tb *telebot.Bot
}

func NewSender(tb *telebot.Bot) *TelegramSender {
	return &TelegramSender{tb: tb}
}

func (s *TelegramSender) Send(telegramID int64, text string) error {
	_, err := s.tb.Send(telebot.ChatID(telegramID), text)
	return err
}
