package reporter

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sadeghianmr/JobBank-Scraper/internal/models"
)

// TelegramReporter announces newly stored postings to a chat. Reporting is
// optional; runs without credentials never construct one.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	pause  time.Duration
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
		//1 second between messages to avoid 429
		pause: time.Second,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendPosting(p models.Posting) error {
	return t.SendMessage(formatPosting(p))
}

// formatPosting builds the HTML body for one posting announcement. Fields the
// listing lacked come through as blanks, matching what Telegram tolerates.
func formatPosting(p models.Posting) string {
	return fmt.Sprintf(
		"🔥 <b>%s</b>\n"+
			"🏢 %s\n"+
			"💰 %s\n"+
			"📍 %s\n"+
			"🗓 %s\n"+
			"🔗 <a href=\"%s\">View on Job Bank</a>",
		p.Title,
		p.Company,
		p.Salary,
		p.Location,
		p.DatePosted,
		p.URL,
	)
}

// AnnounceNew sends each posting whose id was just inserted, then a run
// summary. Failures are logged and swallowed; reporting never fails a run.
func (t *TelegramReporter) AnnounceNew(postings []models.Posting, insertedIDs []string) {
	if len(insertedIDs) == 0 {
		return
	}

	inserted := make(map[string]bool, len(insertedIDs))
	for _, id := range insertedIDs {
		inserted[id] = true
	}

	sent := 0
	for _, p := range postings {
		if !inserted[p.JobID] {
			continue
		}
		//announce each new id once even if it reappears on later pages
		delete(inserted, p.JobID)

		if err := t.SendPosting(p); err != nil {
			log.Printf("⚠️ Failed to send job to Telegram: %v", err)
			continue
		}
		sent++
		time.Sleep(t.pause)
	}

	summary := fmt.Sprintf("✅ Found %d new jobs, sent %d.", len(insertedIDs), sent)
	if err := t.SendMessage(summary); err != nil {
		log.Printf("⚠️ Failed to send status to Telegram: %v", err)
	}
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>JobBank Scraper Error</b>:\n%v", errReq)
	return t.SendMessage(text)
}
