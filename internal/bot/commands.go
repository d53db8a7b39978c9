package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shrimpsizemoose/semla/internal/models"
	"github.com/shrimpsizemoose/semla/internal/stats"
)

const adminHelp = `Available commands:
/pending - List teacher accounts waiting for approval
/approve <account_id> - Approve a teacher account
/remove <account_id> - Delete an account (courses stay published)
/stats - Platform headline numbers
/help - Show this message

Examples:
/approve 4f7c2a90-1c3e-4a7b-9ad9-66c09cbb24b1
/remove 4f7c2a90-1c3e-4a7b-9ad9-66c09cbb24b1`

type commandHandler func(*tgbotapi.Message) error

func (b *Bot) routeAdminCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start":   b.handleHelp,
		"help":    b.handleHelp,
		"pending": b.handlePending,
		"approve": b.handleApprove,
		"remove":  b.handleRemove,
		"stats":   b.handleStats,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	return b.reply(msg, adminHelp)
}

func (b *Bot) handlePending(msg *tgbotapi.Message) error {
	snap := b.service.Snapshot()

	var lines []string
	for _, account := range snap.Accounts {
		if account.Role == models.RoleTeacher && !account.Approved {
			lines = append(lines, fmt.Sprintf("%s — %s (@%s)", account.ID, account.Name, account.Handle))
		}
	}
	if len(lines) == 0 {
		return b.reply(msg, "No teacher accounts waiting for approval")
	}
	return b.reply(msg, "Waiting for approval:\n"+strings.Join(lines, "\n"))
}

func (b *Bot) handleApprove(msg *tgbotapi.Message) error {
	id := strings.TrimSpace(msg.CommandArguments())
	if id == "" {
		return b.reply(msg, "Usage: /approve <account_id>")
	}

	if err := b.service.Approve(id); err != nil {
		return b.reply(msg, fmt.Sprintf("Approve failed: %v", err))
	}
	return b.reply(msg, fmt.Sprintf("Account %s approved", id))
}

func (b *Bot) handleRemove(msg *tgbotapi.Message) error {
	id := strings.TrimSpace(msg.CommandArguments())
	if id == "" {
		return b.reply(msg, "Usage: /remove <account_id>")
	}

	if err := b.service.Remove(id); err != nil {
		return b.reply(msg, fmt.Sprintf("Remove failed: %v", err))
	}
	return b.reply(msg, fmt.Sprintf("Account %s removed", id))
}

func (b *Bot) handleStats(msg *tgbotapi.Message) error {
	snap := b.service.Snapshot()
	s := stats.ForRoster(snap)
	return b.reply(msg, fmt.Sprintf(
		"Students: %d\nTeachers: %d (%d pending)\nCourses: %d\nQuiz results stored: %d",
		s.Students, s.Teachers, s.PendingTeachers, s.Courses, len(snap.Results),
	))
}
