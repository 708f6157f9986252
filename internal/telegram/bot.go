package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-meal-planner/internal/app"
	"daily-meal-planner/internal/config"
	"daily-meal-planner/internal/metrics"
	"daily-meal-planner/internal/render"
	"daily-meal-planner/internal/shopping"
)

// Bot wraps the Telegram API around the planning application.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook for %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{api: bot, app: application, cfg: cfg}, nil
}

// RegisterHandlers registers the webhook handler with the given mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)",
			update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) isAllowed(userID int64) bool {
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if userID == id {
			return true
		}
	}
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	// A bare URL means clipper mode.
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		b.handleClipperRequest(msg)
		return
	}

	switch command(text) {
	case "/plan":
		b.handlePlanRequest(msg)
	case "/shopping":
		b.handleShoppingRequest(msg)
	case "/recipes":
		b.handleRecipesRequest(msg)
	case "/metrics":
		b.handleMetricsRequest(msg)
	default:
		reply := tgbotapi.NewMessage(msg.Chat.ID,
			"Commands:\n/plan [YYYY-MM-DD]\n/shopping [YYYY-MM-DD]\n/recipes\n/metrics\n\nOr send a recipe URL to import it.")
		b.api.Send(reply)
	}
}

// command returns the first word of a message, without any @botname
// suffix Telegram appends in group chats.
func command(text string) string {
	first := strings.Fields(text)
	if len(first) == 0 {
		return ""
	}
	cmd, _, _ := strings.Cut(first[0], "@")
	return cmd
}

// argDate parses an optional YYYY-MM-DD argument, defaulting to today.
func argDate(text string) (time.Time, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", fields[1])
}

func (b *Bot) handlePlanRequest(msg *tgbotapi.Message) {
	date, err := argDate(msg.Text)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "Usage: /plan [YYYY-MM-DD]"))
		return
	}

	statusMsg := tgbotapi.NewMessage(msg.Chat.ID, "*Planning your day...*")
	statusMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(statusMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := b.app.PlanDay(ctx, date)
	var finalText string
	if err != nil {
		log.Printf("Error planning day: %v", err)
		finalText = fmt.Sprintf("Error planning day: %v", err)
	} else {
		finalText = render.Markdown(result)
		if advice, err := b.app.Advise(ctx, result); err != nil {
			log.Printf("Warning: failed to get plan advice: %v", err)
		} else if advice != "" {
			finalText += "\n_" + advice + "_\n"
		}
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) handleShoppingRequest(msg *tgbotapi.Message) {
	date, err := argDate(msg.Text)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "Usage: /shopping [YYYY-MM-DD]"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	list, err := b.app.LatestShoppingList(ctx, date)
	if err != nil {
		log.Printf("Error fetching shopping list: %v", err)
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "Error fetching shopping list."))
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, formatShoppingList(date, list))
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}

func (b *Bot) handleRecipesRequest(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	recipes, err := b.app.ListRecipes(ctx)
	if err != nil {
		log.Printf("Error listing recipes: %v", err)
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "Error listing recipes."))
		return
	}

	var sb strings.Builder
	sb.WriteString("*Recipe Catalog*\n\n")
	if len(recipes) == 0 {
		sb.WriteString("_No recipes yet. Send a recipe URL to import one._\n")
	}
	for _, rec := range recipes {
		fmt.Fprintf(&sb, "- %s (%d min)\n", rec.Name, rec.CookingTimeMinutes)
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, sb.String())
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}

func (b *Bot) handleClipperRequest(msg *tgbotapi.Message) {
	statusMsg := tgbotapi.NewMessage(msg.Chat.ID, "*Importing recipe...*")
	statusMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(statusMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rec, err := b.app.ImportRecipe(ctx, strings.TrimSpace(msg.Text))
	var finalText string
	if err != nil {
		log.Printf("Error importing recipe: %v", err)
		finalText = fmt.Sprintf("Error importing recipe: %v", err)
	} else {
		finalText = fmt.Sprintf("*Recipe saved!*\n\n%s (%d min, %d ingredients)",
			rec.Name, rec.CookingTimeMinutes, len(rec.Ingredients))
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	summary, err := b.app.MetricsSummary(ctx, 7)
	if err != nil {
		log.Printf("Error fetching metrics: %v", err)
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth("data")

	var sb strings.Builder
	sb.WriteString("*Planning Activity (7 days)*\n\n")
	if len(summary) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range summary {
		fmt.Fprintf(&sb, "- %s: %d runs, %d ok, avg %.0fms\n", d.Date, d.Runs, d.Successes, d.AvgDurationMS)
	}

	sb.WriteString("\n*System Health*\n")
	fmt.Fprintf(&sb, "- RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(&sb, "- Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "- Disk Data: %s\n", health.DataDiskSize)

	reply := tgbotapi.NewMessage(msg.Chat.ID, sb.String())
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}

func formatShoppingList(date time.Time, list *shopping.ShoppingList) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Shopping List for %s*\n\n", date.Format("2006-01-02"))
	if list == nil || len(list.Items) == 0 {
		sb.WriteString("_No shopping list for this day. Run /plan first._\n")
		return sb.String()
	}
	for _, item := range list.Items {
		fmt.Fprintf(&sb, "- %s\n", item)
	}
	return sb.String()
}
