// Package bot реализует Telegram-бота, который принимает экспорт чата,
// отправляет его на сервер анализа и возвращает отчет.
package bot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-chat-stats/cmd/bot/config"
	"telegram-chat-stats/internal/adapters/exporter"
	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/server"
)

const (
	startCommand = "start"
	helpCommand  = "help"
)

// ReportAPI - часть API сервера, нужная боту.
type ReportAPI interface {
	Upload(ctx context.Context, fileName string, content io.Reader) (*server.ReportResponse, error)
}

// Bot представляет собой основной объект Telegram-бота.
type Bot struct {
	api        *tgbotapi.BotAPI
	cfg        config.BotConfig
	reports    ReportAPI
	active     *ActiveChats
	logger     *slog.Logger
	httpClient *http.Client

	sendMessageFunc      func(tgbotapi.Chattable) (tgbotapi.Message, error)
	getFileDirectURLFunc func(fileID string) (string, error)
}

// NewBot создает и инициализирует новый экземпляр бота.
func NewBot(cfg config.BotConfig, reports ReportAPI, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	logger.Info("Authorized on account", slog.String("username", api.Self.UserName))

	b := newBot(cfg, reports, logger)
	b.api = api
	b.sendMessageFunc = api.Send
	b.getFileDirectURLFunc = api.GetFileDirectURL
	return b, nil
}

func newBot(cfg config.BotConfig, reports ReportAPI, logger *slog.Logger) *Bot {
	return &Bot{
		cfg:        cfg,
		reports:    reports,
		active:     NewActiveChats(),
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Start запускает основной цикл обработки обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Context cancelled, stopping bot...")
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	if msg.Document != nil {
		b.handleDocument(ctx, msg)
		return
	}

	b.reply(msg.Chat.ID, "Пожалуйста, отправьте мне result.json из экспорта чата Telegram Desktop.")
}

// handleCommand обрабатывает команды.
func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case startCommand, helpCommand:
		b.reply(msg.Chat.ID, "Я считаю статистику по архиву чата Telegram.\n\n"+
			"Экспортируйте чат в Telegram Desktop в формате JSON и отправьте мне файл result.json. "+
			"В ответ я пришлю, кто чаще всех задает вопросы и отвечает, самые частые слова "+
			"и число ссылок, хештегов и упоминаний.\n\n"+
			"• Я принимаю один файл за раз.\n"+
			fmt.Sprintf("• Максимальный размер файла: %d МБ.", b.cfg.MaxFileSizeMB))
	default:
		b.reply(msg.Chat.ID, "Я не знаю такой команды.")
	}
}

// handleDocument проверяет документ и запускает его анализ в фоне.
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	doc := msg.Document
	logger := b.logger.With(slog.Int64("chat_id", chatID))

	if !strings.EqualFold(filepath.Ext(doc.FileName), ".json") {
		b.reply(chatID, "Нужен JSON-файл экспорта (result.json).")
		return
	}
	if int64(doc.FileSize) > b.cfg.MaxFileBytes() {
		b.reply(chatID, fmt.Sprintf("Файл слишком большой. Максимум %d МБ.", b.cfg.MaxFileSizeMB))
		return
	}

	if !b.active.TryAcquire(chatID, doc.FileName) {
		logger.Warn("user tried to start a new analysis while another is active")
		b.reply(chatID, "Пожалуйста, подождите завершения предыдущего анализа.")
		return
	}

	b.reply(chatID, "✅ Файл получен, считаю статистику.")
	go func() {
		defer b.active.Release(chatID)
		b.processDocument(ctx, chatID, doc)
	}()
}

// processDocument скачивает архив, отправляет его на сервер и отвечает отчетом.
func (b *Bot) processDocument(ctx context.Context, chatID int64, doc *tgbotapi.Document) {
	logger := b.logger.With(slog.Int64("chat_id", chatID), slog.String("file_name", doc.FileName))

	data, err := b.download(ctx, doc.FileID)
	if err != nil {
		logger.Error("failed to download file", slog.String("error", err.Error()))
		b.reply(chatID, "Не удалось скачать файл. Попробуйте отправить его еще раз.")
		return
	}

	resp, err := b.reports.Upload(ctx, doc.FileName, bytes.NewReader(data))
	if err != nil {
		logger.Error("failed to analyze archive on backend", slog.String("error", err.Error()))
		b.reply(chatID, "Не удалось обработать архив. Проверьте, что это экспорт чата в формате JSON.")
		return
	}
	logger.Info("report received", slog.String("report_id", resp.ReportID), slog.Bool("cached", resp.Cached))

	b.sendReport(chatID, resp.Report)
}

func (b *Bot) download(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := b.getFileDirectURLFunc(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	limit := b.cfg.MaxFileBytes()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file exceeds %d bytes", limit)
	}
	return data, nil
}

// sendReport отправляет отчет текстом, а при большом числе строк в
// рейтингах дополнительно прикладывает XLSX.
func (b *Bot) sendReport(chatID int64, report *domain.Report) {
	text := formatReport(report, b.cfg.Render)
	if len([]rune(text)) > maxMessageLength {
		b.logger.Warn("сгенерированный текст слишком длинный, отправка в виде файла", "length", len(text))
		b.sendDocument(chatID, reportFileName("txt"), []byte(formatPlain(report)),
			"Отчет слишком большой для одного сообщения, поэтому он прикреплен в виде файла.")
	} else {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		b.send(msg)
	}

	if rankingRows(report) < b.cfg.ExcelThreshold {
		return
	}
	var buf bytes.Buffer
	if err := exporter.WriteWorkbook(&buf, report); err != nil {
		b.logger.Error("failed to build workbook", slog.String("error", err.Error()))
		b.reply(chatID, "Не удалось сформировать Excel-файл.")
		return
	}
	b.sendDocument(chatID, reportFileName("xlsx"), buf.Bytes(), "Рейтинги участников и категории.")
}

func rankingRows(report *domain.Report) int {
	return len(report.TopQuestioners) + len(report.TopRepliers) + len(report.TopRepliersToQuestions)
}

func reportFileName(ext string) string {
	return fmt.Sprintf("chat_stats_%s.%s", time.Now().Format("2006-01-02_15-04-05"), ext)
}

func (b *Bot) sendDocument(chatID int64, name string, data []byte, caption string) {
	msg := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	msg.Caption = caption
	b.send(msg)
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.sendMessageFunc(msg); err != nil {
		b.logger.Error("failed to send message", slog.String("error", err.Error()))
	}
}
