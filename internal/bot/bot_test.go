package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-chat-stats/cmd/bot/config"
	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/server"
)

// mockReportAPI - мок для ReportAPI.
type mockReportAPI struct {
	uploadFunc func(ctx context.Context, fileName string, content io.Reader) (*server.ReportResponse, error)
}

func (m *mockReportAPI) Upload(ctx context.Context, fileName string, content io.Reader) (*server.ReportResponse, error) {
	return m.uploadFunc(ctx, fileName, content)
}

// sentMessages собирает все отправленные ботом сообщения.
type sentMessages struct {
	mu   sync.Mutex
	msgs []tgbotapi.Chattable
}

func (s *sentMessages) send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return tgbotapi.Message{}, nil
}

func (s *sentMessages) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, m := range s.msgs {
		if mc, ok := m.(tgbotapi.MessageConfig); ok {
			out = append(out, mc.Text)
		}
	}
	return out
}

func (s *sentMessages) documents() []tgbotapi.DocumentConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []tgbotapi.DocumentConfig
	for _, m := range s.msgs {
		if dc, ok := m.(tgbotapi.DocumentConfig); ok {
			out = append(out, dc)
		}
	}
	return out
}

func testConfig() config.BotConfig {
	cfg := config.Config{Bot: config.BotConfig{Token: "test", HTTPTimeout: 5 * time.Second}}
	cfg.ApplyDefaults()
	return cfg.Bot
}

// newTestBot создает бота с моками для тестирования.
func newTestBot(cfg config.BotConfig, api ReportAPI, fileURL string) (*Bot, *sentMessages) {
	sent := &sentMessages{}
	b := newBot(cfg, api, slog.New(slog.NewTextHandler(io.Discard, nil)))
	b.sendMessageFunc = sent.send
	b.getFileDirectURLFunc = func(fileID string) (string, error) { return fileURL, nil }
	return b, sent
}

func sampleReport() *domain.Report {
	return &domain.Report{
		ArchiveName:            "Study <group>",
		MessageCount:           3,
		TopQuestioners:         []domain.RankedEntry{{Name: "Ali", Count: 2}},
		TopRepliers:            []domain.RankedEntry{{Name: "Sara", Count: 1}},
		TopRepliersToQuestions: []domain.RankedEntry{{Name: "Sara", Count: 1}},
		TopWords:               []domain.RankedEntry{{Name: "کتاب", Count: 2}},
		Counts:                 map[domain.Category]int{domain.CategoryHashtag: 1},
	}
}

func TestBot_ProcessDocument(t *testing.T) {
	ctx := context.Background()

	// тестовый сервер имитирует файловое API Telegram
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"name": "Study"}`))
	}))
	defer ts.Close()

	doc := &tgbotapi.Document{FileID: "file-1", FileName: "result.json"}

	t.Run("Отчет отправляется текстом", func(t *testing.T) {
		var gotBody string
		api := &mockReportAPI{uploadFunc: func(ctx context.Context, fileName string, content io.Reader) (*server.ReportResponse, error) {
			data, _ := io.ReadAll(content)
			gotBody = string(data)
			assert.Equal(t, "result.json", fileName)
			return &server.ReportResponse{ReportID: "r1", Report: sampleReport()}, nil
		}}
		b, sent := newTestBot(testConfig(), api, ts.URL)

		b.processDocument(ctx, 42, doc)

		assert.Equal(t, `{"name": "Study"}`, gotBody)
		texts := sent.texts()
		require.Len(t, texts, 1)
		assert.Contains(t, texts[0], "Study &lt;group&gt;")
		assert.Contains(t, texts[0], "Sara")
		assert.Contains(t, texts[0], "hashtag: 1")
		assert.Empty(t, sent.documents())
	})

	t.Run("При большом рейтинге прикладывается XLSX", func(t *testing.T) {
		cfg := testConfig()
		cfg.ExcelThreshold = 2
		api := &mockReportAPI{uploadFunc: func(context.Context, string, io.Reader) (*server.ReportResponse, error) {
			return &server.ReportResponse{Report: sampleReport()}, nil
		}}
		b, sent := newTestBot(cfg, api, ts.URL)

		b.processDocument(ctx, 42, doc)

		docs := sent.documents()
		require.Len(t, docs, 1)
		file, ok := docs[0].File.(tgbotapi.FileBytes)
		require.True(t, ok)
		assert.True(t, strings.HasSuffix(file.Name, ".xlsx"))
		assert.NotEmpty(t, file.Bytes)
	})

	t.Run("Ошибка сервера анализа", func(t *testing.T) {
		api := &mockReportAPI{uploadFunc: func(context.Context, string, io.Reader) (*server.ReportResponse, error) {
			return nil, errors.New("unexpected status code 422")
		}}
		b, sent := newTestBot(testConfig(), api, ts.URL)

		b.processDocument(ctx, 42, doc)

		texts := sent.texts()
		require.Len(t, texts, 1)
		assert.Contains(t, texts[0], "Не удалось обработать архив")
	})

	t.Run("Файл не скачался", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer failing.Close()

		called := false
		api := &mockReportAPI{uploadFunc: func(context.Context, string, io.Reader) (*server.ReportResponse, error) {
			called = true
			return nil, nil
		}}
		b, sent := newTestBot(testConfig(), api, failing.URL)

		b.processDocument(ctx, 42, doc)

		assert.False(t, called)
		require.Len(t, sent.texts(), 1)
		assert.Contains(t, sent.texts()[0], "Не удалось скачать файл")
	})
}

func TestBot_HandleDocument(t *testing.T) {
	ctx := context.Background()
	chat := &tgbotapi.Chat{ID: 7}

	t.Run("Не JSON отклоняется", func(t *testing.T) {
		b, sent := newTestBot(testConfig(), &mockReportAPI{}, "")
		b.handleDocument(ctx, &tgbotapi.Message{Chat: chat, Document: &tgbotapi.Document{FileName: "photo.png"}})

		require.Len(t, sent.texts(), 1)
		assert.Contains(t, sent.texts()[0], "JSON")
	})

	t.Run("Слишком большой файл отклоняется", func(t *testing.T) {
		b, sent := newTestBot(testConfig(), &mockReportAPI{}, "")
		b.handleDocument(ctx, &tgbotapi.Message{Chat: chat, Document: &tgbotapi.Document{
			FileName: "result.json",
			FileSize: (config.DefaultMaxFileSizeMB + 1) << 20,
		}})

		require.Len(t, sent.texts(), 1)
		assert.Contains(t, sent.texts()[0], "слишком большой")
	})

	t.Run("Второй файл во время анализа отклоняется", func(t *testing.T) {
		b, sent := newTestBot(testConfig(), &mockReportAPI{}, "")
		require.True(t, b.active.TryAcquire(chat.ID, "first.json"))

		b.handleDocument(ctx, &tgbotapi.Message{Chat: chat, Document: &tgbotapi.Document{FileName: "result.json"}})

		require.Len(t, sent.texts(), 1)
		assert.Contains(t, sent.texts()[0], "подождите")
		name, _ := b.active.Current(chat.ID)
		assert.Equal(t, "first.json", name)
	})

	t.Run("Анализ запускается и чат освобождается", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer ts.Close()

		done := make(chan struct{})
		api := &mockReportAPI{uploadFunc: func(context.Context, string, io.Reader) (*server.ReportResponse, error) {
			defer close(done)
			return &server.ReportResponse{Report: sampleReport()}, nil
		}}
		b, sent := newTestBot(testConfig(), api, ts.URL)

		b.handleDocument(ctx, &tgbotapi.Message{Chat: chat, Document: &tgbotapi.Document{FileName: "result.JSON"}})

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("анализ не был запущен")
		}
		assert.Eventually(t, func() bool {
			_, busy := b.active.Current(chat.ID)
			return !busy && len(sent.texts()) == 2
		}, 5*time.Second, 10*time.Millisecond)
	})
}

func TestBot_HandleMessage(t *testing.T) {
	ctx := context.Background()
	chat := &tgbotapi.Chat{ID: 7}

	t.Run("Команда start", func(t *testing.T) {
		b, sent := newTestBot(testConfig(), &mockReportAPI{}, "")
		b.handleMessage(ctx, &tgbotapi.Message{
			Chat:     chat,
			Text:     "/start",
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
		})

		require.Len(t, sent.texts(), 1)
		assert.Contains(t, sent.texts()[0], "result.json")
	})

	t.Run("Неизвестная команда", func(t *testing.T) {
		b, sent := newTestBot(testConfig(), &mockReportAPI{}, "")
		b.handleMessage(ctx, &tgbotapi.Message{
			Chat:     chat,
			Text:     "/stats",
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
		})

		require.Len(t, sent.texts(), 1)
		assert.Equal(t, "Я не знаю такой команды.", sent.texts()[0])
	})

	t.Run("Обычный текст", func(t *testing.T) {
		b, sent := newTestBot(testConfig(), &mockReportAPI{}, "")
		b.handleMessage(ctx, &tgbotapi.Message{Chat: chat, Text: "привет"})

		require.Len(t, sent.texts(), 1)
		assert.Contains(t, sent.texts()[0], "отправьте")
	})
}

func TestActiveChats(t *testing.T) {
	s := NewActiveChats()
	assert.True(t, s.TryAcquire(1, "a.json"))
	assert.False(t, s.TryAcquire(1, "b.json"))
	assert.True(t, s.TryAcquire(2, "c.json"))

	s.Release(1)
	_, ok := s.Current(1)
	assert.False(t, ok)
	assert.True(t, s.TryAcquire(1, "b.json"))
}
