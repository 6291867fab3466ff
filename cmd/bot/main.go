package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/app/usecase"
	"github.com/dimasfirmansyah/studybot/internal/config"
	"github.com/dimasfirmansyah/studybot/internal/infra/sqlite"
	"github.com/dimasfirmansyah/studybot/internal/infra/wa"
	"github.com/dimasfirmansyah/studybot/internal/logger"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	walog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	// Everything below depends on the interface, not the zap wrapper.
	var zl logger.Logger = zapLogger

	waLogger := walog.Stdout("Client", "INFO", true)

	// WAL mode and busy timeout so the bot and the device store can share the file
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.SQLitePath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		zl.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewUserRepository(db)
	if err := repo.InitTables(context.Background()); err != nil {
		zl.Fatalf("Failed to init tables: %v", err)
	}

	recordUC := usecase.NewRecordStudyUsecase(repo)
	statsUC := usecase.NewGetStatsUsecase(repo)
	leaderboardUC := usecase.NewGetLeaderboardUsecase(repo)
	goalUC := usecase.NewGoalUsecase(repo)
	debtUC := usecase.NewDebtUsecase(repo)
	resetUC := usecase.NewResetUserUsecase(repo)
	handleMessageUC := usecase.NewHandleMessageUsecase(recordUC, statsUC, leaderboardUC, goalUC, debtUC, resetUC)

	waService := wa.NewService(cfg.SQLitePath, waLogger)

	waService.SetMessageHandler(func(ctx context.Context, client *whatsmeow.Client, evt *events.Message) {
		// Group restriction lives here, not in the usecases.
		if cfg.GroupID != "" && evt.Info.Chat.String() != cfg.GroupID {
			return
		}
		if evt.Info.IsFromMe {
			return
		}

		userID := evt.Info.Sender.User
		pushName := evt.Info.PushName
		if pushName == "" {
			pushName = "Unknown"
		}

		msg := ""
		if evt.Message.Conversation != nil {
			msg = *evt.Message.Conversation
		} else if evt.Message.ExtendedTextMessage != nil && evt.Message.ExtendedTextMessage.Text != nil {
			msg = *evt.Message.ExtendedTextMessage.Text
		}
		if msg == "" {
			return
		}

		zl.Debugf("Message from %s (%s): %s", pushName, userID, msg)

		response, err := handleMessageUC.Execute(ctx, userID, pushName, msg)
		if err != nil {
			zl.Errorf("Error handling message from %s: %v", userID, err)
			return
		}
		if response == "" {
			return
		}

		// Delay the reply a bit so the bot feels less mechanical
		delayMs := cfg.ReplyDelayMinMs
		if cfg.ReplyDelayMaxMs > cfg.ReplyDelayMinMs {
			delayMs = cfg.ReplyDelayMinMs + rand.Intn(cfg.ReplyDelayMaxMs-cfg.ReplyDelayMinMs+1)
		}
		if delayMs > 0 {
			if cfg.ShowTyping {
				_ = waService.GetClient().SendChatPresence(ctx, evt.Info.Chat, types.ChatPresenceComposing, types.ChatPresenceMediaText)
			}
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
			if cfg.ShowTyping {
				_ = waService.GetClient().SendChatPresence(ctx, evt.Info.Chat, types.ChatPresencePaused, types.ChatPresenceMediaText)
			}
		}

		resp := &waE2E.Message{Conversation: &response}
		if _, err := waService.GetClient().SendMessage(ctx, evt.Info.Chat, resp); err != nil {
			zl.Errorf("Failed to send response: %v", err)
		}
	})

	if err := waService.Initialize(context.Background()); err != nil {
		zl.Fatalf("Failed to initialize WhatsApp service: %v", err)
	}

	if !waService.IsLoggedIn() {
		if cfg.BotPhone != "" {
			if err := waService.Connect(); err != nil {
				zl.Fatalf("Failed to connect for pairing: %v", err)
			}
			zl.Infof("Not logged in. Attempting to pair with phone: %s", cfg.BotPhone)
			code, err := waService.Pair(cfg.BotPhone)
			if err != nil {
				zl.Errorf("Failed to generate pair code: %v", err)
			} else {
				zl.Infof("PAIR CODE: %s", code)
				zl.Info("Verify this code on WhatsApp (Linked Devices > Link with phone number)")
			}
		} else {
			zl.Info("Not logged in. BOT_PHONE not set. Printing QR...")
			waService.PrintQR()
		}
	} else {
		if err := waService.Connect(); err != nil {
			zl.Fatalf("Failed to connect: %v", err)
		}
		zl.Info("Client is already logged in.")
	}

	zl.Info("Study bot is running... Press Ctrl+C to exit.")

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	zl.Info("Shutting down...")
	waService.Disconnect()
}
