package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	SQLitePath      string
	GroupID         string // the only chat the bot responds in; empty = all chats
	BotPhone        string
	LogLevel        string
	ReplyDelayMinMs int
	ReplyDelayMaxMs int // 0 = use min as fixed delay
	ShowTyping      bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults/environment variables")
	}

	return Config{
		SQLitePath:      getenv("SQLITE_PATH", "./data/studybot.db"),
		GroupID:         getenv("GROUP_ID", ""),
		BotPhone:        getenv("BOT_PHONE", ""),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		ReplyDelayMinMs: getenvInt("REPLY_DELAY_MIN_MS", 0),
		ReplyDelayMaxMs: getenvInt("REPLY_DELAY_MAX_MS", 0),
		ShowTyping:      getenvBool("SHOW_TYPING", false),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
