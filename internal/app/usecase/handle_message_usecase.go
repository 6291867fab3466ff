package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/domain"
)

const helpText = `📚 Study Bot commands:
/rec <time> - log study time (e.g. /rec 2hr 30m)
/stats - your study stats
/daily - today's top learners
/weekly - this week's top learners
/leaderboard - all-time leaderboard
/streak - streak leaderboard
/setdaily <time> - set daily goal
/progressd - daily progress and debt
/deleted - reset daily goal to default
/setweekly <time> - set weekly goal
/progressw - weekly progress
/deletew - delete weekly goal
/update - refresh debt info
/debt <time> - pay off debt
/reset - erase all your data`

// HandleMessageUsecase routes chat commands to the ledger usecases and renders
// every reply. Unknown or non-command input yields an empty string, meaning no
// response is sent.
type HandleMessageUsecase struct {
	record      *RecordStudyUsecase
	stats       *GetStatsUsecase
	leaderboard *GetLeaderboardUsecase
	goals       *GoalUsecase
	debt        *DebtUsecase
	reset       *ResetUserUsecase
}

func NewHandleMessageUsecase(
	record *RecordStudyUsecase,
	stats *GetStatsUsecase,
	leaderboard *GetLeaderboardUsecase,
	goals *GoalUsecase,
	debt *DebtUsecase,
	reset *ResetUserUsecase,
) *HandleMessageUsecase {
	return &HandleMessageUsecase{
		record:      record,
		stats:       stats,
		leaderboard: leaderboard,
		goals:       goals,
		debt:        debt,
		reset:       reset,
	}
}

func (uc *HandleMessageUsecase) Execute(ctx context.Context, userID, name, message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if !strings.HasPrefix(trimmed, "/") {
		return "", nil
	}

	command := trimmed
	args := ""
	if idx := strings.IndexAny(trimmed, " \t\n"); idx >= 0 {
		command = trimmed[:idx]
		args = strings.TrimSpace(trimmed[idx:])
	}

	now := time.Now()

	switch strings.ToLower(command) {
	case "/start", "/help":
		return helpText, nil
	case "/rec":
		return uc.handleRecord(ctx, userID, name, args, now)
	case "/stats":
		return uc.handleStats(ctx, userID, now)
	case "/daily":
		return uc.handleDaily(ctx, now)
	case "/weekly":
		return uc.handleWeekly(ctx, now)
	case "/leaderboard":
		return uc.handleAllTime(ctx)
	case "/streak":
		return uc.handleStreak(ctx)
	case "/setdaily":
		return uc.handleSetDaily(ctx, userID, args)
	case "/progressd":
		return uc.handleDailyProgress(ctx, userID, now)
	case "/deleted":
		if err := uc.goals.ClearDaily(ctx, userID); err != nil {
			return "", err
		}
		return fmt.Sprintf("🧹 Daily goal reset to %s.", formatMinutes(domain.DefaultDailyGoalMinutes)), nil
	case "/setweekly":
		return uc.handleSetWeekly(ctx, userID, args)
	case "/progressw":
		return uc.handleWeeklyProgress(ctx, userID, now)
	case "/deletew":
		if err := uc.goals.ClearWeekly(ctx, userID); err != nil {
			return "", err
		}
		return "🧹 Weekly goal deleted.", nil
	case "/update":
		return uc.handleDebtUpdate(ctx, userID, now)
	case "/debt":
		return uc.handleDebtPay(ctx, userID, args)
	case "/reset":
		return uc.handleReset(ctx, userID)
	default:
		return "", nil
	}
}

func (uc *HandleMessageUsecase) handleRecord(ctx context.Context, userID, name, args string, now time.Time) (string, error) {
	result, err := uc.record.Execute(ctx, userID, name, args, now)
	if errors.Is(err, domain.ErrInvalidDuration) {
		return "❌ Couldn't read that time. Try something like /rec 2hr 30m", nil
	}
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	fmt.Fprintf(&sb, "✅ Recorded %s for %s!\n", formatMinutes(result.MinutesLogged), result.Name)
	fmt.Fprintf(&sb, "📖 Today: %s / %s (%.1f%%)\n", formatMinutes(result.TodayMinutes), formatMinutes(result.GoalMinutes), result.ProgressPercent)
	fmt.Fprintf(&sb, "🔥 Streak: %d day(s)", result.Streak)
	if result.RemainingMinutes > 0 {
		fmt.Fprintf(&sb, "\n⏳ %s left to hit today's goal", formatMinutes(result.RemainingMinutes))
	}
	if result.DebtMinutes > 0 {
		fmt.Fprintf(&sb, "\n💰 Debt: %s", formatMinutes(result.DebtMinutes))
	}
	return sb.String(), nil
}

func (uc *HandleMessageUsecase) handleStats(ctx context.Context, userID string, now time.Time) (string, error) {
	view, err := uc.stats.Execute(ctx, userID, now)
	if errors.Is(err, domain.ErrNoData) {
		return "📭 No study time recorded yet. Start with /rec", nil
	}
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	fmt.Fprintf(&sb, "📈 Stats for %s\n", view.Name)
	fmt.Fprintf(&sb, "Today: %s / %s (%.1f%%)\n", formatMinutes(view.TodayMinutes), formatMinutes(view.DailyGoal), view.ProgressPercent)
	fmt.Fprintf(&sb, "This week: %s", formatMinutes(view.WeekMinutes))
	if view.WeeklyGoal > 0 {
		fmt.Fprintf(&sb, " / %s", formatMinutes(view.WeeklyGoal))
	}
	fmt.Fprintf(&sb, "\nAll time: %s\n", formatMinutes(view.TotalMinutes))
	fmt.Fprintf(&sb, "🔥 Streak: %d day(s)\n", view.Streak)
	fmt.Fprintf(&sb, "💰 Debt: %s", formatMinutes(view.DebtMinutes))
	return sb.String(), nil
}

func (uc *HandleMessageUsecase) handleDaily(ctx context.Context, now time.Time) (string, error) {
	ranked, err := uc.leaderboard.Daily(ctx, now, DefaultLeaderboardLimit)
	if errors.Is(err, domain.ErrNoData) {
		return "📭 Nobody has studied today yet.", nil
	}
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString("📊 Today's top learners:\n")
	for i, r := range ranked {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, r.Name, formatMinutes(r.Minutes))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (uc *HandleMessageUsecase) handleWeekly(ctx context.Context, now time.Time) (string, error) {
	ranked, err := uc.leaderboard.Weekly(ctx, now, DefaultLeaderboardLimit)
	if errors.Is(err, domain.ErrNoData) {
		return "📭 Nobody has studied this week yet.", nil
	}
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString("📈 This week's top learners:\n")
	for i, r := range ranked {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, r.Name, formatMinutes(r.Minutes))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (uc *HandleMessageUsecase) handleAllTime(ctx context.Context) (string, error) {
	ranked, err := uc.leaderboard.AllTime(ctx, DefaultLeaderboardLimit)
	if errors.Is(err, domain.ErrNoData) {
		return "📭 The leaderboard is empty.", nil
	}
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString("🏆 All-time leaderboard:\n")
	for i, r := range ranked {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, r.Name, formatMinutes(r.Minutes))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (uc *HandleMessageUsecase) handleStreak(ctx context.Context) (string, error) {
	ranked, err := uc.leaderboard.Streak(ctx, DefaultLeaderboardLimit)
	if errors.Is(err, domain.ErrNoData) {
		return "📭 No active streaks yet.", nil
	}
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString("🔥 Streak leaderboard:\n")
	for i, r := range ranked {
		fmt.Fprintf(&sb, "%d. %s - %d day(s)\n", i+1, r.Name, r.Streak)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (uc *HandleMessageUsecase) handleSetDaily(ctx context.Context, userID, args string) (string, error) {
	minutes, err := uc.goals.SetDaily(ctx, userID, args)
	if errors.Is(err, domain.ErrInvalidDuration) {
		return "❌ Couldn't read that time. Try /setdaily 9h", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📆 Daily goal set to %s!", formatMinutes(minutes)), nil
}

func (uc *HandleMessageUsecase) handleDailyProgress(ctx context.Context, userID string, now time.Time) (string, error) {
	progress, err := uc.goals.DailyProgress(ctx, userID, now)
	if errors.Is(err, domain.ErrNoData) {
		return "📭 No study time recorded yet. Start with /rec", nil
	}
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	fmt.Fprintf(&sb, "📊 Daily progress: %s / %s (%.1f%%)\n", formatMinutes(progress.LoggedMinutes), formatMinutes(progress.GoalMinutes), progress.ProgressPercent)
	fmt.Fprintf(&sb, "%s\n", progressBar(progress.ProgressPercent))
	if progress.RemainingMinutes > 0 {
		fmt.Fprintf(&sb, "⏳ %s to go\n", formatMinutes(progress.RemainingMinutes))
	} else {
		sb.WriteString("🎉 Goal reached!\n")
	}
	fmt.Fprintf(&sb, "💰 Debt: %s", formatMinutes(progress.DebtMinutes))
	return sb.String(), nil
}

func (uc *HandleMessageUsecase) handleSetWeekly(ctx context.Context, userID, args string) (string, error) {
	minutes, err := uc.goals.SetWeekly(ctx, userID, args)
	if errors.Is(err, domain.ErrInvalidDuration) {
		return "❌ Couldn't read that time. Try /setweekly 40h", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📅 Weekly goal set to %s!", formatMinutes(minutes)), nil
}

func (uc *HandleMessageUsecase) handleWeeklyProgress(ctx context.Context, userID string, now time.Time) (string, error) {
	progress, err := uc.goals.WeeklyProgress(ctx, userID, now)
	if errors.Is(err, domain.ErrNoData) {
		return "📭 No weekly goal set. Use /setweekly first.", nil
	}
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	fmt.Fprintf(&sb, "📊 Weekly progress: %s / %s (%.1f%%)\n", formatMinutes(progress.LoggedMinutes), formatMinutes(progress.GoalMinutes), progress.ProgressPercent)
	fmt.Fprintf(&sb, "%s", progressBar(progress.ProgressPercent))
	if progress.RemainingMinutes > 0 {
		fmt.Fprintf(&sb, "\n⏳ %s to go", formatMinutes(progress.RemainingMinutes))
	} else {
		sb.WriteString("\n🎉 Goal reached!")
	}
	return sb.String(), nil
}

func (uc *HandleMessageUsecase) handleDebtUpdate(ctx context.Context, userID string, now time.Time) (string, error) {
	debt, err := uc.debt.Update(ctx, userID, now)
	if errors.Is(err, domain.ErrNoData) {
		return "📭 No study time recorded yet. Start with /rec", nil
	}
	if err != nil {
		return "", err
	}
	if debt == 0 {
		return "🔄 Debt info updated. You're debt-free! 🎉", nil
	}
	return fmt.Sprintf("🔄 Debt info updated. Current debt: %s", formatMinutes(debt)), nil
}

func (uc *HandleMessageUsecase) handleDebtPay(ctx context.Context, userID, args string) (string, error) {
	remaining, err := uc.debt.Pay(ctx, userID, args)
	if errors.Is(err, domain.ErrInvalidDuration) {
		return "❌ Couldn't read that time. Try /debt 1h 30m", nil
	}
	if errors.Is(err, domain.ErrNoData) {
		return "📭 No study time recorded yet. Start with /rec", nil
	}
	if err != nil {
		return "", err
	}
	if remaining == 0 {
		return "💰 Debt paid! You're all clear. 🎉", nil
	}
	return fmt.Sprintf("💰 Debt paid! Remaining: %s", formatMinutes(remaining)), nil
}

func (uc *HandleMessageUsecase) handleReset(ctx context.Context, userID string) (string, error) {
	err := uc.reset.Execute(ctx, userID)
	if errors.Is(err, domain.ErrNoData) {
		return "📭 Nothing to reset.", nil
	}
	if err != nil {
		return "", err
	}
	return "❌ All your data has been reset.", nil
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func progressBar(percent float64) string {
	filled := int(percent / 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
