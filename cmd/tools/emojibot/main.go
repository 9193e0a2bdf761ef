// Command emojibot 在终端里与表情机器人对话。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zhouzirui/emoji-bot/backend/internal/config"
	"github.com/zhouzirui/emoji-bot/backend/internal/logging"
	"github.com/zhouzirui/emoji-bot/backend/internal/model/bot"
	"github.com/zhouzirui/emoji-bot/backend/internal/service/ai"
	"github.com/zhouzirui/emoji-bot/backend/internal/service/chat"
	"github.com/zhouzirui/emoji-bot/backend/internal/tui"
)

var (
	logLevel string
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "emojibot",
	Short: "Chat with the emoji bot from the terminal",
	Long: `emojibot sends messages through the same pipeline as the HTTP server:
emoji are turned into :descriptors:, one generation call is made, and
sentiment emoji are appended to the reply.

Run without arguments to start the interactive chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		level := logLevel
		if level == "" {
			level = "warn"
		}
		var err error
		logger, err = logging.New(level)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runChat,
}

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message and print the reply",
	Args:  cobra.ArbitraryArgs,
	RunE:  runAsk,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive terminal chat",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to warn")
	rootCmd.AddCommand(askCmd, chatCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newChatService 与服务端启动流程一致：后端初始化失败时服务处于不可用状态，而不是直接退出。
func newChatService(ctx context.Context) (*chat.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	aiSvc, err := ai.NewFromConfig(ctx, cfg.AI, logger)
	if err != nil {
		logger.Warn("text generation unavailable", zap.Error(err))
		aiSvc = nil
	}
	return chat.NewService(aiSvc, logger), nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := newChatService(cmd.Context())
	if err != nil {
		return err
	}

	reply := svc.Respond(cmd.Context(), strings.Join(args, " "))
	fmt.Fprintf(cmd.OutOrStdout(), "Bot: %s\n", reply.Text)
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	svc, err := newChatService(cmd.Context())
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), svc, bot.Default())
}
