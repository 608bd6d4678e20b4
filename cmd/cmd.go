package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/floriansw/discord-command-utils/discord"
	"github.com/floriansw/discord-command-utils/internal"
	"github.com/floriansw/discord-command-utils/internal/commandparser"
	"github.com/floriansw/discord-command-utils/internal/commands"
	"github.com/floriansw/discord-command-utils/internal/runner"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	level := slog.LevelInfo
	if _, ok := os.LookupEnv("DEBUG"); ok {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	configPath := "./config.json"
	if p, ok := os.LookupEnv("CONFIG_PATH"); ok {
		configPath = p
	}
	c, err := internal.NewConfig(configPath, logger)
	if err != nil {
		logger.Error("config", "error", err)
		return
	}

	if r := c.LogRotation(); r != nil {
		file := &lumberjack.Logger{
			Filename:   r.File,
			MaxSize:    r.MaxSizeMB,
			MaxBackups: r.MaxBackups,
			MaxAge:     r.MaxAgeDays,
			Compress:   r.Compress,
		}
		defer file.Close()
		logger = slog.New(slog.NewTextHandler(io.MultiWriter(os.Stdout, file), &slog.HandlerOptions{Level: level}))
	}

	if c.Token() == "" {
		logger.Error("config", "error", "discord token is not configured")
		return
	}

	newParser := func(opts ...commandparser.Option) *commandparser.Parser {
		if c.GrammarPath == "" {
			return commandparser.New(opts...)
		}
		f, err := os.Open(c.GrammarPath)
		if err != nil {
			logger.Error("grammar", "path", c.GrammarPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		p, err := commandparser.NewWithGrammar(f, opts...)
		if err != nil {
			logger.Error("grammar", "path", c.GrammarPath, "error", err)
			os.Exit(1)
		}
		return p
	}

	warn := commands.NewWarn(logger, newParser(), c.RunnerTimeout())
	help := commands.NewHelp(logger, newParser(commandparser.AllowOptionalPositionals()), c.RunnerTimeout(), 5)
	help.Add("warn", warn.Usage())
	help.Add("help", help.Usage())
	handlers := map[string]internal.Command{
		"warn": warn,
		"help": help,
	}

	s, err := discordgo.New("Bot " + c.Token())
	if err != nil {
		logger.Error("discord", "error", err)
		return
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	h := discord.New(logger, c, s, handlers)
	s.AddHandlerOnce(func(s *discordgo.Session, e *discordgo.Ready) {
		if err := h.Listen(); err != nil {
			logger.Error("discord-listen", "error", err)
			panic(err)
		}
		logger.Info("ready")
	})
	err = s.Open()
	if err != nil {
		logger.Error("open-session", "error", err)
		return
	}
	defer s.Close()
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pools := []*runner.Pool{warn.Runners, help.Runners}
	runner.NewSweeper(logger, pools, c.SweepInterval()).Run(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("graceful-shutdown")
	for _, p := range pools {
		p.Close(ctx)
	}
}
