package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/harrison/filekit/internal/config"
	"github.com/harrison/filekit/internal/logger"
	"github.com/harrison/filekit/internal/prompt"
	"github.com/spf13/cobra"
)

// session carries what every subcommand needs once flags are parsed.
type session struct {
	cfg    *config.Config
	log    logger.Logger
	prompt *prompt.Prompter
	out    io.Writer
	file   *logger.FileLogger
}

// close flushes the run log, if any.
func (s *session) close() {
	if s.file != nil {
		s.file.Close()
	}
}

// newSession loads configuration, merges the persistent flags and builds
// the loggers and prompter for the named subcommand.
func newSession(cmd *cobra.Command, name string, extension *string) (*session, error) {
	configFlag, _ := cmd.Flags().GetString("config")
	configPath := config.ResolvePath(configFlag)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	var logLevelFlag, logDirFlag *string
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelFlag = &v
	}
	if cmd.Flags().Changed("log-dir") {
		v, _ := cmd.Flags().GetString("log-dir")
		logDirFlag = &v
	}
	cfg.MergeWithFlags(logLevelFlag, logDirFlag, extension)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	s := &session{
		cfg:    cfg,
		out:    out,
		prompt: newPrompter(cmd),
	}

	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create run log: %w", err)
		}
		s.file = fileLog
		s.log = logger.Multi(console, fileLog)
		console.LogDebug(fmt.Sprintf("run log: %s", fileLog.Path()))
	} else {
		s.log = console
	}

	s.log.LogDebug(fmt.Sprintf("config: %s", configPath))
	return s, nil
}

// newPrompter reads answers from the command's input. The real stdin is
// checked for a terminal; anything injected with SetIn is taken as scripted.
func newPrompter(cmd *cobra.Command) *prompt.Prompter {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && f == os.Stdin {
		return prompt.NewStdinPrompter(cmd.OutOrStdout())
	}
	return prompt.NewPrompter(bufio.NewReader(in), cmd.OutOrStdout())
}

// argOrAsk returns args[i] when present, otherwise asks question.
// def is offered as the default answer; an empty def makes the answer required.
func (s *session) argOrAsk(args []string, i int, question, def string) (string, error) {
	if i < len(args) && args[i] != "" {
		return args[i], nil
	}
	if def == "" {
		return s.prompt.Require(question)
	}
	return s.prompt.Ask(question, def)
}
