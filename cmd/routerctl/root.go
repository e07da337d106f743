package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"intentrouter/extractors"
	"intentrouter/internal/config"
	"intentrouter/internal/logging"
	"intentrouter/router"
)

// options общие флаги всех команд
type options struct {
	rulesPath     string
	maxReferences int
	logLevel      string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "routerctl",
		Short: "Инструменты маршрутизатора намерений",
		Long: `routerctl классифицирует сообщения, извлекает сущности и проверяет таблицу правил
без запуска HTTP сервера. Без флага --rules используются встроенные правила.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.rulesPath, "rules", os.Getenv("RULES_PATH"), "rules file (yaml, json or toml), builtin rules when empty")
	cmd.PersistentFlags().IntVar(&opts.maxReferences, "max-references", extractors.DefaultMaxReferences, "reference limit when the rules file does not set one")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "WARN", "log level: DEBUG, INFO, WARN, ERROR")

	cmd.AddCommand(
		newClassifyCmd(opts),
		newExtractCmd(opts),
		newRouteCmd(opts),
		newCheckRulesCmd(opts),
		newDumpRulesCmd(opts),
		newEvalCmd(opts),
	)
	return cmd
}

// logger пишет в stderr команды, чтобы не смешиваться с результатом
func (o *options) logger(w io.Writer) (*slog.Logger, error) {
	logger, _, err := logging.New(&config.Config{LogLevel: o.logLevel, LogFormat: "text"}, w)
	return logger, err
}

func (o *options) loadRouter(cmd *cobra.Command) (*router.Router, error) {
	logger, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return router.Load(o.rulesPath, o.maxReferences, logger)
}
