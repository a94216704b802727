package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"threecommas/internal/infrastructure/config"
	"threecommas/internal/infrastructure/logger"
	"threecommas/internal/infrastructure/svc"
	"threecommas/internal/interfaces/console"
)

// rootOptions 所有子命令共享的全局参数与已加载的配置
type rootOptions struct {
	configPath   string
	logLevel     string
	v2           bool
	promptSecret bool
	noColor      bool

	cfg *config.Config

	// 测试时注入
	svcOpts []svc.Option
}

func main() {
	// 配置文件加载前的默认日志，load 之后按配置重设
	logger.Setup("info")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&rootOptions{}).ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("threecommas exited")
		os.Exit(1)
	}
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "threecommas",
		Short: "Signed client for the 3Commas REST API",
		Long: `Call 3Commas REST endpoints with HMAC-signed requests, follow deal and
smart trade updates over the websocket stream and inspect the local call journal.

Examples:
  threecommas endpoints
  threecommas call accounts
  threecommas call get_deal deal_id=42
  threecommas stream deals`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "configs/config.toml", "path to config (.toml or .yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error), overrides config")
	root.PersistentFlags().BoolVar(&opts.v2, "v2", false, "use the /v2/smart_trades route for smart_trades_v2")
	root.PersistentFlags().BoolVar(&opts.promptSecret, "prompt-secret", false, "read the api secret from the terminal when not configured")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		newCallCmd(opts),
		newRawCmd(opts),
		newEndpointsCmd(opts),
		newSignCmd(opts),
		newStreamCmd(opts),
		newJournalCmd(opts),
	)
	return root
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", o.configPath, err)
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.v2 {
		cfg.API.V2 = true
	}
	logger.SetupWriter(cmd.ErrOrStderr(), cfg.Log.Level)

	if o.promptSecret && strings.TrimSpace(cfg.API.APISecret) == "" {
		secret, err := readSecret(cmd)
		if err != nil {
			return err
		}
		cfg.API.APISecret = secret
	}

	o.cfg = cfg
	return nil
}

func readSecret(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--prompt-secret needs an interactive terminal")
	}
	fmt.Fprint(cmd.ErrOrStderr(), "API secret: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// serviceContext 构建 ServiceContext，输出写到命令的 stdout
func (o *rootOptions) serviceContext(cmd *cobra.Command) (*svc.ServiceContext, error) {
	colors := !o.noColor && isTerminal(cmd.OutOrStdout())
	opts := append([]svc.Option{svc.WithSink(console.NewWriterSink(cmd.OutOrStdout(), colors))}, o.svcOpts...)
	return svc.New(cmd.Context(), o.cfg, opts...)
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
