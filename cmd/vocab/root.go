package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/app"
	"github.com/aliskhannn/dgt-vocab-bot/internal/config"
	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/dgt-vocab-bot/internal/logger"
	"github.com/aliskhannn/dgt-vocab-bot/internal/service"
	"github.com/aliskhannn/dgt-vocab-bot/internal/storage"
)

type rootOptions struct {
	cardsPath string
	driver    string
	userID    int64
	topic     string
	category  string
	showAll   bool
	seed      int64
}

// env is what every subcommand works on. close releases the store.
type env struct {
	session *service.Session
	logger  *zap.Logger
	close   func() error
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "vocab",
		Short:        "Study DGT vocabulary flashcards from the terminal",
		SilenceUsage: true,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.cardsPath, "cards", "", "vocabulary catalog (.json or .xlsx), overrides cards_path")
	f.StringVar(&opts.driver, "store", "", "progress store driver (memory, file, sqlite, postgres), overrides storage.driver")
	f.Int64Var(&opts.userID, "user", 0, "read and write the progress of this Telegram user id")
	f.StringVar(&opts.topic, "topic", entities.All, "topic filter (topic01..topic13 or all)")
	f.StringVar(&opts.category, "category", entities.All, "category filter")
	f.BoolVar(&opts.showAll, "show-all", false, "include known cards")
	f.Int64Var(&opts.seed, "seed", 0, "random seed, 0 uses the clock")

	cmd.AddCommand(
		newCardsCmd(opts),
		newTopicsCmd(opts),
		newStatsCmd(opts),
		newMarkCmd(opts, true),
		newMarkCmd(opts, false),
		newResetCmd(opts),
		newLanguageCmd(opts),
		newBackupCmd(opts),
		newRestoreCmd(opts),
		newQuizCmd(opts),
	)

	return cmd
}

// open loads configuration, the catalog and the store and opens a session
// positioned on the filter flags.
func (o *rootOptions) open(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.cardsPath != "" {
		cfg.CardsPath = o.cardsPath
	}
	if o.driver != "" {
		cfg.Storage.Driver = o.driver
	}

	lg, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}

	cards, err := app.LoadCatalog(cfg, lg)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := app.OpenStore(ctx, cfg, lg)
	if err != nil {
		return nil, err
	}
	if o.userID != 0 {
		store = storage.Prefixed(store, service.UserKeyPrefix(o.userID))
	}

	sessOpts := app.SessionOptions(cfg)
	sessOpts.Seed = o.seed
	sessOpts.Selection = entities.Selection{Topic: o.topic, Category: o.category, ShowAllCards: o.showAll}

	s, err := service.OpenSession(ctx, cards, store, sessOpts, lg)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	return &env{
		session: s,
		logger:  lg,
		close: func() error {
			_ = lg.Sync()
			return closeStore()
		},
	}, nil
}

// run opens the environment, calls fn and closes it.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := o.open(ctx)
	if err != nil {
		return err
	}

	err = fn(ctx, e)
	if cerr := e.close(); cerr != nil && err == nil {
		err = fmt.Errorf("close store: %w", cerr)
	}
	return err
}
