package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"derivatives/catalog"
	"derivatives/config"
)

// session is what every subcommand needs once the config is loaded.
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	catalog *catalog.Catalog
}

func openSession() (*session, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Log.Logger()
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, catalog: catalog.New(cfg, logger)}, nil
}

// money formats a price with the configured symbol and precision.
func (s *session) money(v float64) string {
	ac := accounting.Accounting{Symbol: s.cfg.Output.Symbol, Precision: s.cfg.Output.Precision}
	return ac.FormatMoneyDecimal(decimal.NewFromFloat(v).Round(int32(s.cfg.Output.Precision)))
}

// listCmd prints the registered models.
type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the available pricing models" }
func (*listCmd) Usage() string {
	return `pricer list

  Prints the name of every registered model, one per line.
`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (*listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.logger.Sync()

	for _, name := range s.catalog.Names() {
		fmt.Println(name)
	}
	return subcommands.ExitSuccess
}

// priceCmd prices one model.
type priceCmd struct{}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "price a model from key=value parameters" }
func (*priceCmd) Usage() string {
	return `pricer price <model> key=value...

  Prices <model> with the given parameters. Numbers, true/false and
  comma-separated number lists are recognised; anything else is a string.

  Example:
    pricer price finite_difference spot=100 strike=100 rate=0.05 vol=0.2 maturity=1
`
}

func (*priceCmd) SetFlags(*flag.FlagSet) {}

func (*priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	params, err := parseParams(f.Args()[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing parameters: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.logger.Sync()

	value, err := s.catalog.Price(name, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pricing %s: %v\n", name, err)
		return subcommands.ExitFailure
	}
	s.logger.Debug("priced", zap.String("model", name), zap.Float64("value", value))

	fmt.Println(s.money(value))
	return subcommands.ExitSuccess
}

// estimateCmd prices a Monte Carlo model and reports its standard error.
type estimateCmd struct{}

func (*estimateCmd) Name() string     { return "estimate" }
func (*estimateCmd) Synopsis() string { return "price a Monte Carlo model with its standard error" }
func (*estimateCmd) Usage() string {
	return `pricer estimate <model> key=value...

  Like price, for Monte Carlo models only, and also prints the standard
  error of the estimate and the number of paths.

  Example:
    pricer estimate asian_arithmetic spot=100 strike=100 rate=0.05 vol=0.2 maturity=1 num_obs=12 n_paths=100000
`
}

func (*estimateCmd) SetFlags(*flag.FlagSet) {}

func (*estimateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	params, err := parseParams(f.Args()[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing parameters: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.logger.Sync()

	est, err := s.catalog.Estimate(name, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error estimating %s: %v\n", name, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s ± %s (%d paths)\n", s.money(est.Price), s.money(est.StdErr), est.Paths)
	return subcommands.ExitSuccess
}
