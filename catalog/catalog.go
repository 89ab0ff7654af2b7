// Package catalog registers every pricing model under its public name.
package catalog

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"derivatives/bond"
	"derivatives/config"
	"derivatives/credit"
	"derivatives/fdm"
	"derivatives/futures"
	"derivatives/misc"
	"derivatives/model"
	"derivatives/montecarlo"
	"derivatives/option"
	"derivatives/swap"
)

// Catalog maps model names to configured models.
type Catalog struct {
	models map[string]model.Model
}

// New builds the catalog with engine defaults taken from cfg. A nil logger
// disables engine logging.
func New(cfg *config.Config, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	sim := montecarlo.Simulation{
		Paths:   cfg.MonteCarlo.Paths,
		Seed:    cfg.MonteCarlo.Seed,
		Workers: cfg.MonteCarlo.Workers,
		Logger:  logger,
	}
	asian := montecarlo.AsianArithmetic{IsCall: true, Simulation: sim}
	barrier := montecarlo.BarrierOption{IsCall: true, Type: montecarlo.DownAndOut, Simulation: sim}

	return &Catalog{models: map[string]model.Model{
		// Monte Carlo and finite difference
		"asian_arithmetic":   asian,
		"commodity_asian":    montecarlo.CommodityAsian{AsianArithmetic: asian},
		"barrier_continuous": montecarlo.ContinuousBarrier{BarrierOption: barrier, Steps: cfg.MonteCarlo.BarrierSteps},
		"barrier_discrete":   montecarlo.DiscreteBarrier{BarrierOption: barrier},
		"finite_difference": fdm.European{
			IsCall: true,
			NTime:  cfg.FiniteDifference.TimeSteps,
			NSpace: cfg.FiniteDifference.SpaceSteps,
			Logger: logger,
		},

		// Bonds
		"zero_coupon":               bond.ZeroCoupon{},
		"corporate_bond":            bond.CorporateBond{Frequency: 1},
		"index_linked_bond_forward": bond.IndexLinkedBondForward{},

		// Futures and forwards
		"synthetic_underlying_forward":    futures.SyntheticUnderlyingForward{Notional: 1},
		"dividend_futures":                futures.DividendFutures{Notional: 1},
		"dividend_neutral_futures":        futures.DividendNeutralFutures{Notional: 1},
		"convexity_adjusted_rate_futures": futures.ConvexityAdjustedRateFutures{},

		// Options
		"variable_strike_warrant": option.VariableStrikeWarrant{IsCall: true},
		"simple_dividend_option":  option.SimpleDividendOption{IsCall: true},
		"cliquet":                 option.Cliquet{Notional: 1},

		// Swaps
		"total_return_swap": swap.TotalReturnSwap{Notional: 1},
		"fully_funded_trs":  swap.FullyFundedTRS{TotalReturnSwap: swap.TotalReturnSwap{Notional: 1}},

		// Credit
		"credit_basket_linear": credit.BasketLinear{},
		"static_hazard_rate":   credit.StaticHazardRate{},
		"hazard_rate":          credit.HazardRate{},

		// Other
		"underlying_spot":         misc.UnderlyingSpot{Notional: 1},
		"price_curve":             misc.PriceCurve{},
		"constant_debt_to_equity": misc.ConstantDebtToEquity{},
		"simple_deposit":          misc.SimpleDeposit{},
		"fund_instrument":         misc.FundInstrument{},
	}}
}

// Names returns the registered model names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.models))
	for name := range c.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the model registered under name.
func (c *Catalog) Get(name string) (model.Model, error) {
	m, ok := c.models[name]
	if !ok {
		return nil, model.Invalidf("catalog", name, "unknown model")
	}
	return m, nil
}

// Price looks up name and prices it with p.
func (c *Catalog) Price(name string, p model.Params) (float64, error) {
	m, err := c.Get(name)
	if err != nil {
		return 0, err
	}
	return m.Price(p)
}

// Estimate prices a Monte Carlo model and reports its standard error.
func (c *Catalog) Estimate(name string, p model.Params) (montecarlo.Estimate, error) {
	m, err := c.Get(name)
	if err != nil {
		return montecarlo.Estimate{}, err
	}
	e, ok := m.(montecarlo.Estimator)
	if !ok {
		return montecarlo.Estimate{}, fmt.Errorf("catalog: %s is not a Monte Carlo model: %w", name, model.ErrInvalidArgument)
	}
	return e.PriceEstimate(p)
}
