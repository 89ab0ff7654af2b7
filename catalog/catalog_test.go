package catalog_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"derivatives/catalog"
	"derivatives/config"
	"derivatives/model"
)

func testConfig() *config.Config {
	return &config.Config{
		MonteCarlo:       config.MonteCarloConfig{Paths: 2000, Seed: 355, Workers: 2, BarrierSteps: 50},
		FiniteDifference: config.FiniteDifferenceConfig{TimeSteps: 500, SpaceSteps: 100},
	}
}

// samples holds one valid parameter set per registered model.
var samples = map[string]model.Params{
	"asian_arithmetic":   {"spot": 100, "strike": 100, "rate": 0.05, "vol": 0.2, "maturity": 1.0, "num_obs": 12},
	"commodity_asian":    {"spot": 100, "strike": 100, "rate": 0.05, "vol": 0.2, "maturity": 1.0, "num_obs": 12, "convenience_yield": 0.02},
	"barrier_continuous": {"spot": 100, "strike": 100, "barrier": 90, "rate": 0.05, "vol": 0.2, "maturity": 1.0},
	"barrier_discrete":   {"spot": 100, "strike": 100, "barrier": 90, "rate": 0.05, "vol": 0.2, "maturity": 1.0, "monitoring_times": 12},
	"finite_difference":  {"spot": 100, "strike": 100, "rate": 0.05, "vol": 0.2, "maturity": 1.0},

	"zero_coupon":               {"face_value": 100, "discount_rate": 0.05, "maturity": 2},
	"corporate_bond":            {"face_value": 100, "coupon_rate": 0.05, "yield_rate": 0.04, "maturity": 5},
	"index_linked_bond_forward": {"notional": 100, "real_rate": 0.01, "maturity": 5, "index_ratio": 1.1},

	"synthetic_underlying_forward":    {"spot_price": 100, "risk_free_rate": 0.05, "dividend_yield": 0.02, "time_to_maturity": 1},
	"dividend_futures":                {"dividends": []float64{0.5, 1, 1, 1}, "risk_free_rate": 0.05, "time_to_maturity": 1},
	"dividend_neutral_futures":        {"spot_price": 100, "risk_free_rate": 0.05, "time_to_maturity": 1},
	"convexity_adjusted_rate_futures": {"futures_price": 95, "rate_vol": 0.01, "t1": 2, "t2": 2.25},

	"variable_strike_warrant": {"spot": 100, "strike_ratio": 1.05, "rate": 0.05, "vol": 0.2, "maturity": 1},
	"simple_dividend_option":  {"expected_dividend": 5, "strike": 5, "rate": 0.05, "vol": 0.3, "maturity": 1},
	"cliquet":                 {"returns": []float64{0.02, -0.01, 0.05}, "cap": 0.03, "floor": 0},

	"total_return_swap": {"spot_price": 100, "expected_terminal_price": 106, "funding_rate": 0.04, "dividend_yield": 0.01, "time_to_maturity": 1},
	"fully_funded_trs":  {"spot_price": 100, "expected_terminal_price": 106, "funding_rate": 0.04, "dividend_yield": 0.01, "time_to_maturity": 1},

	"credit_basket_linear": {"notionals": []float64{100}, "default_probabilities": []float64{0.1}, "recoveries": []float64{0.4}},
	"static_hazard_rate":   {"notional": 100, "hazard_rate": 0.02, "maturity": 5},
	"hazard_rate":          {"notional": 100, "times": []float64{1, 5}, "hazard_rates": []float64{0.01, 0.03}, "maturity": 3},

	"underlying_spot":         {"spot_price": 100},
	"price_curve":             {"times": []float64{0, 1}, "prices": []float64{100, 110}, "time": 0.5},
	"constant_debt_to_equity": {"equity_price": 100, "debt_to_equity_ratio": 0.5},
	"simple_deposit":          {"principal": 100, "rate": 0.05, "maturity": 1},
}

func TestCatalog_EveryModelPrices(t *testing.T) {
	t.Parallel()

	c := catalog.New(testConfig(), nil)
	for _, name := range c.Names() {
		if name == "fund_instrument" {
			continue
		}
		p, ok := samples[name]
		if !ok {
			t.Fatalf("no sample parameters for %s", name)
		}
		got, err := c.Price(name, p)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("%s: non-finite price %v", name, got)
		}
	}
}

func TestCatalog_Names(t *testing.T) {
	t.Parallel()

	names := catalog.New(testConfig(), nil).Names()
	if len(names) != len(samples)+1 {
		t.Fatalf("got %d models, want %d", len(names), len(samples)+1)
	}
	if diff := cmp.Diff("asian_arithmetic", names[0]); diff != "" {
		t.Fatalf("names not sorted (-want +got):\n%s", diff)
	}
}

func TestCatalog_Errors(t *testing.T) {
	t.Parallel()

	c := catalog.New(testConfig(), nil)
	if _, err := c.Price("fund_instrument", nil); !errors.Is(err, model.ErrUnimplemented) {
		t.Fatalf("fund_instrument: want ErrUnimplemented, got %v", err)
	}
	if _, err := c.Get("black_karasinski"); !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("unknown model: want ErrInvalidArgument, got %v", err)
	}
	if _, err := c.Estimate("zero_coupon", samples["zero_coupon"]); !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("estimate on closed form: want ErrInvalidArgument, got %v", err)
	}
}

func TestCatalog_EstimateMatchesPrice(t *testing.T) {
	t.Parallel()

	c := catalog.New(testConfig(), nil)
	for _, name := range []string{"asian_arithmetic", "commodity_asian", "barrier_continuous", "barrier_discrete"} {
		est, err := c.Estimate(name, samples[name])
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		price, err := c.Price(name, samples[name])
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if est.Price != price || est.StdErr <= 0 || est.Paths != 2000 {
			t.Fatalf("%s: estimate %+v disagrees with price %v", name, est, price)
		}
	}
}

func TestCatalog_DatedDeposit(t *testing.T) {
	t.Parallel()

	c := catalog.New(testConfig(), nil)
	got, err := c.Price("simple_deposit", model.Params{
		"principal": 100, "rate": 0.05, "start_date": "2024-01-01", "end_date": "2024-07-01", "convention": "30/360",
	})
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	// six 30-day months
	if want := 100 * (1 + 0.05*0.5); math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %.12f, want %.12f", got, want)
	}
}
