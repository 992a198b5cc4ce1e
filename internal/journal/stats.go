package journal

import (
	"sort"
	"time"

	"trading-journal-go/internal/models"

	"github.com/shopspring/decimal"
)

// Stats is the four-part snapshot computed over one filtered trade set.
type Stats struct {
	Overview    Overview     `json:"overview"`
	SymbolStats []SymbolStat `json:"symbolStats"`
	MethodStats []MethodStat `json:"methodStats"`
	ProfitCurve []CurvePoint `json:"profitCurve"`
}

// Overview is the scalar summary. Percentages are in [0,100].
type Overview struct {
	TotalTrades         int     `json:"totalTrades"`
	WinTrades           int     `json:"winTrades"`
	LossTrades          int     `json:"lossTrades"`
	BreakevenTrades     int     `json:"breakevenTrades"`
	WinRate             float64 `json:"winRate"`
	TotalProfit         float64 `json:"totalProfit"`
	AvgProfit           float64 `json:"avgProfit"`
	AvgWin              float64 `json:"avgWin"`
	AvgLoss             float64 `json:"avgLoss"`
	ProfitFactor        float64 `json:"profitFactor"`
	TotalExpectedProfit float64 `json:"totalExpectedProfit"`
	AvgExpectedProfit   float64 `json:"avgExpectedProfit"`
}

// Rollup is one grouped row. WinRate is a percentage formatted with two decimals.
type Rollup struct {
	Count          int     `json:"count"`
	Wins           int     `json:"wins"`
	Profit         float64 `json:"profit"`
	ExpectedProfit float64 `json:"expectedProfit"`
	WinRate        string  `json:"winRate"`
}

type SymbolStat struct {
	Symbol string `json:"symbol"`
	Rollup
}

type MethodStat struct {
	MethodID   *string `json:"methodId"`
	MethodName string  `json:"methodName"`
	Rollup
}

// CurvePoint is one day of the cumulative profit curve.
type CurvePoint struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	Profit     float64 `json:"profit"`
	Cumulative float64 `json:"cumulative"`
}

type tally struct {
	count    int
	wins     int
	profit   decimal.Decimal
	expected decimal.Decimal
}

func (t *tally) add(tr *models.Trade) {
	t.count++
	if tr.Result == models.ResultWin {
		t.wins++
	}
	t.profit = t.profit.Add(dec(tr.Profit))
	t.expected = t.expected.Add(dec(tr.ExpectedProfit))
}

func (t *tally) rollup() Rollup {
	return Rollup{
		Count:          t.count,
		Wins:           t.wins,
		Profit:         toFloat(t.profit),
		ExpectedProfit: toFloat(t.expected),
		WinRate:        percent(t.wins, t.count).StringFixed(2),
	}
}

type methodKey struct {
	id    string
	hasID bool
	name  string
}

// Aggregate computes the stats snapshot over trades. Curve dates are taken
// in loc; a nil loc means UTC. Rollup rows keep first-seen order.
func Aggregate(trades []models.Trade, loc *time.Location) Stats {
	if loc == nil {
		loc = time.UTC
	}

	var (
		wins, losses, breakevens int
		totalProfit, totalExp    decimal.Decimal
		winProfit, lossAbs       decimal.Decimal

		symbolOrder []string
		symbols     = map[string]*tally{}
		methodOrder []methodKey
		methods     = map[methodKey]*tally{}
		daily       = map[string]decimal.Decimal{}
	)

	for i := range trades {
		tr := &trades[i]
		profit := dec(tr.Profit)

		totalProfit = totalProfit.Add(profit)
		totalExp = totalExp.Add(dec(tr.ExpectedProfit))

		switch tr.Result {
		case models.ResultWin:
			wins++
			winProfit = winProfit.Add(profit)
		case models.ResultLoss:
			losses++
			lossAbs = lossAbs.Add(profit.Abs())
		case models.ResultBreakeven:
			breakevens++
		}

		st, ok := symbols[tr.Symbol]
		if !ok {
			st = &tally{}
			symbols[tr.Symbol] = st
			symbolOrder = append(symbolOrder, tr.Symbol)
		}
		st.add(tr)

		mk := methodKey{id: tr.MethodKey(), hasID: tr.MethodID != nil, name: tr.MethodName}
		mt, ok := methods[mk]
		if !ok {
			mt = &tally{}
			methods[mk] = mt
			methodOrder = append(methodOrder, mk)
		}
		mt.add(tr)

		if tr.EntryTime != nil {
			day := tr.EntryTime.In(loc).Format(time.DateOnly)
			daily[day] = daily[day].Add(profit)
		}
	}

	total := len(trades)
	totalDec := decimal.NewFromInt(int64(total))

	stats := Stats{
		Overview: Overview{
			TotalTrades:         total,
			WinTrades:           wins,
			LossTrades:          losses,
			BreakevenTrades:     breakevens,
			WinRate:             toFloat(percent(wins, total)),
			TotalProfit:         toFloat(totalProfit),
			AvgProfit:           toFloat(ratio(totalProfit, totalDec)),
			AvgWin:              toFloat(ratio(winProfit, decimal.NewFromInt(int64(wins)))),
			AvgLoss:             toFloat(ratio(lossAbs, decimal.NewFromInt(int64(losses)))),
			ProfitFactor:        toFloat(ratio(winProfit, lossAbs)),
			TotalExpectedProfit: toFloat(totalExp),
			AvgExpectedProfit:   toFloat(ratio(totalExp, totalDec)),
		},
		SymbolStats: make([]SymbolStat, 0, len(symbolOrder)),
		MethodStats: make([]MethodStat, 0, len(methodOrder)),
		ProfitCurve: make([]CurvePoint, 0, len(daily)),
	}

	for _, sym := range symbolOrder {
		stats.SymbolStats = append(stats.SymbolStats, SymbolStat{Symbol: sym, Rollup: symbols[sym].rollup()})
	}
	for _, mk := range methodOrder {
		row := MethodStat{MethodName: mk.name, Rollup: methods[mk].rollup()}
		if mk.hasID {
			id := mk.id
			row.MethodID = &id
		}
		stats.MethodStats = append(stats.MethodStats, row)
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)

	cumulative := decimal.Zero
	for _, day := range days {
		cumulative = cumulative.Add(daily[day])
		stats.ProfitCurve = append(stats.ProfitCurve, CurvePoint{
			Date:       day,
			Profit:     toFloat(daily[day]),
			Cumulative: toFloat(cumulative),
		})
	}

	return stats
}
