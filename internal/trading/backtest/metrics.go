package backtest

import (
	"math"
)

// CalculatePerformanceMetrics computes detailed performance metrics from backtest results
func CalculatePerformanceMetrics(results *Results) {
	if results == nil || results.TotalTrades == 0 {
		return
	}

	results.WinRate = float64(results.WinningTrades) / float64(results.TotalTrades)

	calculateGainLoss(results)
	calculateSharpeRatio(results)
	calculateDrawdownMetrics(results)
	calculateSourceAccuracy(results)
	calculateMonthlyStats(results)
}

// calculateGainLoss computes average gain, average loss and the profit factor
func calculateGainLoss(results *Results) {
	var gains, losses []float64
	for _, trade := range results.Trades {
		if trade.Return > 0 {
			gains = append(gains, trade.Return)
		} else if trade.Return < 0 {
			losses = append(losses, -trade.Return)
		}
	}

	results.AverageGain = mean(gains)
	results.AverageLoss = mean(losses)

	totalLoss := sum(losses)
	if totalLoss > 0 {
		results.ProfitFactor = sum(gains) / totalLoss
	}
}

// calculateSharpeRatio computes the annualized Sharpe ratio of trade returns
func calculateSharpeRatio(results *Results) {
	returns := make([]float64, len(results.Trades))
	for i, trade := range results.Trades {
		returns[i] = trade.Return
	}

	meanReturn := mean(returns)
	sd := stdDev(returns, meanReturn)

	// Assumes a 0% risk-free rate
	if sd > 0 {
		results.SharpeRatio = (meanReturn / sd) * math.Sqrt(results.periodsPerYear)
	}
}

// calculateDrawdownMetrics computes maximum drawdown of the equity curve
func calculateDrawdownMetrics(results *Results) {
	if len(results.EquityCurve) == 0 {
		return
	}

	maxDrawdown := 0.0
	peak := results.EquityCurve[0]

	for _, equity := range results.EquityCurve {
		if equity > peak {
			peak = equity
		}
		if peak <= 0 {
			continue
		}
		drawdown := (peak - equity) / peak
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	results.MaxDrawdown = maxDrawdown * 100 // Convert to percentage
}

// calculateSourceAccuracy computes the hit rate of each probability source
func calculateSourceAccuracy(results *Results) {
	type tally struct{ correct, total int }
	stats := make(map[string]tally)

	for _, trade := range results.Trades {
		s := stats[trade.Source]
		s.total++
		if trade.WasCorrect {
			s.correct++
		}
		stats[trade.Source] = s
	}

	for source, s := range stats {
		results.SourceAccuracy[source] = float64(s.correct) / float64(s.total)
	}
}

// calculateMonthlyStats compounds trade returns by calendar month
func calculateMonthlyStats(results *Results) {
	growth := make(map[string]float64)

	for _, trade := range results.Trades {
		month := trade.Timestamp.Format("2006-01")
		g, ok := growth[month]
		if !ok {
			g = 1
		}
		growth[month] = g * (1 + trade.Return)
	}

	for month, g := range growth {
		results.MonthlyReturns[month] = (g - 1) * 100
	}
}

// Helper functions
func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func stdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var sumSquaredDiff float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	return math.Sqrt(sumSquaredDiff / float64(len(values)-1))
}
