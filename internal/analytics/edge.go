/**
 * @description
 * Betting math for value-bet evaluation: implied probability, expected value,
 * and Kelly staking. Pure functions over decimal odds and probability
 * estimates; the service layer decides where estimates come from.
 */

package analytics

// ImpliedProbability returns the probability a bookmaker's decimal price
// encodes: 1/odds. Non-positive odds yield 0.
func ImpliedProbability(decimalOdds float64) float64 {
	if decimalOdds <= 0 {
		return 0
	}
	return 1 / decimalOdds
}

// ExpectedValue returns the expected profit per unit staked:
// estimatedProb * decimalOdds - 1. Positive EV marks a theoretically
// favorable bet against the market's own overround.
func ExpectedValue(estimatedProb, decimalOdds float64) float64 {
	return estimatedProb*decimalOdds - 1
}

// KellyFraction returns the bankroll fraction maximizing long-run geometric
// growth: (odds*p - 1) / (odds - 1), clamped to [0, 1]. Degenerate odds
// (<= 1) carry no valid bet and return 0.
func KellyFraction(estimatedProb, decimalOdds float64) float64 {
	if decimalOdds <= 1 {
		return 0
	}
	return Clamp01((decimalOdds*estimatedProb - 1) / (decimalOdds - 1))
}

// Clamp01 bounds v to the closed unit interval
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
