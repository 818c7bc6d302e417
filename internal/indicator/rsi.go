package indicator

import "TradeDesk/internal/model"

// RSI computes the Wilder-smoothed relative strength index series.
//
// The first `period` deltas only seed the raw gain/loss sums; values are
// emitted for every candle after that, each applying the Wilder update
// before computing RS. A zero smoothed loss saturates the output at 100.
func RSI(candles []model.Candle, period int) []Point {
	if period <= 0 || len(candles) < period+2 {
		return nil
	}
	closes := model.Closes(candles)
	points := make([]Point, 0, len(closes)-period-1)

	var gains, losses float64
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if i <= period {
			if change > 0 {
				gains += change
			} else {
				losses -= change
			}
			continue
		}
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		gains = (gains*float64(period-1) + gain) / float64(period)
		losses = (losses*float64(period-1) + loss) / float64(period)

		var rsi float64
		if losses == 0 {
			rsi = 100.0
		} else {
			rs := gains / losses
			rsi = 100.0 - 100.0/(1.0+rs)
		}
		points = append(points, Point{Time: candles[i].Timestamp, Value: rsi})
	}
	return points
}
