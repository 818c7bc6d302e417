package indicator

import "TradeDesk/internal/model"

// SMA computes the simple moving average series over the given window.
// No value is emitted before a full window is available (no padding, no
// partial windows), so the result has max(0, len(candles)-window+1) points.
func SMA(candles []model.Candle, window int) []Point {
	if window <= 0 || len(candles) < window {
		return nil
	}
	closes := model.Closes(candles)
	points := make([]Point, 0, len(candles)-window+1)

	for i := window - 1; i < len(closes); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += closes[j]
		}
		points = append(points, Point{Time: candles[i].Timestamp, Value: sum / float64(window)})
	}
	return points
}
