package engine

import (
	"github.com/mohamedkhairy/token-monitor/internal/models"
	"github.com/mohamedkhairy/token-monitor/pkg/logger"
)

// HandleTrade consumes one trade event: it updates price, market cap and
// the session ATH, feeds the rolling volume window and the RSI calculator,
// and appends a record to the transaction log.
func (e *Engine) HandleTrade(ev *models.TradeEvent) error {
	if ev == nil {
		return models.ErrInvalidPrice
	}
	if err := ev.Validate(); err != nil {
		logger.Warn("Invalid trade, skipping",
			logger.ErrorField(err),
			logger.Float64("price", ev.Price),
			logger.String("signature", ev.Signature),
		)
		return err
	}

	marketCap := ev.Price * e.tokenSupply

	e.volume.Record(ev.Timestamp, ev.TransactionValue)

	if marketCap > e.sessionATHMarketCap {
		e.sessionATHMarketCap = marketCap
		logger.SessionATHMarketCap.Set(marketCap)
	}

	e.lastPrice = ev.Price
	e.lastMarketCap = marketCap
	e.hasTrade = true
	logger.LastPrice.Set(ev.Price)

	e.txLog = append(e.txLog, *ev)

	e.rsi.AddPrice(ev.Price, ev.Timestamp)

	logger.Debug("Trade processed",
		logger.Float64("price", ev.Price),
		logger.Float64("market_cap", marketCap),
		logger.String("side", ev.Side),
	)
	return nil
}
