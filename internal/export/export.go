package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/mohamedkhairy/token-monitor/internal/models"
)

// Export renders the engine's collections for the download collaborator:
// a tabular CSV form and a hierarchical JSON form of both the transaction
// log and the chart bar list.

var transactionHeader = []string{
	"timestamp", "price", "transaction_value", "pair_address",
	"signature", "side", "maker_address", "liquidity_native", "liquidity_token",
}

// TransactionsCSV writes the full transaction log as CSV rows.
func TransactionsCSV(w io.Writer, log []models.TradeEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(transactionHeader); err != nil {
		return err
	}
	for i := range log {
		t := &log[i]
		row := []string{
			t.Timestamp.UTC().Format(time.RFC3339Nano),
			formatFloat(t.Price),
			formatFloat(t.TransactionValue),
			t.PairAddress,
			t.Signature,
			t.Side,
			t.MakerAddress,
			formatFloat(t.LiquidityNative),
			formatFloat(t.LiquidityToken),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var barHeader = []string{"time", "open", "high", "low", "close", "volume"}

// ChartBarsCSV writes the stored bar list as CSV rows.
func ChartBarsCSV(w io.Writer, bars []models.ChartBar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(barHeader); err != nil {
		return err
	}
	for i := range bars {
		b := &bars[i]
		row := []string{
			strconv.FormatInt(b.Time, 10),
			formatFloat(b.Open),
			formatFloat(b.High),
			formatFloat(b.Low),
			formatFloat(b.Close),
			formatFloat(b.Volume),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// TransactionsJSON writes the transaction log as an indented JSON array.
func TransactionsJSON(w io.Writer, log []models.TradeEvent) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if log == nil {
		log = []models.TradeEvent{}
	}
	return enc.Encode(log)
}

// ChartBarsJSON writes the bar list as an indented JSON array.
func ChartBarsJSON(w io.Writer, bars []models.ChartBar) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if bars == nil {
		bars = []models.ChartBar{}
	}
	return enc.Encode(bars)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
