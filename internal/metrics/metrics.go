// Package metrics registers the prometheus instruments exposed on the
// metrics listener.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DealsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stormarket",
		Name:      "deals_created_total",
		Help:      "Storage deals created.",
	})

	SettlementFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stormarket",
		Name:      "settlement_failures_total",
		Help:      "Settlement calls that failed; the deal is activated anyway.",
	})

	WalletDebits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stormarket",
		Name:      "wallet_debits_total",
		Help:      "Wallet debit operations applied.",
	})

	RetrievalsServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stormarket",
		Name:      "retrievals_total",
		Help:      "Paid file retrievals served.",
	})

	ShareLinksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stormarket",
		Name:      "share_links_created_total",
		Help:      "Share links created.",
	})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
