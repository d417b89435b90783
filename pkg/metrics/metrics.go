package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Wallet debits, labelled by outcome (completed / insufficient / failed)
	PaymentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_payments_total",
		Help: "Total wallet payment attempts",
	}, []string{"status"})

	// Hosted-checkout top-ups, labelled by outcome
	TopupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_topups_total",
		Help: "Total wallet top-up attempts",
	}, []string{"status"})
)

func Init() {
	prometheus.MustRegister(
		PaymentsTotal,
		TopupsTotal,
	)
}
