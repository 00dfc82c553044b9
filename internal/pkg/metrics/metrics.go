// Package metrics declares the Prometheus collectors of the fulfillment service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "consignment_orders_created_total",
		Help: "Total number of orders registered by payment capture.",
	})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "consignment_status_transitions_total",
		Help: "Total number of applied order status transitions.",
	},
		[]string{"from", "to"},
	)

	GateRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "consignment_gate_rejections_total",
		Help: "Total number of transitions rejected because a gate was not satisfied.",
	},
		[]string{"gate"},
	)

	PickTicketsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "consignment_pick_tickets_completed_total",
		Help: "Total number of pick tickets that reached full completion.",
	})

	SlotOffersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "consignment_slot_offers_total",
		Help: "Total number of slot offers sent to buyers.",
	})

	SlotConfirmationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "consignment_slot_confirmations_total",
		Help: "Total number of slot confirmation attempts by result.",
	},
		[]string{"result"},
	)

	OrdersFinalizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "consignment_orders_finalized_total",
		Help: "Total number of orders finalized by the finalization sweep.",
	})

	FinalizationSweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "consignment_finalization_sweep_duration_seconds",
		Help:    "Duration of finalization sweeps.",
		Buckets: prometheus.DefBuckets,
	})

	NotificationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "consignment_notification_failures_total",
		Help: "Total number of buyer notifications that could not be published.",
	},
		[]string{"event"},
	)
)
