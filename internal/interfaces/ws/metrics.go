package wsinterface

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eurekalite",
		Name:      "messages_dispatched_total",
		Help:      "Number of bus messages dispatched, by message type.",
	}, []string{"type"})

	dispatchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eurekalite",
		Name:      "dispatch_errors_total",
		Help:      "Number of bus messages whose handler returned an error.",
	})

	broadcastsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eurekalite",
		Name:      "broadcasts_sent_total",
		Help:      "Number of messages fanned out to popup clients.",
	})

	uiClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "eurekalite",
		Name:      "ui_clients",
		Help:      "Number of currently connected popup clients.",
	})

	inpagePorts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "eurekalite",
		Name:      "inpage_ports",
		Help:      "Number of currently connected page context ports.",
	})
)
