package backend

import "github.com/prometheus/client_golang/prometheus"

var chatsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "chatbot",
		Subsystem: "mock",
		Name:      "chats_total",
		Help:      "Mock chat requests by result",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(chatsTotal)
}
