package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairandomizer_catalog_loads_total",
			Help: "Catalog load attempts by result.",
		},
		[]string{"result"},
	)

	catalogScenariosLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pairandomizer_catalog_scenarios",
		Help: "Number of scenarios in the currently loaded catalog.",
	})

	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairandomizer_generations_total",
			Help: "Generate actions by result.",
		},
		[]string{"result"},
	)

	pairingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairandomizer_pairings_total",
		Help: "Total number of name pairings produced.",
	})
)
