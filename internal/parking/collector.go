package parking

import "github.com/prometheus/client_golang/prometheus"

// Collector exports lot occupancy read straight from the registry at scrape
// time.
type Collector struct {
	registry *LotRegistry

	lots          *prometheus.Desc
	totalSlots    *prometheus.Desc
	occupiedSlots *prometheus.Desc
}

func NewCollector(registry *LotRegistry) *Collector {
	return &Collector{
		registry: registry,
		lots: prometheus.NewDesc("carparking_lots",
			"Number of parking lots.", nil, nil),
		totalSlots: prometheus.NewDesc("carparking_lot_slots_total",
			"Total number of slots in a parking lot.", []string{"lot_id"}, nil),
		occupiedSlots: prometheus.NewDesc("carparking_lot_slots_occupied",
			"Number of occupied slots in a parking lot.", []string{"lot_id"}, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.lots
	ch <- c.totalSlots
	ch <- c.occupiedSlots
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	lots := c.registry.Lots()

	ch <- prometheus.MustNewConstMetric(c.lots, prometheus.GaugeValue, float64(len(lots)))
	for _, lot := range lots {
		ch <- prometheus.MustNewConstMetric(c.totalSlots, prometheus.GaugeValue, float64(lot.TotalSlots), lot.ID)
		ch <- prometheus.MustNewConstMetric(c.occupiedSlots, prometheus.GaugeValue, float64(lot.Occupied), lot.ID)
	}
}
