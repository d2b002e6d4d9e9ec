package metrics

import (
	"sort"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const ResultSuccess = "success"

// CartMetrics records the outcome of cart commands and the current cart shape.
type CartMetrics struct {
	operations *prometheus.CounterVec
	items      prometheus.Gauge
	total      prometheus.Gauge
}

// NewCartMetrics registers the cart collectors on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart commands by operation and result.",
	}, []string{"operation", "result"})
	items := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_items",
		Help: "Number of items currently in the cart.",
	})
	total := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_total",
		Help: "Current cart total.",
	})
	reg.MustRegister(operations, items, total)
	return &CartMetrics{
		operations: operations,
		items:      items,
		total:      total,
	}
}

// RecordOperation counts one command; the result label is the error code or "success".
func (c *CartMetrics) RecordOperation(operation string, err error) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(operation), resultLabel(err)).Inc()
}

// ObserveCart sets the item count and total gauges.
func (c *CartMetrics) ObserveCart(items int, total float64) {
	if c == nil || c.items == nil {
		return
	}
	c.items.Set(float64(items))
	c.total.Set(total)
}

func resultLabel(err error) string {
	if err == nil {
		return ResultSuccess
	}
	return string(pkgerrors.CodeOf(err))
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}

// OperationCount is one row of the cart_operations_total family.
type OperationCount struct {
	Operation string
	Result    string
	Count     float64
}

// Operations gathers cart_operations_total from g, sorted by operation then result.
func Operations(g prometheus.Gatherer) ([]OperationCount, error) {
	mfs, err := g.Gather()
	if err != nil {
		return nil, err
	}
	var out []OperationCount
	for _, mf := range mfs {
		if mf.GetName() != "cart_operations_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			row := OperationCount{Count: metric.GetCounter().GetValue()}
			for _, label := range metric.GetLabel() {
				switch label.GetName() {
				case "operation":
					row.Operation = label.GetValue()
				case "result":
					row.Result = label.GetValue()
				}
			}
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Operation != out[j].Operation {
			return out[i].Operation < out[j].Operation
		}
		return out[i].Result < out[j].Result
	})
	return out, nil
}
