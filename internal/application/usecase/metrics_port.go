// internal/application/usecase/metrics_port.go
package usecase

// Metrics receives counters from the use cases. platform/metrics provides
// the Prometheus implementation.
type Metrics interface {
	CartOperation(op string)
	StockWrites(written, failed int)
	OrderUpdate(op string, ok bool)
}

type nopMetrics struct{}

func (nopMetrics) CartOperation(string)     {}
func (nopMetrics) StockWrites(int, int)     {}
func (nopMetrics) OrderUpdate(string, bool) {}
