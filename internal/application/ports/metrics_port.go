package ports

// Metrics puerto de salida para contadores de negocio.
type Metrics interface {
	LoginAttempt(success bool)
	KPIComputed(financial bool)
}

// NopMetrics descarta todas las métricas.
type NopMetrics struct{}

func (NopMetrics) LoginAttempt(bool) {}
func (NopMetrics) KPIComputed(bool)  {}
