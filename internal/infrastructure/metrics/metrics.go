package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder agrupa los contadores Prometheus de la aplicación. Se registra una
// sola vez al arranque y los casos de uso lo reciben como puerto.
type Recorder struct {
	movements *prometheus.CounterVec
}

// NewRecorder crea y registra los contadores en reg (usar
// prometheus.DefaultRegisterer en producción para que promhttp los sirva).
func NewRecorder(reg prometheus.Registerer) *Recorder {
	return &Recorder{
		movements: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "panaderia_stock_movements_total",
			Help: "Movimientos de inventario confirmados, por tipo.",
		}, []string{"type"}),
	}
}

// MovementRegistered incrementa el contador del tipo de movimiento dado.
// Llamar solo tras el Commit: los movimientos rechazados no cuentan.
func (r *Recorder) MovementRegistered(movementType string) {
	r.movements.WithLabelValues(movementType).Inc()
}
