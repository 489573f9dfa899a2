package adjustment

// Vocabulary es el conjunto cerrado de motivos de ajuste. Se consume desde
// configuración (ADJUSTMENT_REASONS), no se calcula; el vocabulario por defecto
// es damaged, expired, lost, found, returned, correction, other.
type Vocabulary struct {
	order []string
	set   map[string]struct{}
}

// NewVocabulary construye el vocabulario a partir de la lista configurada,
// descartando duplicados y preservando el orden.
func NewVocabulary(reasons []string) Vocabulary {
	v := Vocabulary{set: make(map[string]struct{}, len(reasons))}
	for _, r := range reasons {
		if _, ok := v.set[r]; ok {
			continue
		}
		v.set[r] = struct{}{}
		v.order = append(v.order, r)
	}
	return v
}

// Valid reporta si el motivo es aceptable: vacío (sin seleccionar) o uno del
// conjunto configurado.
func (v Vocabulary) Valid(reason string) bool {
	if reason == "" {
		return true
	}
	_, ok := v.set[reason]
	return ok
}

// List devuelve los motivos en el orden configurado (copia).
func (v Vocabulary) List() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}
