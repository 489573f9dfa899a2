package adjustment

// Ledger acumula las líneas de ajuste pendientes de UNA tienda, en orden de
// inserción, con a lo sumo una línea por par (ProductID, StockID).
//
// Las operaciones sobre IDs inexistentes son no-ops silenciosos: re-renders de
// la UI pueden emitir remociones sobre una lista que ya cambió y eso no es un
// error. El caller que quiera diagnosticarlo puede loguear con el booleano de
// retorno.
type Ledger struct {
	entries []Entry
}

// Add inserta la línea si ningún par (ProductID, StockID) igual existe ya.
// Devuelve true si insertó; false (sin error) si el par ya estaba presente:
// seleccionar dos veces el mismo ítem no duplica la línea ni cambia la
// existente. Una línea inválida (dirección o cantidad) devuelve error y deja
// el ledger intacto.
func (l *Ledger) Add(e Entry) (bool, error) {
	if !e.Direction.Valid() {
		return false, ErrInvalidDirection
	}
	if e.Quantity <= 0 {
		return false, ErrInvalidQuantity
	}
	key := e.pairKey()
	for _, existing := range l.entries {
		if existing.pairKey() == key {
			return false, nil
		}
	}
	l.entries = append(l.entries, e)
	return true, nil
}

// Remove elimina la línea con el ID dado. Devuelve false si no existía (no-op).
func (l *Ledger) Remove(entryID string) bool {
	for i, e := range l.entries {
		if e.ID == entryID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity reemplaza la cantidad de la línea con el ID dado.
// Cantidad no positiva devuelve ErrInvalidQuantity sin mutar nada;
// ID inexistente es un no-op silencioso.
func (l *Ledger) UpdateQuantity(entryID string, qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range l.entries {
		if l.entries[i].ID == entryID {
			l.entries[i].Quantity = qty
			return nil
		}
	}
	return nil
}

// Clear vacía el ledger.
func (l *Ledger) Clear() {
	l.entries = nil
}

// Len cantidad de líneas pendientes.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries devuelve un snapshot de las líneas en orden de inserción
// (copia: no es una vista viva del ledger).
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Totals agregados derivados de un ledger para mostrar en pantalla y armar el
// payload. Siempre se recalculan en una sola pasada; no se cachean para que no
// puedan divergir de la lista subyacente.
type Totals struct {
	TotalItems    int   `json:"total_items"`
	TotalIncrease int64 `json:"total_increase"`
	TotalDecrease int64 `json:"total_decrease"`
	NetChange     int64 `json:"net_change"`
}

// Totals recorre las líneas una vez y devuelve los agregados.
func (l *Ledger) Totals() Totals {
	t := Totals{TotalItems: len(l.entries)}
	for _, e := range l.entries {
		switch e.Direction {
		case DirectionIncrease:
			t.TotalIncrease += e.Quantity
		case DirectionDecrease:
			t.TotalDecrease += e.Quantity
		}
	}
	t.NetChange = t.TotalIncrease - t.TotalDecrease
	return t
}
