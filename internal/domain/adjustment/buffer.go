package adjustment

// Buffer administra los ledgers de ajustes pendientes de todas las tiendas de
// la sesión. Es el dueño exclusivo de los ledgers y sus líneas: ningún otro
// componente los muta directamente. Se construye explícitamente y se pasa por
// referencia a quien lo necesite; no es un singleton.
//
// Aislamiento multi-tienda: las operaciones sobre el buffer de una tienda
// jamás observan ni mutan el buffer de otra.
type Buffer struct {
	ledgers map[int64]*Ledger
}

// NewBuffer construye un buffer vacío.
func NewBuffer() *Buffer {
	return &Buffer{ledgers: make(map[int64]*Ledger)}
}

// ledger devuelve el ledger de la tienda, creándolo de forma perezosa.
func (b *Buffer) ledger(storeID int64) *Ledger {
	l, ok := b.ledgers[storeID]
	if !ok {
		l = &Ledger{}
		b.ledgers[storeID] = l
	}
	return l
}

// AddEntry agrega la línea al ledger de la tienda (creándolo si no existe).
// Devuelve true si insertó, false si el par (producto, variante) ya estaba.
// Una línea inválida devuelve error sin crear ni mutar el ledger.
func (b *Buffer) AddEntry(storeID int64, e Entry) (bool, error) {
	if !e.Direction.Valid() {
		return false, ErrInvalidDirection
	}
	if e.Quantity <= 0 {
		return false, ErrInvalidQuantity
	}
	return b.ledger(storeID).Add(e)
}

// RemoveEntry delega en el ledger de la tienda; no-op si la tienda no tiene
// ledger o la línea no existe. Devuelve si efectivamente removió.
func (b *Buffer) RemoveEntry(storeID int64, entryID string) bool {
	l, ok := b.ledgers[storeID]
	if !ok {
		return false
	}
	return l.Remove(entryID)
}

// UpdateQuantity delega en el ledger de la tienda; no-op si el ledger o la
// línea no existen. Cantidad no positiva devuelve ErrInvalidQuantity.
func (b *Buffer) UpdateQuantity(storeID int64, entryID string, qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	l, ok := b.ledgers[storeID]
	if !ok {
		return nil
	}
	return l.UpdateQuantity(entryID, qty)
}

// ClearStore vacía exactamente el ledger de esa tienda, dejando intactos los
// de las demás.
func (b *Buffer) ClearStore(storeID int64) {
	if l, ok := b.ledgers[storeID]; ok {
		l.Clear()
	}
}

// ClearAll vacía todos los ledgers (logout / reinicio de sesión).
func (b *Buffer) ClearAll() {
	b.ledgers = make(map[int64]*Ledger)
}

// Entries snapshot de las líneas de la tienda en orden de inserción.
// Tienda sin ledger equivale a ledger vacío.
func (b *Buffer) Entries(storeID int64) []Entry {
	l, ok := b.ledgers[storeID]
	if !ok {
		return []Entry{}
	}
	return l.Entries()
}

// Totals agregados de la tienda, recalculados bajo demanda en una sola pasada.
func (b *Buffer) Totals(storeID int64) Totals {
	l, ok := b.ledgers[storeID]
	if !ok {
		return Totals{}
	}
	return l.Totals()
}

// SubmissionPayload mapea las líneas de la tienda al formato de cable del
// Submission Gateway, una Record por línea, en orden de inserción.
func (b *Buffer) SubmissionPayload(storeID int64) []Record {
	entries := b.Entries(storeID)
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.Record())
	}
	return records
}
