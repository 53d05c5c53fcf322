package entity

// Actor identidad de operador resuelta. Toda ruta de escritura del ciclo de
// vida la exige como precondición dura.
type Actor struct {
	ID   string
	Name string
}

// Resolved indica si la identidad viene completa.
func (a Actor) Resolved() bool {
	return a.ID != "" && a.Name != ""
}
