package settings

// Reader is the read-only view of a Record handed to predicates and
// renderers. Writes go through the player so they can be announced.
type Reader interface {
	GetField(name string) (any, error)
	Bool(name string) bool
	Enum(name string) int32
	Number(name string) float64
	Set(name string) Set
	Values() map[string]any
	Version() uint64
	Schema() *Schema
}

var _ Reader = (*Record)(nil)
