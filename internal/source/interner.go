package source

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier spellings. Lookups are safe for concurrent
// readers once interning has stopped.
type Interner struct {
	byID  []string            // индекс -> строка (byID[0] = "" для NoStringID)
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern вставляет строку в иннер и возвращает её ID.
// Если строка уже есть, возвращает её ID.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Собственная копия, чтобы не держать исходный буфер.
	cpy := string([]byte(s))
	n, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	id := StringID(n)
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns the spelling held in b.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup returns the spelling for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup panics on an unknown id.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("invalid string ID %d", id))
	}
	return s
}

func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len counts NoStringID too, so it is never below 1.
func (i *Interner) Len() int {
	return len(i.byID)
}

func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
