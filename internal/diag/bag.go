package diag

import (
	"fmt"
	"sort"
)

// Bag collects diagnostics up to a limit.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
	errors  int // включая отброшенные лимитом
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	capacity := max
	if capacity <= 0 || capacity > 64 {
		capacity = 64
	}
	return &Bag{
		items: make([]Diagnostic, 0, capacity),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if d.Severity >= SevError {
		b.errors++
	}
	if b.Full() {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Full reports whether the limit has been reached.
func (b *Bag) Full() bool {
	return b.max > 0 && len(b.items) >= b.max
}

// Dropped counts diagnostics rejected by the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors reports whether any error was added, even one dropped by the limit.
func (b *Bag) HasErrors() bool {
	return b.errors > 0
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// CountBySeverity returns how many diagnostics of sev the bag holds.
func (b *Bag) CountBySeverity(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge объединяет диагностики из другого Bag, расширяя лимит при необходимости.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if newTotal := len(b.items) + len(other.items); b.max > 0 && newTotal > b.max {
		b.max = newTotal
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
	b.errors += other.errors
}

// Sort сортирует диагностики по: file, start, end, severity (desc), code (asc)
// для стабильного и детерминированного порядка вывода.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// простая дедупликация (по Code+Primary)
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.Code.ID(), d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}
