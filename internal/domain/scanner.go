package domain

import (
	"context"

	"github.com/SikamikanikoBG/codelens/internal/adapter"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// ScanProgress is one progress update from the noise scan.
type ScanProgress struct {
	Current m.Path
	Scanned int
	Total   int
}

// Percent returns the completed share in [0, 1].
func (p ScanProgress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}

	return float64(p.Scanned) / float64(p.Total)
}

// ProgressFunc receives scan progress updates.
type ProgressFunc func(ScanProgress)

// Scanner seeds the exclusion set with every noise directory under the
// session root. Deep paths then resolve as excluded through ancestor
// inheritance before anything is ever materialized. The scan runs at most
// once per session.
type Scanner struct {
	store *SelectionStore
	fs    adapter.SourceFSAdapter
}

// NewScanner creates a Scanner bound to store.
func NewScanner(store *SelectionStore, fs adapter.SourceFSAdapter) *Scanner {
	return &Scanner{store: store, fs: fs}
}

// Scan counts the directories under the root, then walks them and inserts
// every noise-named directory into the excluded set unless it already
// carries an explicit marking. Cancellation through ctx is cooperative and
// not an error: exclusions recorded so far stay, and the store marks the
// scan incomplete. progress may be nil.
func (sc *Scanner) Scan(ctx context.Context, progress ProgressFunc) {
	if sc.store.ScanComplete() {
		return
	}

	report := func(p ScanProgress) {
		if progress != nil {
			progress(p)
		}
	}

	total, counted := sc.countDirs(ctx)
	if !counted {
		sc.store.SetScanComplete(false)
		sc.store.MarkDirty()

		return
	}

	report(ScanProgress{Current: sc.store.Root(), Scanned: 0, Total: total})

	scanned := 0
	stack := []m.Path{sc.store.Root()}

	for len(stack) > 0 {
		if ctx.Err() != nil {
			sc.store.SetScanComplete(false)
			sc.store.MarkDirty()

			return
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		scanned++
		report(ScanProgress{Current: dir, Scanned: scanned, Total: total})

		entries, err := sc.fs.ListDir(dir)
		if err != nil {
			continue
		}

		for _, e := range entries {
			if !e.IsDir {
				continue
			}

			if IsNoiseName(e.Name) {
				if sc.store.State(e.Path) == m.StateNone {
					sc.store.mark(e.Path, m.StateExcluded)
				}

				// The directory is excluded wholesale and its inside
				// inherits the exclusion, so the walk skips it.
				continue
			}

			stack = append(stack, e.Path)
		}
	}

	sc.store.SetScanComplete(true)
	sc.store.MarkDirty()
}

// countDirs sizes the walk so progress can report a total. It visits the
// same directories the scan will visit. counted is false when ctx was
// cancelled midway.
func (sc *Scanner) countDirs(ctx context.Context) (total int, counted bool) {
	stack := []m.Path{sc.store.Root()}

	for len(stack) > 0 {
		if ctx.Err() != nil {
			return total, false
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		total++

		entries, err := sc.fs.ListDir(dir)
		if err != nil {
			continue
		}

		for _, e := range entries {
			if !e.IsDir || IsNoiseName(e.Name) {
				continue
			}

			stack = append(stack, e.Path)
		}
	}

	return total, true
}
