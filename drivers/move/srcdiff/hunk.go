package srcdiff

// hunkBuilder is the accumulator state machine that converts a flat diff-line
// stream into hunks with bounded context. It is either closed (no hunk open,
// keeping a sliding window of recent context) or open (accumulating lines
// plus an uncommitted run of context whose fate depends on its length).
type hunkBuilder struct {
	context int
	hunks   []DiffHunk

	open  bool
	lines []DiffLine

	// Uncommitted run of context lines since the last change line. While
	// closed, trimmed to the trailing `context` lines.
	pending []DiffLine

	// Insertion cursors captured when a hunk opens, used as the unified-diff
	// start position for a side the hunk has no lines on.
	baseOld int
	baseNew int

	lastOld int
	lastNew int
}

// buildHunks groups a diff-line stream into hunks. A context run longer than
// 2×context closes the current hunk; shorter runs are folded into it.
func buildHunks(records []DiffLine, context int) []DiffHunk {
	b := &hunkBuilder{context: context}
	for _, r := range records {
		if r.Type == LineContext {
			b.onContext(r)
		} else {
			b.onChange(r)
		}
	}
	b.finish()
	return b.hunks
}

func (b *hunkBuilder) onContext(r DiffLine) {
	b.lastOld, b.lastNew = r.OldNumber, r.NewNumber
	b.pending = append(b.pending, r)
	if !b.open && len(b.pending) > b.context {
		b.pending = b.pending[1:]
	}
}

func (b *hunkBuilder) onChange(r DiffLine) {
	if b.open {
		if len(b.pending) <= 2*b.context {
			// Short context run: fold it in rather than splitting the hunk.
			b.lines = append(b.lines, b.pending...)
		} else {
			b.lines = append(b.lines, b.pending[:b.context]...)
			b.closeHunk()
			b.openHunk(b.pending[len(b.pending)-b.context:])
		}
	} else {
		b.openHunk(b.pending)
	}
	b.pending = nil

	b.lines = append(b.lines, r)
	if r.Type == LineRemove {
		b.lastOld = r.OldNumber
	} else {
		b.lastNew = r.NewNumber
	}
}

func (b *hunkBuilder) openHunk(leading []DiffLine) {
	b.open = true
	b.baseOld = b.lastOld
	b.baseNew = b.lastNew
	b.lines = append([]DiffLine(nil), leading...)
}

func (b *hunkBuilder) closeHunk() {
	h := DiffHunk{Lines: b.lines}
	for _, l := range h.Lines {
		if l.Type != LineAdd {
			h.OldLines++
			if h.OldStart == 0 {
				h.OldStart = l.OldNumber
			}
		}
		if l.Type != LineRemove {
			h.NewLines++
			if h.NewStart == 0 {
				h.NewStart = l.NewNumber
			}
		}
	}
	// A side with no lines anchors at the position before the change.
	if h.OldLines == 0 {
		h.OldStart = b.baseOld
	}
	if h.NewLines == 0 {
		h.NewStart = b.baseNew
	}

	b.hunks = append(b.hunks, h)
	b.lines = nil
	b.open = false
}

func (b *hunkBuilder) finish() {
	if !b.open {
		return
	}
	trailing := b.pending
	if len(trailing) > b.context {
		trailing = trailing[:b.context]
	}
	b.lines = append(b.lines, trailing...)
	b.closeHunk()
}
