package dict

import "testing"

func TestNewResetInitialState(t *testing.T) {
	d := New(9)
	if d.N() != FirstString {
		t.Fatalf("initial N() = %d, want %d", d.N(), FirstString)
	}
	if d.Full() {
		t.Fatalf("freshly created dictionary reports Full()")
	}
	if _, ok := d.PendingCode(); ok {
		t.Fatalf("freshly created dictionary has a pending code")
	}
}

func TestInsertAndLookup(t *testing.T) {
	d := New(9)
	code := d.Insert(65, 'A')
	if code != FirstString {
		t.Fatalf("first Insert code = %d, want %d", code, FirstString)
	}
	if d.N() != FirstString+1 {
		t.Fatalf("N() after Insert = %d, want %d", d.N(), FirstString+1)
	}
	got, ok := d.Lookup(65, 'A')
	if !ok || got != code {
		t.Fatalf("Lookup(65,'A') = %d,%v want %d,true", got, ok, code)
	}
	if d.Prefix(code) != 65 || d.Terminator(code) != 'A' {
		t.Fatalf("Prefix/Terminator mismatch for inserted code")
	}
	if d.Length(code) != 2 {
		t.Fatalf("Length(code) = %d, want 2", d.Length(code))
	}
}

func TestReserveCompleteMirrorsInsert(t *testing.T) {
	a := New(9)
	b := New(9)

	codeA := a.Insert(65, 'B')

	codeB := b.Reserve(65)
	if pending, ok := b.PendingCode(); !ok || pending != codeB {
		t.Fatalf("PendingCode() after Reserve = %d,%v want %d,true", pending, ok, codeB)
	}
	b.Complete('B')
	if _, ok := b.PendingCode(); ok {
		t.Fatalf("PendingCode() still reports pending after Complete")
	}

	if codeA != codeB {
		t.Fatalf("codes diverge: Insert=%d Reserve+Complete=%d", codeA, codeB)
	}
	if a.Prefix(codeA) != b.Prefix(codeB) || a.Terminator(codeA) != b.Terminator(codeB) {
		t.Fatalf("entries diverge between Insert and Reserve+Complete")
	}
	if a.N() != b.N() {
		t.Fatalf("alphabet size diverges: Insert N()=%d Reserve+Complete N()=%d", a.N(), b.N())
	}
}

func TestBumpWidthDoesNotReserve(t *testing.T) {
	d := New(9)
	before := d.N()
	d.BumpWidth()
	if d.N() != before+1 {
		t.Fatalf("BumpWidth: N() = %d, want %d", d.N(), before+1)
	}
	if _, ok := d.PendingCode(); ok {
		t.Fatalf("BumpWidth created a pending reservation")
	}
	if _, ok := d.Lookup(65, 'A'); ok {
		t.Fatalf("BumpWidth created a lookup entry")
	}
}

func TestFillTriggersRecycleMode(t *testing.T) {
	d := New(9) // maxStrings = 512
	prefix := uint32(0)
	for !d.Full() {
		d.Insert(prefix, byte(prefix%256))
		prefix++
	}
	if d.N() != d.MaxStrings() {
		t.Fatalf("N() at full = %d, want %d", d.N(), d.MaxStrings())
	}

	// Recycling must not change the alphabet size.
	before := d.N()
	d.Recycle(0, 42)
	if d.N() != before {
		t.Fatalf("Recycle changed N(): %d -> %d", before, d.N())
	}
}

func TestResetClearsPending(t *testing.T) {
	d := New(9)
	d.Reserve(65)
	if _, ok := d.PendingCode(); !ok {
		t.Fatalf("expected a pending reservation before Reset")
	}
	d.Reset()
	if _, ok := d.PendingCode(); ok {
		t.Fatalf("Reset left a pending reservation")
	}
	if d.N() != FirstString {
		t.Fatalf("Reset: N() = %d, want %d", d.N(), FirstString)
	}
	if d.Full() {
		t.Fatalf("Reset left the dictionary marked full")
	}
}

func TestExpandLiteralAndChain(t *testing.T) {
	d := New(9)
	stack := make([]uint32, 0, d.MaxStrings())

	dst, first, stack := d.Expand(65, nil, stack)
	if len(dst) != 1 || dst[0] != 65 || first != 65 {
		t.Fatalf("Expand(65) = %v first=%d", dst, first)
	}

	c1 := d.Insert(65, 'B')  // "AB"
	c2 := d.Insert(c1, 'C')  // "ABC"

	dst, first, _ = d.Expand(c2, dst[:0], stack)
	if string(dst) != "ABC" || first != 'A' {
		t.Fatalf("Expand(ABC) = %q first=%c", dst, first)
	}
}

func TestRecycleEvictsOnlyLeaves(t *testing.T) {
	d := New(9)
	root := d.Insert(65, 'B')  // "AB", referenced by child below
	_ = d.Insert(root, 'C')    // "ABC", a leaf

	// Force full without disturbing the two entries above by inserting
	// distinct single-extension chains until the free list is exhausted.
	prefix := uint32(66)
	for !d.Full() {
		d.Insert(prefix, byte(prefix%256))
		prefix++
	}

	// root has a child (refs>0) so scanVictim must never select it.
	oldPrefix := d.Prefix(root)
	oldTerm := d.Terminator(root)
	for i := 0; i < 4; i++ {
		d.Recycle(200, byte(i))
		if d.Prefix(root) != oldPrefix || d.Terminator(root) != oldTerm {
			t.Fatalf("recycle evicted a non-leaf entry that still has a child")
		}
	}
}
