package cache

import "testing"

func TestLRUList_ByteAccounting(t *testing.T) {
	var l lruList[string]
	a := l.PushFront("a", 10)
	l.PushFront("b", 5)
	c := l.PushFront("c", 1)

	if l.Len() != 3 || l.Bytes() != 16 {
		t.Fatalf("len/bytes = %d/%d, want 3/16", l.Len(), l.Bytes())
	}

	l.MoveToFront(a)
	if l.head != a || l.tail.key != "b" {
		t.Errorf("after MoveToFront(a): head %q, tail %q", l.head.key, l.tail.key)
	}
	if l.Bytes() != 16 {
		t.Errorf("MoveToFront changed bytes to %d", l.Bytes())
	}

	l.Resize(c, 4)
	if l.Bytes() != 19 {
		t.Errorf("after Resize bytes = %d, want 19", l.Bytes())
	}

	for _, want := range []string{"b", "c", "a"} {
		key, ok := l.RemoveOldest()
		if !ok || key != want {
			t.Fatalf("RemoveOldest = %q, %v; want %q", key, ok, want)
		}
	}
	if _, ok := l.RemoveOldest(); ok {
		t.Error("RemoveOldest on empty list should report false")
	}
	if l.Len() != 0 || l.Bytes() != 0 || l.head != nil || l.tail != nil {
		t.Errorf("empty list state: len %d bytes %d", l.Len(), l.Bytes())
	}
}

func TestLRUList_Clear(t *testing.T) {
	var l lruList[int]
	for i := range 4 {
		l.PushFront(i, i+1)
	}
	l.Clear()
	if l.Len() != 0 || l.Bytes() != 0 {
		t.Errorf("after Clear len/bytes = %d/%d", l.Len(), l.Bytes())
	}
	n := l.PushFront(9, 3)
	if l.head != n || l.tail != n || l.Bytes() != 3 {
		t.Error("list should be usable after Clear")
	}
}
