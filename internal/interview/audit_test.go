package interview

import (
	"fmt"
	"testing"
)

func TestAuditLog_AppendAndOrder(t *testing.T) {
	l := NewAuditLog(5)
	l.Append("a")
	l.Append("b")
	l.Append("c")

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	for i, want := range []string{"a", "b", "c"} {
		if entries[i].Message != want {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Message, want)
		}
	}
}

func TestAuditLog_DropsOldestWhenFull(t *testing.T) {
	l := NewAuditLog(3)
	for i := 0; i < 7; i++ {
		l.Append(fmt.Sprintf("entry-%d", i))
	}

	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}
	entries := l.Entries()
	for i, want := range []string{"entry-4", "entry-5", "entry-6"} {
		if entries[i].Message != want {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Message, want)
		}
	}
}

func TestAuditLog_EntriesReturnsCopy(t *testing.T) {
	l := NewAuditLog(4)
	l.Append("original")

	entries := l.Entries()
	entries[0].Message = "mutated"

	if l.Entries()[0].Message != "original" {
		t.Error("mutating the returned slice leaked into the log")
	}
}
