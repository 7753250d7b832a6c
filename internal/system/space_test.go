package system

import "testing"

func TestHasSufficientSpace(t *testing.T) {
	dir := t.TempDir()
	ok, avail, err := HasSufficientSpace(dir, 0)
	if err != nil {
		t.Fatalf("HasSufficientSpace: %v", err)
	}
	if !ok {
		t.Fatalf("zero bytes must always fit (available %d)", avail)
	}
	if ok, _, err := HasSufficientSpace(dir, 1<<62); err != nil || ok {
		t.Fatalf("an exabyte-scale payload should not fit: ok=%v err=%v", ok, err)
	}
	if _, err := FreeSpace(dir + "/missing"); err == nil {
		t.Fatalf("expected error for missing path")
	}
}
