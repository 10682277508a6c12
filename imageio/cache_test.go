package imageio

import (
	"context"
	"path/filepath"
	"testing"
)

func TestCache_SharesHandles(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 2, 2)
	c := NewCache(0)

	f1 := c.Open(context.Background(), a)
	f2 := c.Open(context.Background(), a)
	if f1 != f2 {
		t.Error("same path opened twice returned different handles")
	}
	wait(t, f1)

	files, err := c.LoadAll(context.Background(), []string{a, writePNG(t, dir, "b.png", 1, 1), a}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if files[0] != f1 || files[2] != f1 {
		t.Error("LoadAll did not reuse the cached handle")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestCache_RetriesFailures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "late.png")
	c := NewCache(0)

	f := c.Open(context.Background(), path)
	wait(t, f)
	if f.Err() == nil {
		t.Fatal("missing file loaded")
	}

	writePNG(t, dir, "late.png", 3, 3)
	g := c.Open(context.Background(), path)
	if g == f {
		t.Fatal("failed handle was reused")
	}
	wait(t, g)
	if g.Err() != nil {
		t.Fatal(g.Err())
	}
}

func TestCache_Evicts(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(4)
	var paths []string
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		p := filepath.Join(dir, name+".png")
		paths = append(paths, p)
		wait(t, c.Open(context.Background(), p))
	}
	// Five entries over a limit of four shrink to three.
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
	if c.Forget(paths[0]) {
		t.Error("oldest entry survived eviction")
	}
	if !c.Forget(paths[4]) {
		t.Error("newest entry was evicted")
	}
}
