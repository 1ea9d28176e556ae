package scfg

import (
	"reflect"
	"testing"
)

// TestDocument_AddAndGet tests the basic builder operations.
func TestDocument_AddAndGet(t *testing.T) {
	doc := NewDocument()

	dir := doc.Add("dir1")
	if dir == nil {
		t.Fatal("Add() returned nil")
	}
	if !dir.Equal(NewDirective()) {
		t.Error("Add() did not return an empty directive")
	}

	if got := doc.Get("dir1"); got != dir {
		t.Errorf("Get(dir1) = %v, want the directive returned by Add", got)
	}
	if doc.Get("missing") != nil {
		t.Error("Get(missing) != nil")
	}
	if !doc.Contains("dir1") {
		t.Error("Contains(dir1) = false")
	}
	if doc.Contains("dir2") {
		t.Error("Contains(dir2) = true")
	}
}

// TestDocument_GetAll tests bucket lookup semantics.
func TestDocument_GetAll(t *testing.T) {
	doc := NewDocument()
	doc.Add("model").AppendParam("E5")
	doc.Add("model").AppendParam("E7")

	bucket := doc.GetAll("model")
	if len(bucket) != 2 {
		t.Fatalf("GetAll(model) returned %d directives, want 2", len(bucket))
	}
	if bucket[0].Params()[0] != "E5" || bucket[1].Params()[0] != "E7" {
		t.Errorf("bucket order = %v, want insertion order", bucket)
	}

	if doc.GetAll("missing") != nil {
		t.Error("GetAll(missing) != nil")
	}

	// Get returns the first of the bucket.
	if doc.Get("model").Params()[0] != "E5" {
		t.Error("Get(model) is not the first directive of the bucket")
	}

	// GetAll hands out the live bucket for in-place mutation.
	bucket[1].ClearParams()
	if len(doc.GetAll("model")[1].Params()) != 0 {
		t.Error("mutation through GetAll was not visible in the document")
	}
}

// TestDocument_Remove tests atomic bucket removal.
func TestDocument_Remove(t *testing.T) {
	doc := NewDocument()
	doc.Add("keep").AppendParam("x")
	doc.Add("drop").AppendParam("a")
	doc.Add("drop").AppendParam("b")

	removed := doc.Remove("drop")
	if len(removed) != 2 {
		t.Fatalf("Remove(drop) returned %d directives, want 2", len(removed))
	}
	if doc.Contains("drop") {
		t.Error("document still contains removed name")
	}
	if !reflect.DeepEqual(doc.Names(), []string{"keep"}) {
		t.Errorf("Names() = %v, want [keep]", doc.Names())
	}
	if doc.Remove("drop") != nil {
		t.Error("second Remove(drop) != nil")
	}
}

// TestDocument_NamesOrdering tests both name iteration modes.
func TestDocument_NamesOrdering(t *testing.T) {
	build := func(doc *Document) {
		doc.Add("zebra")
		doc.Add("apple")
		doc.Add("mango")
		doc.Add("apple")
	}

	sorted := NewDocument()
	build(sorted)
	if got := sorted.Names(); !reflect.DeepEqual(got, []string{"apple", "mango", "zebra"}) {
		t.Errorf("sorted Names() = %v", got)
	}

	preserved := NewDocument(WithOrdering(PreserveOrder))
	build(preserved)
	if got := preserved.Names(); !reflect.DeepEqual(got, []string{"zebra", "apple", "mango"}) {
		t.Errorf("preserve-order Names() = %v", got)
	}

	// Same contents, different key order: still equal.
	if !sorted.Equal(preserved) {
		t.Error("documents with identical contents but different ordering modes are not Equal")
	}
}

// TestDirective_Params tests parameter mutation.
func TestDirective_Params(t *testing.T) {
	dir := NewDirective()
	if len(dir.Params()) != 0 {
		t.Errorf("new directive has params %v", dir.Params())
	}

	got := dir.AppendParam("a").AppendParam("b")
	if got != dir {
		t.Error("AppendParam did not return the receiver")
	}
	if !reflect.DeepEqual(dir.Params(), []string{"a", "b"}) {
		t.Errorf("Params() = %v, want [a b]", dir.Params())
	}

	dir.ClearParams()
	if len(dir.Params()) != 0 {
		t.Errorf("Params() after ClearParams = %v", dir.Params())
	}
}

// TestDirective_Child tests child creation, idempotency and detachment.
func TestDirective_Child(t *testing.T) {
	dir := NewDirective()
	if dir.Child() != nil {
		t.Error("new directive has a child")
	}

	child := dir.GetOrCreateChild()
	if child == nil {
		t.Fatal("GetOrCreateChild() = nil")
	}
	if dir.GetOrCreateChild() != child {
		t.Error("GetOrCreateChild is not idempotent")
	}
	if dir.Child() != child {
		t.Error("Child() does not return the created child")
	}

	child.Add("inner")
	taken := dir.TakeChild()
	if taken != child {
		t.Error("TakeChild() did not return the child")
	}
	if dir.Child() != nil {
		t.Error("directive still has a child after TakeChild")
	}
	if dir.TakeChild() != nil {
		t.Error("second TakeChild() != nil")
	}
}

// TestDirective_ChildInheritsOrdering tests that children created under
// a preserve-order document keep that mode.
func TestDirective_ChildInheritsOrdering(t *testing.T) {
	doc := NewDocument(WithOrdering(PreserveOrder))
	child := doc.Add("block").GetOrCreateChild()
	child.Add("zebra")
	child.Add("apple")

	if got := child.Names(); !reflect.DeepEqual(got, []string{"zebra", "apple"}) {
		t.Errorf("child Names() = %v, want insertion order", got)
	}
}

// TestDocument_Equal tests semantic equality.
func TestDocument_Equal(t *testing.T) {
	make1 := func() *Document {
		doc := NewDocument()
		doc.Add("a").AppendParam("1")
		doc.Add("b").GetOrCreateChild().Add("c")
		return doc
	}

	if !make1().Equal(make1()) {
		t.Error("identical documents are not Equal")
	}

	diffParam := make1()
	diffParam.Get("a").AppendParam("2")
	if make1().Equal(diffParam) {
		t.Error("documents with different params are Equal")
	}

	diffChild := make1()
	diffChild.Get("b").Child().Add("d")
	if make1().Equal(diffChild) {
		t.Error("documents with different children are Equal")
	}

	extraKey := make1()
	extraKey.Add("z")
	if make1().Equal(extraKey) {
		t.Error("documents with different key sets are Equal")
	}

	// A childless directive differs from one with an empty child block.
	noChild := NewDocument()
	noChild.Add("block")
	emptyChild := NewDocument()
	emptyChild.Add("block").GetOrCreateChild()
	if noChild.Equal(emptyChild) {
		t.Error("childless directive equals directive with empty child")
	}
}

// TestBuilderMatchesParsed tests that the builder reproduces a parsed
// document, the original library's flagship example.
func TestBuilderMatchesParsed(t *testing.T) {
	src := `train "Shinkansen" {
    model "E5" {
        max-speed 320km/h
        weight 453.5t

        lines-served "Tōhoku" "Hokkaido"
    }

    model "E7" {
        max-speed 275km/h
        weight 540t

        lines-served "Hokuriku" "Jōetsu"
    }
}`
	doc, err := ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	built := NewDocument()
	train := built.Add("train").AppendParam("Shinkansen").GetOrCreateChild()
	e5 := train.Add("model").AppendParam("E5").GetOrCreateChild()
	e5.Add("max-speed").AppendParam("320km/h")
	e5.Add("weight").AppendParam("453.5t")
	e5.Add("lines-served").AppendParam("Tōhoku").AppendParam("Hokkaido")
	e7 := train.Add("model").AppendParam("E7").GetOrCreateChild()
	e7.Add("max-speed").AppendParam("275km/h")
	e7.Add("weight").AppendParam("540t")
	e7.Add("lines-served").AppendParam("Hokuriku").AppendParam("Jōetsu")

	if !doc.Equal(built) {
		t.Errorf("parsed and built documents differ:\n%s\nvs\n%s", doc, built)
	}
}
