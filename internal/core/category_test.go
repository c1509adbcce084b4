package core

import "testing"

func TestFilterTableSymmetric(t *testing.T) {
	var ft FilterTable

	ft.Set(CategoryPlayer, CategoryGround, true)
	if !ft.Ignored(CategoryGround, CategoryPlayer) {
		t.Error("Ignored(Ground, Player) should mirror Set(Player, Ground)")
	}
	if ft.Ignored(CategoryPlayer, CategoryHazard) {
		t.Error("Ignored(Player, Hazard) should default to false")
	}

	ft.Set(CategoryGround, CategoryPlayer, false)
	if ft.Ignored(CategoryPlayer, CategoryGround) {
		t.Error("clearing either direction should clear both")
	}

	ft.Set(CategoryPlayer, CategoryBarrier, true)
	ft.Reset()
	if ft.Ignored(CategoryPlayer, CategoryBarrier) {
		t.Error("Reset() should re-enable all pairs")
	}
}

func TestFilterTableOutOfRange(t *testing.T) {
	var ft FilterTable
	ft.Set(Category(42), CategoryPlayer, true) // must not panic
	if ft.Ignored(Category(42), CategoryPlayer) {
		t.Error("unknown categories are never ignored")
	}
}

func TestMask(t *testing.T) {
	m := MaskOf(CategoryGround, CategoryHazard)
	if !m.Has(CategoryGround) || !m.Has(CategoryHazard) {
		t.Error("MaskOf() should contain its members")
	}
	if m.Has(CategoryLadder) {
		t.Error("MaskOf() should not contain other categories")
	}
}
