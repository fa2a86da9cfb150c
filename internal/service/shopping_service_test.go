package service

import (
	"errors"
	"testing"

	"github.com/lifelog/internal/db"
)

func TestShoppingServiceAddDefaultsCategory(t *testing.T) {
	gdb := setupServiceTestDB(t, &db.ShoppingItem{})
	svc := NewShoppingService(gdb, nil)

	if _, err := svc.Add("  ", ""); !errors.Is(err, ErrShoppingNameRequired) {
		t.Fatalf("expected ErrShoppingNameRequired, got %v", err)
	}

	item, err := svc.Add("牛奶", "")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if item.Category != "grocery" {
		t.Fatalf("expected default category, got %q", item.Category)
	}

	custom, err := svc.Add("灯泡", "household")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if custom.Category != "household" {
		t.Fatalf("expected explicit category, got %q", custom.Category)
	}
}

func TestShoppingServiceSuggestions(t *testing.T) {
	gdb := setupServiceTestDB(t, &db.ShoppingItem{})
	svc := NewShoppingService(gdb, nil)

	bought, err := svc.Add("鸡蛋", "")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	expensed, err := svc.Add("面包", "")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := svc.Add("未购买", ""); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if _, err := svc.ToggleBought(bought.ID); err != nil {
		t.Fatalf("ToggleBought returned error: %v", err)
	}
	if _, err := svc.ToggleBought(expensed.ID); err != nil {
		t.Fatalf("ToggleBought returned error: %v", err)
	}
	if _, err := svc.MarkExpensed(expensed.ID); err != nil {
		t.Fatalf("MarkExpensed returned error: %v", err)
	}

	suggestions, err := svc.Suggestions()
	if err != nil {
		t.Fatalf("Suggestions returned error: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].ID != bought.ID {
		t.Fatalf("expected bought-but-unexpensed item, got %s", suggestions[0].ID)
	}

	if _, err := svc.ToggleBought("missing"); !errors.Is(err, ErrShoppingItemNotFound) {
		t.Fatalf("expected ErrShoppingItemNotFound, got %v", err)
	}
}
