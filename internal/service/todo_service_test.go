package service

import (
	"errors"
	"testing"

	"github.com/lifelog/internal/db"
)

func TestTodoServiceAddValidation(t *testing.T) {
	gdb := setupServiceTestDB(t, &db.Todo{})
	svc := NewTodoService(gdb, nil)

	if _, err := svc.Add("   ", ""); !errors.Is(err, ErrTodoTextRequired) {
		t.Fatalf("expected ErrTodoTextRequired, got %v", err)
	}
	if _, err := svc.Add("交房租", "06/30/2025"); err == nil {
		t.Fatal("expected error for malformed deadline")
	}

	created, err := svc.Add("交房租", "2025-06-30")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if created.ID == "" || created.Completed {
		t.Fatalf("unexpected new todo: %+v", created)
	}
}

func TestTodoServicePendingOrdersDeadlinesFirst(t *testing.T) {
	gdb := setupServiceTestDB(t, &db.Todo{})
	svc := NewTodoService(gdb, nil)

	if _, err := svc.Add("无截止日", ""); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	late, err := svc.Add("晚截止", "2025-07-10")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	early, err := svc.Add("早截止", "2025-07-01")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	done, err := svc.Add("已完成", "2025-06-01")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := svc.Toggle(done.ID); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}

	pending, err := svc.Pending()
	if err != nil {
		t.Fatalf("Pending returned error: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending todos, got %d", len(pending))
	}
	if pending[0].ID != early.ID || pending[1].ID != late.ID {
		t.Fatalf("unexpected deadline ordering: %+v", pending)
	}
	if pending[2].Deadline != "" {
		t.Fatalf("open-ended todo should sort last, got %+v", pending[2])
	}
}

func TestTodoServiceToggleAndDelete(t *testing.T) {
	gdb := setupServiceTestDB(t, &db.Todo{})
	svc := NewTodoService(gdb, nil)

	created, err := svc.Add("洗衣服", "")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	toggled, err := svc.Toggle(created.ID)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("expected todo to be completed after toggle")
	}

	toggled, err = svc.Toggle(created.ID)
	if err != nil {
		t.Fatalf("second Toggle returned error: %v", err)
	}
	if toggled.Completed {
		t.Fatal("expected todo to be pending again")
	}

	if _, err := svc.Toggle("missing"); !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	todos, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(todos))
	}
}
