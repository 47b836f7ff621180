package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/access"
)

func twoContexts() *access.Classification {
	return &access.Classification{Contexts: []access.Context{
		{TenantID: "t1", TenantName: "TITANS", ModuleID: "m1", ModuleName: "academia", Role: "owner"},
		{TenantID: "t2", TenantName: "VIKINGS", ModuleID: "m1", ModuleName: "academia", Role: "coach"},
	}}
}

func TestSessionManager_SingleContextAutoSelected(t *testing.T) {
	m := NewSessionManager(newMemSessionStore(), time.Minute)
	cls := &access.Classification{Contexts: []access.Context{
		{TenantID: "t1", TenantName: "TITANS", ModuleID: "m1", ModuleName: "academia", Role: "owner"},
	}}

	sess, err := m.Create(context.Background(), "user-1", "coach@titans.com", cls)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.Selected == nil {
		t.Fatal("single context should be selected at login")
	}
	if sess.Selected.TenantID != "t1" || sess.Selected.ModuleID != "m1" {
		t.Errorf("selected = %+v, want t1/m1", sess.Selected)
	}
	if got := LoginRoute(sess); got != "/dashboard/academia" {
		t.Errorf("login route = %q, want /dashboard/academia", got)
	}
}

func TestSessionManager_MultipleContextsStayNeutral(t *testing.T) {
	m := NewSessionManager(newMemSessionStore(), time.Minute)

	sess, err := m.Create(context.Background(), "user-1", "coach@titans.com", twoContexts())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.Selected != nil {
		t.Error("multiple contexts must not auto-select")
	}
	if got := LoginRoute(sess); got != RouteSelectContext {
		t.Errorf("login route = %q, want %q", got, RouteSelectContext)
	}

	if _, err := sess.RequireTenant(); !errors.Is(err, domain.ErrNoContextSelected) {
		t.Errorf("RequireTenant err = %v, want ErrNoContextSelected", err)
	}
}

func TestSessionManager_SuperAdminRoute(t *testing.T) {
	m := NewSessionManager(newMemSessionStore(), time.Minute)

	sess, err := m.Create(context.Background(), "admin-1", "root@academly.io", &access.Classification{SuperAdmin: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := LoginRoute(sess); got != RouteAdminTenants {
		t.Errorf("login route = %q, want %q", got, RouteAdminTenants)
	}
}

func TestSessionManager_SelectContext(t *testing.T) {
	m := NewSessionManager(newMemSessionStore(), time.Minute)
	ctx := context.Background()

	sess, err := m.Create(ctx, "user-1", "coach@titans.com", twoContexts())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	route, err := m.SelectContext(ctx, sess, "t2", "m1")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if route != "/dashboard/academia" {
		t.Errorf("route = %q, want /dashboard/academia", route)
	}

	// The selection must survive a reload.
	got, err := m.Get(ctx, sess.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Selected == nil || got.Selected.TenantID != "t2" {
		t.Errorf("reloaded selection = %+v, want t2", got.Selected)
	}

	tenantID, err := got.RequireTenant()
	if err != nil {
		t.Fatalf("RequireTenant: %v", err)
	}
	if tenantID != "t2" {
		t.Errorf("tenant = %q, want t2", tenantID)
	}
}

func TestSessionManager_SelectContextRejectsForgedPair(t *testing.T) {
	m := NewSessionManager(newMemSessionStore(), time.Minute)
	ctx := context.Background()

	sess, err := m.Create(ctx, "user-1", "coach@titans.com", twoContexts())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Valid tenant, valid module, but not granted as a pair elsewhere;
	// here t3 was never granted at all.
	if _, err := m.SelectContext(ctx, sess, "t3", "m1"); !errors.Is(err, domain.ErrInvalidContext) {
		t.Fatalf("err = %v, want ErrInvalidContext", err)
	}
	if sess.Selected != nil {
		t.Error("rejected selection must not stick")
	}
}

func TestSessionManager_SlidingExpiry(t *testing.T) {
	m := NewSessionManager(newMemSessionStore(), 40*time.Millisecond)
	ctx := context.Background()

	sess, err := m.Create(ctx, "user-1", "coach@titans.com", twoContexts())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Touch within the window twice; total elapsed exceeds the timeout but
	// each Get resets it.
	for i := 0; i < 2; i++ {
		time.Sleep(25 * time.Millisecond)
		if _, err := m.Get(ctx, sess.Token); err != nil {
			t.Fatalf("get after touch %d: %v", i, err)
		}
	}

	// Now go idle past the window.
	time.Sleep(60 * time.Millisecond)
	if _, err := m.Get(ctx, sess.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after idle timeout", err)
	}
}

func TestSessionManager_Destroy(t *testing.T) {
	m := NewSessionManager(newMemSessionStore(), time.Minute)
	ctx := context.Background()

	sess, err := m.Create(ctx, "user-1", "coach@titans.com", twoContexts())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := m.Destroy(ctx, sess.Token); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if _, err := m.Get(ctx, sess.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after destroy", err)
	}
}
