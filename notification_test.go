package vtcore

import "testing"

type testNotificationProvider struct {
	titles []string
	bodies []string
}

func (p *testNotificationProvider) Notify(title, body string) {
	p.titles = append(p.titles, title)
	p.bodies = append(p.bodies, body)
}

func TestNoopNotification(t *testing.T) {
	var provider NotificationProvider = NoopNotification{}
	provider.Notify("title", "body") // must not panic
}

func TestWithNotificationOSC9(t *testing.T) {
	provider := &testNotificationProvider{}
	term := New(WithNotification(provider))

	term.WriteString("\x1b]9;build finished\x07")

	if len(provider.bodies) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(provider.bodies))
	}
	if provider.bodies[0] != "build finished" {
		t.Errorf("expected body %q, got %q", "build finished", provider.bodies[0])
	}
}

func TestWithNotificationOSC777(t *testing.T) {
	provider := &testNotificationProvider{}
	term := New(WithNotification(provider))

	term.WriteString("\x1b]777;notify;Build Result;Succeeded\x07")

	if len(provider.bodies) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(provider.bodies))
	}
	if provider.titles[0] != "Build Result" || provider.bodies[0] != "Succeeded" {
		t.Errorf("unexpected title/body: %q / %q", provider.titles[0], provider.bodies[0])
	}
}

func TestDefaultNotificationProviderIsNoop(t *testing.T) {
	term := New()
	// Must not panic without an installed provider.
	term.WriteString("\x1b]9;hello\x07")
}

func TestNotificationMiddleware(t *testing.T) {
	provider := &testNotificationProvider{}
	var intercepted string

	term := New(
		WithNotification(provider),
		WithMiddleware(&Middleware{
			Notification: func(title, body string, next func(string, string)) {
				intercepted = body
				next(title, "["+body+"]")
			},
		}),
	)

	term.WriteString("\x1b]9;hello\x07")

	if intercepted != "hello" {
		t.Errorf("expected middleware to see %q, got %q", "hello", intercepted)
	}
	if len(provider.bodies) != 1 || provider.bodies[0] != "[hello]" {
		t.Errorf("expected provider to receive modified body, got %v", provider.bodies)
	}
}

func TestNotificationMiddlewareBlocks(t *testing.T) {
	provider := &testNotificationProvider{}

	term := New(
		WithNotification(provider),
		WithMiddleware(&Middleware{
			Notification: func(title, body string, next func(string, string)) {
				// next intentionally not called.
			},
		}),
	)

	term.WriteString("\x1b]9;hello\x07")

	if len(provider.bodies) != 0 {
		t.Errorf("expected 0 notifications (blocked by middleware), got %d", len(provider.bodies))
	}
}

func TestMiddlewareMergeNotification(t *testing.T) {
	calls := 0
	mw1 := &Middleware{Bell: func(next func()) { next() }}
	mw2 := &Middleware{
		Notification: func(title, body string, next func(string, string)) {
			calls++
			next(title, body)
		},
	}
	mw1.Merge(mw2)

	provider := &testNotificationProvider{}
	term := New(WithNotification(provider), WithMiddleware(mw1))
	term.WriteString("\x1b]9;hello\x07")

	if calls != 1 {
		t.Errorf("expected 1 middleware call after merge, got %d", calls)
	}
	if len(provider.bodies) != 1 {
		t.Errorf("expected 1 provider call, got %d", len(provider.bodies))
	}
}
