// Package navigator provides stack-based page navigation with animated
// transitions.
//
// A Navigator owns a stack of pages. Each push loads a page template by
// locator, binds it under a child scope, appends its element to the
// container and hands both pages to an Animator. Pushes, pops and resets
// are serialized by a DoorLock: a request made while a transition is
// running waits its turn, and requests run in the order they were made.
//
// # Basic Usage
//
//	resolver := content.NewResolver(content.NewHTTPFetcher("https://example.com/pages/"))
//	nav := navigator.New(view.NewContainer(), resolver)
//
//	nav.OnPostPush(func(e *navigator.PushEvent) {
//	    log.Println("now showing", e.EnterPage.Name)
//	})
//
//	// Push with the registry's "default" slide animation
//	_ = nav.PushPage("home.html", nil)
//
//	// Push with a named animation and page parameters
//	_ = nav.PushPage("detail.html", &navigator.PushOptions{
//	    Animation: "none",
//	    Params:    map[string]any{"title": "Portal"},
//	})
//
//	// Wait for both pushes to settle
//	_ = nav.WaitIdle(ctx)
//
// # Canceling Pops
//
// Handlers registered with OnPrePop run before a pop is queued and may
// cancel it, for example to confirm discarding unsaved input:
//
//	nav.OnPrePop(func(e *navigator.PrePopEvent) {
//	    if dirty {
//	        e.Cancel()
//	    }
//	})
//
// # Custom Animators
//
// Animators are registered by name and must call done exactly once:
//
//	_ = navigator.RegisterAnimator("fade", navigator.AnimatorFuncs{
//	    PushFunc: func(enter, leave *navigator.PageRecord, done func()) { ... },
//	    PopFunc:  func(enter, leave *navigator.PageRecord, done func()) { ... },
//	})
//
// An animator that never calls done keeps the navigator locked; every later
// push, pop and reset stays queued behind it.
//
// # Event Order
//
// An operation releases the lock before it emits postPush or postPop, and
// the release starts the next queued operation right away. When that
// operation completes synchronously (a cached page with no insert delay, or
// an animator that calls done immediately) its event fires first: a pop
// queued behind a push can deliver postPop before the postPush of the page
// it removed. Handlers that need the final state should read GetPages
// rather than count events.
package navigator
