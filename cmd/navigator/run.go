package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/platform/desktop"
	"github.com/BrandonKowalski/navigator/pkg/navigator/view"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scripted navigation",
	Long:  `Loads a YAML script of push, pop and reset steps, queues them on a navigator and prints the final page stack.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scriptPath, _ := cmd.Flags().GetString("script")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		window, _ := cmd.Flags().GetBool("window")

		f, err := os.Open(scriptPath)
		if err != nil {
			return err
		}
		defer f.Close()

		script, err := LoadScript(f)
		if err != nil {
			return err
		}

		nav, err := newNavigator(view.NewContainer())
		if err != nil {
			return err
		}

		if window {
			err = runWindowed(nav, script, timeout)
		} else {
			err = runHeadless(nav, script, timeout)
		}
		if err != nil {
			return err
		}

		printStack(cmd.OutOrStdout(), nav)
		return nil
	},
}

func newNavigator(container view.Element) (*navigator.Navigator, error) {
	resolver, err := config.Resolver()
	if err != nil {
		return nil, err
	}
	opts, err := config.Options()
	if err != nil {
		return nil, err
	}

	logger := navigator.GetLogger()
	opts = append(opts, navigator.WithErrorHandler(func(err error) {
		logger.Error("navigation failed", "error", err)
	}))

	nav := navigator.New(container, resolver, opts...)
	nav.OnPostPush(func(e *navigator.PushEvent) {
		logger.Info("pushed", "page", e.EnterPage.Name, "depth", nav.Len(), "took", e.CompletedAt.Sub(e.RequestedAt))
	})
	nav.OnPostPop(func(e *navigator.PopEvent) {
		logger.Info("popped", "page", e.LeavePage.Name, "depth", nav.Len(), "took", e.CompletedAt.Sub(e.RequestedAt))
	})
	return nav, nil
}

// runHeadless queues the steps in order. A pop checks the depth when it is
// called, so it first waits for the pushes queued ahead of it to land.
func runHeadless(nav *navigator.Navigator, script *Script, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger := navigator.GetLogger()
	for _, step := range script.Steps {
		if step.Pop {
			if err := nav.WaitIdle(ctx); err != nil {
				return err
			}
		}
		if err := step.Run(nav); err != nil {
			logger.Warn("step rejected", "step", step.String(), "error", err)
		}
	}
	return nav.WaitIdle(ctx)
}

// runWindowed runs one step at a time and renders until its transition
// settled.
func runWindowed(nav *navigator.Navigator, script *Script, timeout time.Duration) error {
	container, ok := nav.Container().(*view.Node)
	if !ok {
		return fmt.Errorf("container cannot be drawn")
	}

	win, err := desktop.OpenWindow("navigator", 1024, 768, desktop.WindowOptions{Resizable: true})
	if err != nil {
		return err
	}
	defer win.Close()

	compositor, err := desktop.NewCompositor(win.Renderer, desktop.DefaultTheme())
	if err != nil {
		return err
	}
	defer compositor.Close()

	frame := func() bool {
		w, h := win.Size()
		compositor.Draw(container, w, h)
		win.Present()
		return !win.PollQuit()
	}

	logger := navigator.GetLogger()
	deadline := time.Now().Add(timeout)
	for _, step := range script.Steps {
		if err := step.Run(nav); err != nil {
			logger.Warn("step rejected", "step", step.String(), "error", err)
		}
		for nav.Busy() {
			if time.Now().After(deadline) {
				return context.DeadlineExceeded
			}
			if !frame() {
				return nil
			}
		}
		// Linger so each page is visible before the next step.
		for end := time.Now().Add(500 * time.Millisecond); time.Now().Before(end); {
			if !frame() {
				return nil
			}
		}
	}
	return nil
}

func printStack(w io.Writer, nav *navigator.Navigator) {
	pages := nav.GetPages()
	fmt.Fprintf(w, "%d page(s)\n", len(pages))
	for i := len(pages) - 1; i >= 0; i-- {
		p := pages[i]
		title := ""
		if p.Controller != nil {
			title = p.Controller.Title()
		}
		fmt.Fprintf(w, "  %d. %s %q\n", i+1, p.Name, title)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("script", "s", "", "YAML script of navigation steps")
	runCmd.Flags().Duration("timeout", 30*time.Second, "Maximum time to wait for the navigation to settle")
	runCmd.Flags().BoolP("window", "w", false, "Render the transitions in an SDL window")
	_ = runCmd.MarkFlagRequired("script")
}
