package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// Root greets the user, starts the connectivity watcher, and hands control
// to the REPL. With a restored session it goes straight to the command
// loop; otherwise the user is expected to run login or signup.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to DevBoard CLI (type 'help' for commands)")

	if cur, ok := a.sessions.Current(); ok {
		printlnFn(fmt.Sprintf("Welcome back, %s!", cur.User.FullName()))
		if !cur.User.OnboardingComplete {
			printlnFn("Your profile setup is unfinished. Run 'onboard' to resume.")
		}
	}

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
