// examcli runs a timed mock-test attempt in the terminal against the
// attempts API. It is the reference host for the session package: it wires
// a real HTTP store, an interrupt-intercepting guard and a console notifier.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/quizforge/mocktest/internal/logger"
	"github.com/quizforge/mocktest/internal/session"
	"github.com/quizforge/mocktest/internal/session/httpstore"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		baseURL   = flag.String("api", "http://localhost:5000/api", "API base URL")
		token     = flag.String("token", "", "bearer token (skip login)")
		email     = flag.String("email", "", "account email")
		password  = flag.String("password", "", "account password")
		testID    = flag.String("test", "", "test id to create a fresh attempt on")
		attemptID = flag.String("attempt", "", "existing attempt id to resume")
	)
	flag.Parse()
	logger.Init()

	if *testID == "" && *attemptID == "" {
		fmt.Fprintln(os.Stderr, "either -test or -attempt is required")
		os.Exit(2)
	}

	ctx := context.Background()
	client := httpstore.New(*baseURL, *token)
	if *token == "" {
		if *email == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "provide -token, or -email and -password")
			os.Exit(2)
		}
		if err := client.Login(ctx, *email, *password); err != nil {
			log.Fatal().Err(err).Msg("Login failed")
		}
	}

	id := *attemptID
	if id == "" {
		created, err := client.CreateAttempt(ctx, *testID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create attempt")
		}
		id = created
		fmt.Printf("Created attempt %s\n", id)
	}

	guard := newInterruptGuard()
	defer guard.release()

	s := session.New(session.Options{
		Store:    client,
		Notifier: &consoleNotifier{},
		Guard:    guard,
	})
	defer s.Close()

	if err := s.Load(ctx, id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			log.Fatal().Str("attemptID", id).Msg("Attempt not found")
		}
		log.Fatal().Err(err).Msg("Failed to load attempt")
	}

	repl(ctx, s)
}

func repl(ctx context.Context, s *session.Session) {
	in := bufio.NewScanner(os.Stdin)

	if s.Phase() == session.PhaseInstructions {
		fmt.Printf("\n%s\n\nInstructions:\n", s.TestTitle())
		for i, line := range s.Instructions() {
			fmt.Printf("  %d. %s\n", i+1, line)
		}
		fmt.Print("\nType 'start' to begin: ")
		for in.Scan() {
			if strings.TrimSpace(in.Text()) == "start" {
				if err := s.Start(ctx); err != nil {
					fmt.Printf("Could not start: %v\nTry again: ", err)
					continue
				}
				break
			}
			fmt.Print("Type 'start' to begin: ")
		}
	}

	if s.Phase() == session.PhaseSubmitted {
		printResult(s)
		return
	}

	printQuestion(s)
	fmt.Print("> ")
	for in.Scan() {
		if s.Phase() == session.PhaseSubmitted {
			break
		}
		fields := strings.Fields(strings.TrimSpace(strings.ToLower(in.Text())))
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		switch fields[0] {
		case "a", "answer":
			if len(fields) < 2 {
				fmt.Println("usage: answer <option-number>")
				break
			}
			n, err := strconv.Atoi(fields[1])
			q := s.CurrentQuestion()
			if err != nil || n < 1 || n > len(q.Options) {
				fmt.Printf("pick an option between 1 and %d\n", len(q.Options))
				break
			}
			if err := s.SelectAnswer(q.ID, n-1); err != nil {
				fmt.Printf("cannot answer now: %v\n", err)
			}
			printQuestion(s)
		case "m", "mark":
			if err := s.ToggleMark(s.CurrentQuestion().ID); err != nil {
				fmt.Printf("cannot mark now: %v\n", err)
			}
			printQuestion(s)
		case "n", "next":
			s.Next()
			printQuestion(s)
		case "p", "prev":
			s.Previous()
			printQuestion(s)
		case "g", "goto":
			if len(fields) < 2 {
				fmt.Println("usage: goto <question-number>")
				break
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 || n > len(s.Questions()) {
				fmt.Println("no such question")
				break
			}
			s.GoTo(n - 1)
			printQuestion(s)
		case "stats", "palette":
			printPalette(s)
		case "time":
			fmt.Printf("%s remaining\n", formatClock(s.RemainingSeconds()))
		case "submit":
			if confirm(in, "Submit the test now?") {
				if err := s.Submit(ctx, session.TriggerManual); err != nil {
					fmt.Printf("submit failed: %v\n", err)
				}
			}
		case "esc":
			if confirm(in, "Emergency submit: end the test immediately?") {
				if err := s.Submit(ctx, session.TriggerEscape); err != nil {
					fmt.Printf("submit failed: %v\n", err)
				}
			}
		case "help":
			fmt.Println("commands: answer <n>, mark, next, prev, goto <n>, palette, time, submit, esc, help")
		default:
			fmt.Println("unknown command (try 'help')")
		}

		if s.Phase() == session.PhaseSubmitted {
			break
		}
		fmt.Print("> ")
	}

	if s.Phase() == session.PhaseSubmitted {
		printResult(s)
	}
}

func confirm(in *bufio.Scanner, prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	if !in.Scan() {
		return false
	}
	answer := strings.TrimSpace(strings.ToLower(in.Text()))
	return answer == "y" || answer == "yes"
}

func printQuestion(s *session.Session) {
	q := s.CurrentQuestion()
	fmt.Printf("\n[%d/%d] %s\n", s.CurrentIndex()+1, len(s.Questions()), q.Text)
	for i, opt := range q.Options {
		cursor := " "
		if q.SelectedAnswer != nil && *q.SelectedAnswer == i {
			cursor = "*"
		}
		fmt.Printf("  %s %d) %s\n", cursor, i+1, opt)
	}
}

func printPalette(s *session.Session) {
	for i := range s.Questions() {
		fmt.Printf("  q%-3d %s\n", i+1, s.Status(i))
	}
	st := s.QuestionStats()
	fmt.Printf("answered %d | unanswered %d | marked %d | not visited %d\n",
		st.Answered, st.Unanswered, st.Marked, st.NotVisited)
}

func printResult(s *session.Session) {
	r := s.Result()
	if r == nil {
		fmt.Println("\nTest submitted.")
		return
	}
	fmt.Printf("\nScore: %d/%d (%.2f%%)\n", r.Score, r.TotalQuestions, r.Percentage)
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// consoleNotifier prints session events. Ticks are throttled to minute
// boundaries until the final minute.
type consoleNotifier struct {
	lastShown int64
}

func (n *consoleNotifier) PhaseChanged(p session.Phase) {
	if p == session.PhaseSubmitting {
		fmt.Println("\nSubmitting...")
	}
}

func (n *consoleNotifier) Tick(remaining int) {
	if remaining > 60 && remaining%60 != 0 {
		return
	}
	if atomic.SwapInt64(&n.lastShown, int64(remaining)) == int64(remaining) {
		return
	}
	fmt.Printf("\n[%s remaining]\n", formatClock(remaining))
}

func (n *consoleNotifier) Toast(message string) {
	fmt.Printf("\n%s\n", message)
}

// interruptGuard blocks Ctrl-C while an attempt is in progress, standing in
// for the browser's unload/back-navigation interception.
type interruptGuard struct {
	armed atomic.Bool
	ch    chan os.Signal
}

func newInterruptGuard() *interruptGuard {
	g := &interruptGuard{ch: make(chan os.Signal, 1)}
	signal.Notify(g.ch, os.Interrupt)
	go func() {
		for range g.ch {
			if g.armed.Load() {
				fmt.Println("\nThe test is in progress; finish or submit it first (use 'esc' for emergency submit).")
				continue
			}
			os.Exit(130)
		}
	}()
	return g
}

func (g *interruptGuard) Arm()    { g.armed.Store(true) }
func (g *interruptGuard) Disarm() { g.armed.Store(false) }

func (g *interruptGuard) release() {
	signal.Stop(g.ch)
	close(g.ch)
}
