// Package console is a line-oriented chat front end over the conversation
// service, for use in a terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PabloGalante/agentlink/internal/app/conversation"
	"github.com/PabloGalante/agentlink/internal/app/workspace"
	"github.com/PabloGalante/agentlink/internal/domain"
)

const prompt = "> "

type Console struct {
	svc          *conversation.Service
	workspaceSvc *workspace.Service
	userID       domain.UserID
}

func New(svc *conversation.Service, workspaceSvc *workspace.Service, userID domain.UserID) *Console {
	return &Console{svc: svc, workspaceSvc: workspaceSvc, userID: userID}
}

// Run starts a session and chats until /quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	started, err := c.svc.StartSession(ctx, conversation.StartSessionInput{
		UserID: c.userID,
		Title:  "console",
	})
	if err != nil {
		return err
	}
	sessionID := started.Session.ID

	fmt.Fprintf(out, "Agent: %s\n", started.Welcome.Text)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/functions":
			PrintFunctions(out, c.svc)
			continue
		case "/state":
			if err := c.printState(ctx, out, sessionID); err != nil {
				return err
			}
			continue
		}

		reply, err := c.svc.SendMessage(ctx, conversation.SendMessageInput{
			SessionID: sessionID,
			UserID:    c.userID,
			Text:      line,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Agent: %s\n", reply.AgentMessage.Text)
		if !reply.Executed.IsNone() {
			fmt.Fprintf(out, "  [%s]\n", c.svc.Registry().Label(reply.Executed))
		}
	}
}

// PrintFunctions writes the capability listing, one function per line.
func PrintFunctions(out io.Writer, svc *conversation.Service) {
	for _, d := range svc.Registry() {
		fmt.Fprintf(out, "%s %s - %s (try: %s)\n", d.Icon, d.Name, d.Description, d.Sample())
	}
}

func (c *Console) printState(ctx context.Context, out io.Writer, id domain.SessionID) error {
	v, err := c.workspaceSvc.Get(ctx, id)
	if err != nil {
		return err
	}

	section(out, "Open Tasks", "Nothing queued - add a new task.", len(v.OpenTasks), func(i int) string {
		return v.OpenTasks[i].Title
	})
	section(out, "Completed", "No finished tasks yet.", len(v.CompletedTasks), func(i int) string {
		return v.CompletedTasks[i].Title
	})
	section(out, "Notes", "Bring ideas here for later.", len(v.Notes), func(i int) string {
		n := v.Notes[i]
		return fmt.Sprintf("%s (%s)", n.Content, n.CreatedAt.Format("2006-01-02 15:04"))
	})
	section(out, "Automations", "Sketch trigger/action pairs to operationalize later.", len(v.Automations), func(i int) string {
		a := v.Automations[i]
		return fmt.Sprintf("%s: when %s, then %s", a.Name, a.Trigger, a.Action)
	})
	return nil
}

func section(out io.Writer, title, empty string, n int, item func(int) string) {
	fmt.Fprintf(out, "%s:\n", title)
	if n == 0 {
		fmt.Fprintf(out, "  %s\n", empty)
		return
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(out, "  - %s\n", item(i))
	}
}
