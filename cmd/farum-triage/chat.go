package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

var chatSessionID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the engine from the terminal",
	Long: `Starts an interactive session on stdin/stdout.

Commands:
  /checkin   start the 5-step wellness check-in
  /quit      leave`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := buildEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer eng.Close()

		id := domain.SessionID(chatSessionID)
		if id == "" {
			id = domain.SessionID(uuid.NewString())
		}
		return runChat(cmd.Context(), eng, id, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatSessionID, "session", "", "resume this session id")
}

// chatEngine is what the REPL needs from the conversation service.
type chatEngine interface {
	ProcessMessage(ctx context.Context, id domain.SessionID, text string) (*domain.EngineResponse, error)
	StartCheckIn(ctx context.Context, id domain.SessionID) (*domain.EngineResponse, error)
}

func runChat(ctx context.Context, eng chatEngine, id domain.SessionID, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "session %s. Type /checkin for a check-in, /quit to leave.\n", id)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		var (
			resp *domain.EngineResponse
			err  error
		)
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/checkin":
			resp, err = eng.StartCheckIn(ctx, id)
		default:
			resp, err = eng.ProcessMessage(ctx, id, line)
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		printResponse(out, resp)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func printResponse(out io.Writer, resp *domain.EngineResponse) {
	fmt.Fprintln(out, resp.ReplyText)

	var tags []string
	if resp.CrisisTier != domain.TierNone {
		tags = append(tags, "crisis="+resp.CrisisTier.String())
	}
	if resp.CheckIn != nil {
		tags = append(tags, fmt.Sprintf("checkin=%d/5", resp.CheckIn.Step))
	}
	if resp.ShowAuxiliaryAction {
		tags = append(tags, "music")
	}
	if len(tags) > 0 {
		fmt.Fprintf(out, "  [%s]\n", strings.Join(tags, " "))
	}
}

