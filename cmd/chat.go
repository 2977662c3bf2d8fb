package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/danomnoms/server/internal/agent/model"
	"github.com/spf13/cobra"
)

var chatThreadID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := buildApp(ctx, appCfg)
		if err != nil {
			return err
		}
		defer a.Close()
		if a.agent == nil {
			return errors.New("GEMINI_API_KEY is not set")
		}

		out := cmd.OutOrStdout()
		threadID := chatThreadID
		scanner := bufio.NewScanner(os.Stdin)
		fmt.Fprintln(out, "Type a message, or \"exit\" to quit.")
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				return nil
			}

			reply, err := a.agent.Chat(ctx, model.ChatInput{Prompt: line, ThreadID: threadID})
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				continue
			}
			threadID = reply.ThreadID
			fmt.Fprintf(out, "%s\n\n", reply.Response)
		}
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatThreadID, "thread", "", "resume an existing thread id")
}
