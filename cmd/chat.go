package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vatly/vatly/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the physics tutor from the command line",
	Long: "With a question, ask once and print the answer. Without one, start a\n" +
		"line-based conversation; type /attach <path> to add an image and /quit to leave.",
	RunE: func(cmd *cobra.Command, args []string) error {
		images, _ := cmd.Flags().GetStringArray("image")

		provider, st, err := openProvider(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		pending, err := loadAttachments(images)
		if err != nil {
			return err
		}

		s := chat.NewSession(provider, chat.DefaultConfig())
		out := cmd.OutOrStdout()

		if len(args) > 0 {
			return ask(cmd, s, out, strings.Join(args, " "), pending)
		}

		fmt.Fprintln(out, s.Transcript()[0].Text)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "" && len(pending) == 0:
				continue
			case line == "/quit" || line == "/exit":
				return nil
			case strings.HasPrefix(line, "/attach "):
				atts, err := loadAttachments([]string{strings.TrimSpace(strings.TrimPrefix(line, "/attach "))})
				if err != nil {
					fmt.Fprintln(out, "Không thể đính kèm:", err)
					continue
				}
				pending = append(pending, atts...)
				continue
			}
			if err := ask(cmd, s, out, line, pending); err != nil {
				var chatErr *chat.ChatError
				if !errors.As(err, &chatErr) {
					fmt.Fprintln(out, err)
				}
				continue
			}
			pending = nil
		}
	},
}

func ask(cmd *cobra.Command, s *chat.Session, w io.Writer, text string, atts []chat.Attachment) error {
	msg, images := chat.Compose(text, atts...)
	reply, err := s.Send(cmd.Context(), msg, images...)
	if reply.Text != "" {
		fmt.Fprintln(w, reply.Text)
	}
	return err
}

func loadAttachments(paths []string) ([]chat.Attachment, error) {
	var atts []chat.Attachment
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		att, err := chat.Attach(filepath.Base(p), data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		atts = append(atts, att)
	}
	return atts, nil
}

func init() {
	chatCmd.Flags().StringArray("image", nil, "Image file to attach to the first question (repeatable)")
}
