package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezchajim/azilut/internal/model"
)

var (
	sendContent   string
	sendPurpose   string
	sendFrom      string
	sendTo        string
	sendQuestions []string
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Run one message through the admission gate",
	Long: `Send constructs a message, normalizes it, validates its purpose
anchoring, and on acceptance delivers it to the recipient's mailbox.
The verdict and every terminology change are printed either way.

Example:
  azilut send --from manuscript-proc --to validator \
    --purpose "um die Schöpfungsabsicht im unendlichen Licht zu erkennen" \
    --content "Text zur Validierung" \
    --question cause="weil alles emaniert"`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendContent, "content", "", "message content")
	sendCmd.Flags().StringVar(&sendPurpose, "purpose", "", "stated purpose (empty means not yet stated)")
	sendCmd.Flags().StringVar(&sendFrom, "from", "", "sender module id")
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient module id")
	sendCmd.Flags().StringArrayVar(&sendQuestions, "question", nil, "additional question as kind=text (repeatable)")
	_ = sendCmd.MarkFlagRequired("from")
	_ = sendCmd.MarkFlagRequired("to")
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg.Output.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	g, err := buildGate(cfg, logger)
	if err != nil {
		return err
	}

	msg := model.NewMessage(sendContent, sendPurpose, sendFrom, sendTo)
	for _, q := range sendQuestions {
		kind, text, ok := strings.Cut(q, "=")
		if !ok {
			return fmt.Errorf("invalid --question %q (want kind=text)", q)
		}
		msg.SetQuestion(model.QuestionKind(kind), text)
	}

	outcome := g.Submit(context.Background(), msg)

	fmt.Printf("state:  %s\n", outcome.State)
	fmt.Printf("score:  %.2f (anchored: %v)\n", outcome.Verdict.Score, outcome.Verdict.Anchored)
	if len(outcome.ContentChanges) > 0 || len(outcome.PurposeChanges) > 0 {
		fmt.Printf("rewrites: %d in content, %d in purpose\n", len(outcome.ContentChanges), len(outcome.PurposeChanges))
	}

	if outcome.Rejected() {
		fmt.Printf("missing: %s\n", strings.Join(outcome.Verdict.MissingAspects, "; "))
		for _, suggestion := range outcome.Verdict.Remediation {
			fmt.Printf("  - %s\n", suggestion)
		}
		return fmt.Errorf("message rejected (score %.2f)", outcome.Verdict.Score)
	}

	fmt.Printf("tag:    %s\n", msg.InterpretationTag)
	fmt.Printf("grade:  %d\n", msg.SpiralGrade)
	fmt.Printf("queued: %d message(s) for %s\n", g.Router().Pending(sendTo), sendTo)
	return nil
}
