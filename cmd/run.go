package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/XSaadiX/Quiz-app/internal/app"
)

// runApp builds dependencies, restores progress and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	q, restored, err := d.newQuiz(contextOf(cmd))
	if err != nil {
		return err
	}
	d.logger.Info("starting quiz",
		zap.String("session", q.SessionID()),
		zap.Int("questions", q.Total()),
		zap.Bool("resumed", restored))

	return app.Run(q, d.logger)
}
