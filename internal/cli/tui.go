package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/update"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	m := update.NewModel(sess.store,
		update.WithLogger(sess.logger.WithPrefix("ui")),
		update.WithContext(cmd.Context()),
	)
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		sess.logger.Error("program failed", "err", err)
		return fmt.Errorf("taskpad failed: %w", err)
	}
	return nil
}
