package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/spf13/cobra"
)

var tasksJSON bool

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Print the stored task list",
	Args:  cobra.NoArgs,
	RunE:  runTasks,
}

var addDescription string

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task without opening the interactive list",
	Args:  cobra.ArbitraryArgs,
	RunE:  runAdd,
}

func init() {
	tasksCmd.Flags().BoolVar(&tasksJSON, "json", false, "print the raw stored record")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description (markdown)")
}

func runTasks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	snap := sess.store.Load(cmd.Context())
	return printTasks(cmd.OutOrStdout(), snap.Tasks, tasksJSON)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.store.Load(cmd.Context())
	task, err := sess.store.AddTask(strings.Join(args, " "), addDescription)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %d: %s\n", task.ID, task.Label())
	return nil
}

func printTasks(w io.Writer, tasks []model.Task, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "no tasks")
		return err
	}
	for i, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%d. %s %s", i+1, box, t.Label())
		if strings.TrimSpace(t.Title) != "" && t.Desc() != "" {
			first, _, _ := strings.Cut(t.Desc(), "\n")
			line += " - " + first
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
