package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/busstop/pkg/config"
	"github.com/matzehuels/busstop/pkg/errors"
)

// configCommand creates the configuration inspection command.
func (c *CLI) configCommand(board *boardFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the stop configuration",
	}

	cmd.AddCommand(c.configPathCommand(board))
	cmd.AddCommand(c.configShowCommand(board))
	cmd.AddCommand(c.configDefaultCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand(board *boardFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file that will be read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.Resolve(board.configPath))
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand(board *boardFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configured stops",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := newStatus(cmd.ErrOrStderr())
			path := config.Resolve(board.configPath)
			cfg, err := config.Load(path)
			if err != nil {
				st.errorf("%s", errors.UserMessage(err))
				st.detailf("File: %s", path)
				return err
			}

			st.keyValue("Config", cfg.Path)
			fmt.Fprintln(cmd.OutOrStdout(), stopsTable(cfg.Stops))
			return nil
		},
	}
}

// configDefaultCommand creates the "config default" subcommand.
func (c *CLI) configDefaultCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Print the built-in configuration, to start a config file from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(config.Default())
			return err
		},
	}
}

func stopsTable(stops []config.Stop) string {
	rows := make([][]string, 0, len(stops))
	for i, s := range stops {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.ID, strconv.Itoa(s.Count)})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "STOP", "ARRIVALS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		}).
		String()
}
