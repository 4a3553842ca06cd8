package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	writinghttp "github.com/programme-lv/writing/writing/http"
	"github.com/programme-lv/writing/writing/srvc"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

func newListCmd() *cobra.Command {
	var userID string
	var asJson bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a user's writing submissions as the API returns them",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, closeStore, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			subms, err := srvc.NewWritingSrvc(store).ListUserSubms(cmd.Context(), userID)
			if err != nil {
				return err
			}
			views := writinghttp.MapSubmViews(subms)
			if asJson {
				return printJson(cmd.OutOrStdout(), views)
			}
			printTable(cmd.OutOrStdout(), userID, views)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "User id (required)")
	cmd.Flags().BoolVar(&asJson, "json", false, "Print the raw response body")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func printJson(w io.Writer, views []writinghttp.SubmissionView) error {
	b, err := json.MarshalIndent(writinghttp.ListSubmissionsResponse{Submissions: views}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printTable(w io.Writer, userID string, views []writinghttp.SubmissionView) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d submissions for %s", len(views), userID)))
	if len(views) == 0 {
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CREATED", "DIFFICULTY", "TOPIC", "WORDS", "EVALUATED", "TEXT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			return cellStyle
		})
	for _, v := range views {
		t.Row(
			v.CreatedAt,
			v.Difficulty,
			v.Topic,
			strconv.Itoa(v.WordCount),
			strconv.FormatBool(string(v.Evaluation) != "null"),
			truncate(v.UserText, 40),
		)
	}
	fmt.Fprintln(w, t.Render())
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
