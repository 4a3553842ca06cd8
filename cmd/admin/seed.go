package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/programme-lv/writing/writing/domain"
	"github.com/spf13/cobra"
)

type seedEntry struct {
	Difficulty string          `json:"difficulty"`
	Topic      string          `json:"topic"`
	PromptText string          `json:"promptText"`
	UserText   string          `json:"userText"`
	CreatedAt  *time.Time      `json:"createdAt,omitempty"`
	Evaluation json.RawMessage `json:"evaluation,omitempty"`
}

func (e seedEntry) toDomain(userID string) domain.WritingSubm {
	createdAt := time.Now().UTC()
	if e.CreatedAt != nil {
		createdAt = e.CreatedAt.UTC()
	}
	eval := e.Evaluation
	if string(eval) == "null" {
		eval = nil
	}
	return domain.WritingSubm{
		UUID:       uuid.New(),
		UserID:     userID,
		CreatedAt:  createdAt,
		Difficulty: e.Difficulty,
		Topic:      e.Topic,
		PromptText: e.PromptText,
		UserText:   e.UserText,
		WordCount:  domain.CountWords(e.UserText),
		Evaluation: eval,
	}
}

func readSeedFile(r io.Reader) ([]seedEntry, error) {
	var entries []seedEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return entries, nil
}

func newSeedCmd() *cobra.Command {
	var userID, file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store writing submissions for a user from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			entries, err := readSeedFile(f)
			if err != nil {
				return err
			}

			_, store, closeStore, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			for _, e := range entries {
				if err := store.StoreSubm(cmd.Context(), e.toDomain(userID)); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d submissions for %s\n", len(entries), userID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "Owner user id (required)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON array of submissions (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
