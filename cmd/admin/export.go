package main

import (
	"fmt"

	"github.com/programme-lv/writing/export"
	"github.com/programme-lv/writing/s3bucket"
	"github.com/programme-lv/writing/writing/srvc"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var userID, bucketName, key string
	var overwrite, list bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload a user's submissions to S3 as zstd compressed JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, closeStore, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			bucket, err := s3bucket.NewS3Bucket(cmd.Context(), cfg.AwsRegion, bucketName)
			if err != nil {
				return err
			}
			exporter := export.NewExporter(srvc.NewWritingSrvc(store), bucket)

			if list {
				keys, err := exporter.ListExports(cmd.Context(), userID)
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			}

			url, err := exporter.ExportUser(cmd.Context(), userID, key, overwrite)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "User id (required)")
	cmd.Flags().StringVarP(&bucketName, "bucket", "b", "", "Destination S3 bucket (required)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Object key (defaults to writing-exports/<user>/<time>.json.zst)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing object")
	cmd.Flags().BoolVar(&list, "list", false, "List earlier exports instead of creating one")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("bucket")
	return cmd
}
