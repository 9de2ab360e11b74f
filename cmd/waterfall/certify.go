package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formalbridge/waterfall/internal/certify"
	"github.com/formalbridge/waterfall/internal/config"
	"github.com/formalbridge/waterfall/internal/storage"
)

func certifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "certify <run-id>",
		Short: "Issue a certificate verification code for a clear audit run",
		Long: `Issue a distribution certificate verification code for a saved audit
run. Certification is refused while the run has unresolved blocking
warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := storage.NewAuditStore(config.DatabasePath())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(ctx); err != nil {
				return err
			}

			code, err := certify.NewVerificationCode()
			if err != nil {
				return err
			}
			if err := store.SetVerificationCode(ctx, args[0], code); err != nil {
				return err
			}

			summary, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("verification code: %s\n", code)
			fmt.Printf("ledger sha256:     %s\n", certify.FormatHash(summary.FileHash))
			fmt.Printf("engine:            %s\n", certify.KernelVersion)
			return nil
		},
	}
}
