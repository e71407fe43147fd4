package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leafkeeper/leafkeeper-client/devmode"
)

func newDevserverCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run an in-memory gateway for local development",
		Long: "Serves every gateway route, plus /doctor/predict, from memory. Tokens are\n" +
			"signed with " + devmode.SigningKey + "; never expose it beyond localhost.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return devmode.New().ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:3000", "Listen address")
	return cmd
}

