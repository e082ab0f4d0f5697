package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the store",
	Long:  `Displays the store root, its unique ID and the latest revision with its message`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		s, _, err := openStore(ctx)
		if err != nil {
			wrapFatalln("open store", err)
			return
		}
		defer func() { _ = s.Close() }()

		info, err := s.Info(ctx)
		if err != nil {
			wrapFatalln("store info", err)
			return
		}
		head, err := s.Log(ctx, info.Head)
		if err != nil {
			wrapFatalln("store log", err)
			return
		}

		fmt.Fprintf(stdout, "    Store: %s\n", params.root.store)
		fmt.Fprintf(stdout, "     UUID: %s\n", color.MagentaString(info.UUID))
		fmt.Fprintf(stdout, " Revision: %s\n", color.YellowString(head.Revision.String()))
		fmt.Fprintf(stdout, "     Date: %s\n", color.YellowString(head.Timestamp.Format(time.RFC3339)))
		if head.TxnID != "" {
			fmt.Fprintf(stdout, "      Txn: %s\n", head.TxnID)
		}
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, head.Message)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
