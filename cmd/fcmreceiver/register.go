package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyxwatch/fcmreceiver/internal/httpx"
	"github.com/nyxwatch/fcmreceiver/pkg/register"
)

func newRegisterCmd() *cobra.Command {
	var senderID, projectID, apiKey, appID, vapidKey, outFile string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Run the registration ceremony and persist the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = senderID // accepted for parity with the server-key-as-sender form field; the library uses its own constant
			reg, err := register.Register(cmd.Context(), httpx.DefaultClient(), register.Options{
				FirebaseAppID:     appID,
				FirebaseProjectID: projectID,
				FirebaseAPIKey:    apiKey,
				VapidKey:          vapidKey,
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(reg, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(outFile, out, 0o600); err != nil {
				return err
			}

			fmt.Printf("registered; fcm_token=%s wrote %s\n", reg.FCMToken, outFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&senderID, "sender-id", "", "GCM sender id (unused; the library's published org.chromium.linux key is used verbatim)")
	cmd.Flags().StringVar(&projectID, "project-id", "", "Firebase project id")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Firebase API key")
	cmd.Flags().StringVar(&appID, "app-id", "", "Firebase app id")
	cmd.Flags().StringVar(&vapidKey, "vapid-key", "", "optional application server (VAPID) public key")
	cmd.Flags().StringVar(&outFile, "out", "registration.json", "file to write the persisted Registration to")
	_ = cmd.MarkFlagRequired("project-id")
	_ = cmd.MarkFlagRequired("api-key")
	_ = cmd.MarkFlagRequired("app-id")

	return cmd
}
