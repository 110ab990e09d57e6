package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyxwatch/fcmreceiver/internal/httpx"
	"github.com/nyxwatch/fcmreceiver/pkg/mcs"
	"github.com/nyxwatch/fcmreceiver/pkg/register"
)

func newListenCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Load a persisted Registration, open a connection, and print messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListen(cmd.Context(), file)
		},
	}

	cmd.Flags().StringVar(&file, "file", "registration.json", "persisted Registration file from \"register\"")
	return cmd
}

func runListen(ctx context.Context, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	var reg register.Registration
	if err := json.Unmarshal(data, &reg); err != nil {
		return err
	}

	doer := httpx.DefaultClient()
	checked, err := reg.Session.Checkin(ctx, doer)
	if err != nil {
		return err
	}

	var receivedPersistentIDs []string
	conn, err := checked.NewConnection(ctx, receivedPersistentIDs)
	if err != nil {
		return err
	}
	defer conn.Close()

	stream := mcs.Wrap(conn, reg.Keys)
	for {
		msg, err := stream.Next(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, "stream error:", err)
			continue
		}
		if msg == nil {
			fmt.Println("stream closed")
			return nil
		}

		switch {
		case msg.HeartbeatPing != nil:
			if _, err := conn.Conn().Write(mcs.HeartbeatAckFrame()); err != nil {
				return err
			}
		case msg.Data != nil:
			fmt.Printf("message persistent_id=%s body=%q\n", msg.Data.PersistentID, msg.Data.Body)
		case msg.Other != nil:
			fmt.Printf("other tag=%d len=%d\n", msg.Other.Tag, len(msg.Other.Payload))
		}
	}
}
