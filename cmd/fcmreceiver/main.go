// Command fcmreceiver is a thin demo CLI over the library's core: run
// the registration ceremony once and persist the result, then
// reconnect with it and print each message as it arrives. It is
// ambient plumbing outside the library's tested core, grounded on the
// teacher's examples/register and examples/listener.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fcmreceiver",
		Short: "Register and listen for FCM web push messages as a Chrome-on-Android device",
	}
	root.AddCommand(newRegisterCmd(), newListenCmd())
	return root
}
