package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"meetscribe/internal/audio"
)

// NewDevicesCmd builds the devices command: list capture devices so the
// user can fill in mic_device / system_device in the config.
func NewDevicesCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List available capture devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := audio.CaptureDevices()
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				fmt.Println("No capture devices found.")
				return nil
			}
			for _, d := range devices {
				marker := " "
				if d.IsDefault {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, d.Name)
			}
			return nil
		},
	}
}
