package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "List the supported sensors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tools, err := newToolchain()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, sensor := range tools.registry.ListSensors() {
			defaultPin := "-"
			if sensor.DefaultPin != nil {
				defaultPin = sensor.DefaultPin.String()
			}
			quantities := make([]string, 0, len(sensor.Quantities))
			for _, q := range sensor.Quantities {
				quantities = append(quantities, string(q))
			}
			fmt.Fprintf(out, "%s %-8s default pin %-3s %s\n",
				headerColor.Sprintf("%-8s", sensor.Type), sensor.PinClass, defaultPin, strings.Join(quantities, ","))
		}
		return nil
	},
}

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List the supported boards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tools, err := newToolchain()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, board := range tools.registry.ListBoards() {
			networking := "no networking"
			if board.SupportsNetworking {
				networking = "wifi/mqtt"
			}
			fmt.Fprintf(out, "%s max %d sensors, %s, env %s\n",
				headerColor.Sprintf("%-8s", board.ID), board.MaxSensors, networking, board.Platform.Env)
		}
		return nil
	},
}
