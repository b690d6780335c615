package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/qreg/bb84"
)

// =============================================================================
// BB84 COMMAND
// =============================================================================

func newBB84Cmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bb84",
		Short: "Negotiate a key with the BB84 photon exchange simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v, map[string]string{
				"bb84.key_size":      "key-size",
				"bb84.max_attempts":  "max-attempts",
				"bb84.photon_factor": "photon-factor",
				"bb84.strategy":      "strategy",
				"bb84.photon_step":   "photon-step",
			})
			if err != nil {
				return err
			}

			strategy, err := bb84.NewStrategy(cfg.Strategy, cfg.PhotonFactor, cfg.PhotonStep)
			if err != nil {
				return err
			}

			var serverSrc, clientSrc bb84.Source
			if src := randomSource(cmd); src != nil {
				serverSrc = src
				clientSrc = src
			}

			server, err := bb84.NewServer(cfg.KeySize, serverSrc)
			if err != nil {
				return err
			}

			result, err := bb84.Negotiate(
				server,
				bb84.NewClient(clientSrc),
				strategy,
				cfg.MaxAttempts,
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "key: %x\nattempts: %d, photons: %d\n", result.Key, result.Attempts, result.Photons)
			return nil
		},
	}

	cmd.Flags().Int("key-size", 128, "key size in bits, multiple of 8")
	cmd.Flags().Int("max-attempts", 16, "maximum number of exchanges")
	cmd.Flags().Int("photon-factor", 2, "photons per key bit on the first exchange")
	cmd.Flags().String("strategy", "exponential", "photon growth between exchanges: exponential or linear")
	cmd.Flags().Int("photon-step", 64, "photons added per exchange by the linear strategy")
	return cmd
}
