package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/qreg"
)

// =============================================================================
// RUN COMMAND
// =============================================================================

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [GATE:target[,control]...]",
		Short: "Apply gates to a fresh register, dump the state and measure once",
		Example: `  qreg run --qubits 2 H:0 CNOT:1,0
  qreg run --qubits 3 X:2 SWAP:0,2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v, map[string]string{"register.qubits": "qubits"})
			if err != nil {
				return err
			}

			reg, err := prepare(cmd, cfg, args, qreg.NewMetrics())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			reg.LogState()
			fmt.Fprintln(out, reg.DumpState())
			fmt.Fprint(out, reg.DumpProbabilities())

			bits, err := reg.MeasureBits()
			if err != nil && !errors.Is(err, qreg.ErrSamplingUnderflow) {
				return err
			}

			fmt.Fprintf(out, "measured: %s (%s)\n", bits, reg.Status())
			return nil
		},
	}

	cmd.Flags().Int("qubits", qreg.MaxQubits, "number of qubits (1-5)")
	return cmd
}

// =============================================================================
// SAMPLE COMMAND
// =============================================================================

func newSampleCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample [GATE:target[,control]...]",
		Short: "Apply gates and print the outcome histogram over many shots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v, map[string]string{"register.qubits": "qubits"})
			if err != nil {
				return err
			}

			shots, _ := cmd.Flags().GetInt("shots")
			metrics := qreg.NewMetrics()

			reg, err := prepare(cmd, cfg, args, metrics)
			if err != nil {
				return err
			}

			histogram, err := reg.Sample(shots)
			if err != nil && !errors.Is(err, qreg.ErrSamplingUnderflow) {
				return err
			}

			outcomes := make([]string, 0, len(histogram))
			for bits := range histogram {
				outcomes = append(outcomes, bits)
			}
			sort.Strings(outcomes)

			out := cmd.OutOrStdout()
			for _, bits := range outcomes {
				fmt.Fprintf(out, "%s %d\n", bits, histogram[bits])
			}

			exported := metrics.ExportMetrics()
			fmt.Fprintf(out, "shots: %d, underflows: %d\n", exported["measurements"], exported["underflows"])
			return nil
		},
	}

	cmd.Flags().Int("qubits", qreg.MaxQubits, "number of qubits (1-5)")
	cmd.Flags().Int("shots", 1024, "number of measurements")
	return cmd
}
