package main

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/qreg"
	"github.com/theapemachine/qreg/qlog"
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

func newRootCmd() *cobra.Command {
	v := qreg.NewViper()

	rootCmd := &cobra.Command{
		Use:           "qreg",
		Short:         "Simulate a quantum register of up to five qubits",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Uint64("seed", 0, "seed for the random source, 0 seeds from the clock")

	rootCmd.AddCommand(
		newRunCmd(v),
		newSampleCmd(v),
		newBB84Cmd(v),
	)

	return rootCmd
}

/*
loadConfig reads the optional config file, binds the given command flags
onto their viper keys and applies the resolved log level.
*/
func loadConfig(cmd *cobra.Command, v *viper.Viper, bindings map[string]string) (*qreg.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	bindings["log.level"] = "log-level"

	for key, flag := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind --%s: %w", flag, err)
		}
	}

	cfg := qreg.LoadConfig(v)

	if err := qlog.Default().SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return cfg, nil
}

func randomSource(cmd *cobra.Command) *rand.Rand {
	seed, _ := cmd.Flags().GetUint64("seed")
	if seed == 0 {
		return nil
	}

	return rand.New(rand.NewPCG(seed, seed))
}

// =============================================================================
// GATE INSTRUCTIONS
// =============================================================================

type instruction struct {
	gate    qreg.Gate
	target  int
	control []int
}

// parseInstruction reads GATE:target[,control], e.g. "H:0" or "CNOT:1,0".
func parseInstruction(raw string) (instruction, error) {
	name, operands, ok := strings.Cut(raw, ":")
	if !ok {
		return instruction{}, fmt.Errorf("instruction %q: expected GATE:target[,control]", raw)
	}

	gate, err := qreg.ParseGate(name)
	if err != nil {
		return instruction{}, err
	}

	fields := strings.Split(operands, ",")
	if len(fields) > 2 {
		return instruction{}, fmt.Errorf("instruction %q: too many operands", raw)
	}

	indices := make([]int, len(fields))
	for i, field := range fields {
		if indices[i], err = strconv.Atoi(strings.TrimSpace(field)); err != nil {
			return instruction{}, fmt.Errorf("instruction %q: %w", raw, err)
		}
	}

	return instruction{gate: gate, target: indices[0], control: indices[1:]}, nil
}

// prepare builds a register from cfg and applies every instruction in order.
func prepare(cmd *cobra.Command, cfg *qreg.Config, args []string, metrics *qreg.Metrics) (*qreg.Register, error) {
	opts := cfg.RegisterOptions()
	opts = append(opts, qreg.WithMetrics(metrics))
	if src := randomSource(cmd); src != nil {
		opts = append(opts, qreg.WithRandomSource(src))
	}

	reg, err := qreg.NewRegister(cfg.Qubits, opts...)
	if err != nil {
		return nil, err
	}

	for _, raw := range args {
		inst, err := parseInstruction(raw)
		if err != nil {
			return nil, err
		}

		if err := reg.ApplyGate(inst.gate, inst.target, inst.control...); err != nil {
			return nil, err
		}
	}

	return reg, nil
}
