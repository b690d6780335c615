package main

import (
	"os"

	"github.com/theapemachine/qreg/qlog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		qlog.Error("qreg failed", "err", err)
		os.Exit(1)
	}
}
