// Command mmcc estimates relative arrival times of seismic phases recorded
// in SAC files with multi-component multi-channel cross-correlation.
//
// Usage:
//
//	mmcc run [flags] file.sac ...
//	mmcc info
//	mmcc version
//
// Examples:
//
//	mmcc run data/*.sac
//	mmcc run --band-low 0.5 --band-high 2 --pick a data/*.sac
//	mmcc run --relative single --ref 0 --plot-dir plots data/*.sac
//	mmcc run --config run.json --format json data/*.sac
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
