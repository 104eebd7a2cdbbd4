package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/lukaszgryglicki/snaptrace/internal/snaptrace"
	"github.com/lukaszgryglicki/snaptrace/internal/viewer"
)

func main() {
	snaptrace.Debug = os.Getenv("DEBUG") != ""
	snaptrace.PNG = os.Getenv("PNG") != ""
	snaptrace.RAW = os.Getenv("RAW") != ""
	snaptrace.AlwaysBVH = os.Getenv("ALWAYS_BVH") != ""
	snaptrace.NeverBVH = os.Getenv("NEVER_BVH") != ""
	snaptrace.DumpBVH = os.Getenv("DUMP_BVH") != ""
	view := os.Getenv("VIEW") != ""
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	if len(os.Args) < 2 {
		fmt.Printf("Usage: %s trajectory.{json,yaml} [out.gif] [config.{json,yaml,ini}]\n", os.Args[0])
		os.Exit(1)
	}
	traj := os.Args[1]
	out := "snaptrace.gif"
	if len(os.Args) > 2 {
		out = os.Args[2]
	}
	cfgPath := ""
	if len(os.Args) > 3 {
		cfgPath = os.Args[3]
	}

	var displays []snaptrace.Display
	if view {
		cfg, err := snaptrace.LoadConfig(cfgPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		displays = append(displays, viewer.NewWindow(cfg.View))
	}
	if err := snaptrace.Run(traj, out, cfgPath, displays...); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
