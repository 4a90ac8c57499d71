package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plan-systems/klog"
)

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	root, c := newRootCmd()
	root.PersistentFlags().AddGoFlagSet(fset)
	err := root.Execute()
	if cerr := c.close(); err == nil {
		err = cerr
	}
	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
