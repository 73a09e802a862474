package main

import (
	"encoding/json"
	"flag"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	klog "k8s.io/klog/v2"
)

var klogOnce sync.Once

// quietKlog limits klog noise from k8s client-go so command output stays
// machine readable.
func quietKlog() {
	klogOnce.Do(func() {
		klog.InitFlags(nil)
		_ = flag.Set("stderrthreshold", "FATAL")
		_ = flag.Set("v", "0")
		_ = flag.Set("logtostderr", "false")
		_ = flag.Set("alsologtostderr", "false")
	})
}

// findFlag looks up a flag on cmd or any of its parents.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
