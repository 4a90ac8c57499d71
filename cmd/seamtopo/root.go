package main

import (
	"os"
	"strings"

	"github.com/fine-structures/seamtopo/internal/objfile"
	"github.com/fine-structures/seamtopo/libseam"
	"github.com/fine-structures/seamtopo/libseam/cache"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli holds the state shared by all subcommands of one invocation.
type cli struct {
	v     *viper.Viper
	store *cache.Store
}

// newRootCmd returns the root command and the state its subcommands share.  The caller
// closes the state once Execute returns, whether or not the command failed.
func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{v: viper.New()}
	root := &cobra.Command{
		Use:           "seamtopo",
		Short:         "UV seam topology and curve pairing for OBJ meshes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig(cmd)
		},
	}

	def := seam.DefaultOpts()
	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default .seamtopo.yaml)")
	flags.Float64("tolerance", def.Tolerance, "squared uv distance below which two points correspond")
	flags.Float64("relaxed-tolerance", def.RelaxedTolerance, "tolerance used with --relaxed")
	flags.Bool("relaxed", false, "match with the relaxed tolerance (meshes edited since flattening)")
	flags.Int("walk-step-limit", def.WalkStepLimit, "max steps of one border walk")
	flags.Int("loop-retry-limit", def.LoopRetryLimit, "max closed loop searches per analysis")
	flags.Bool("strict-pairing", def.StrictPairing, "fail when a curve point cannot be re-found")
	flags.String("cache-dir", "", "badger directory caching analyses (empty disables the cache)")

	root.AddCommand(
		c.analyzeCmd(),
		c.bindCmd(),
		c.refindCmd(),
	)
	return root, c
}

// close releases the cache store opened by engine, if any.
func (c *cli) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

func (c *cli) initConfig(cmd *cobra.Command) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		c.v.SetConfigFile(cfgFile)
	} else {
		c.v.SetConfigName(".seamtopo")
		c.v.SetConfigType("yaml")
		c.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			c.v.AddConfigPath(home)
		}
	}
	c.v.SetEnvPrefix("SEAMTOPO")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "reading config")
		}
	}
	return nil
}

func (c *cli) opts() seam.Opts {
	return seam.Opts{
		Tolerance:        c.v.GetFloat64("tolerance"),
		RelaxedTolerance: c.v.GetFloat64("relaxed-tolerance"),
		Relaxed:          c.v.GetBool("relaxed"),
		WalkStepLimit:    c.v.GetInt("walk-step-limit"),
		LoopRetryLimit:   c.v.GetInt("loop-retry-limit"),
		StrictPairing:    c.v.GetBool("strict-pairing"),
	}.Normalize()
}

// engine returns an Engine configured from flags, env and config file.
func (c *cli) engine() (*libseam.Engine, error) {
	engine := libseam.NewEngine(c.opts())
	if dir := c.v.GetString("cache-dir"); dir != "" {
		store, err := cache.Open(cache.Opts{DbPathName: dir})
		if err != nil {
			return nil, errors.Wrapf(err, "opening cache %q", dir)
		}
		c.store = store
		engine.Cache = store
	}
	return engine, nil
}

func loadMesh(pathname string) (*topo.Snapshot, error) {
	X, err := objfile.Load(pathname)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %q", pathname)
	}
	return X, nil
}
