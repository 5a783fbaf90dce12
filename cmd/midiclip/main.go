package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ingyamilmolinar/midiclip/core/clip"
	"github.com/ingyamilmolinar/midiclip/internal/config"
	"github.com/ingyamilmolinar/midiclip/internal/host"
	game_log "github.com/ingyamilmolinar/midiclip/internal/log"
	"github.com/ingyamilmolinar/midiclip/internal/ui"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	smfPath    string
	track      int
	width      int
	height     int
	tempo      int
	logLevel   string
	hostID     string
}

func main() {
	cmd, _ := newRootCmd()
	cobra.CheckErr(cmd.Execute())
}

func newRootCmd() (*cobra.Command, *options) {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "midiclip",
		Short: "Piano-roll clip region editor",
		Long: `midiclip draws a MIDI clip as a piano roll and lets you drag and
resize the visible region over it. In the browser it mounts into the host
page and drives the sequencer plugin's transport.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.config(cmd)
			if err != nil {
				return err
			}
			return run(cfg, *o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "JSON config file")
	f.StringVar(&o.smfPath, "smf", "", "Standard MIDI File to show instead of the demo clip")
	f.IntVar(&o.track, "track", 0, "track of --smf to show")
	f.IntVar(&o.width, "width", 0, "surface width in px")
	f.IntVar(&o.height, "height", 0, "surface height in px")
	f.IntVar(&o.tempo, "tempo", 0, "initial tempo in BPM")
	f.StringVar(&o.logLevel, "log-level", "", "DEBUG, INFO, ERROR or NONE")
	f.StringVar(&o.hostID, "host-element", "", "id of the page element to mount into")
	return cmd, o
}

// config loads the file config, then applies the flags the user set.
func (o *options) config(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	f := cmd.Flags()
	if f.Changed("width") {
		cfg.Width = o.width
	}
	if f.Changed("height") {
		cfg.Height = o.height
	}
	if f.Changed("tempo") {
		cfg.Tempo = o.tempo
	}
	if f.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if f.Changed("host-element") {
		cfg.HostElementID = o.hostID
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config, o options) error {
	level, err := game_log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := game_log.New(os.Stderr, level)
	mainLog := logger.Named("MAIN")

	state := demoClip()
	if o.smfPath != "" {
		if state, err = clip.ReadSMFFile(o.smfPath, o.track); err != nil {
			return err
		}
		mainLog.Infof("loaded %d notes from %s", len(state.Notes()), o.smfPath)
	}

	id := uuid.NewString()
	actx, sched, err := host.Bind(cfg.AudioContextVar, cfg.SchedulerFunc, logger)
	if err != nil {
		mainLog.Warnf("%v; transport events will only be logged", err)
		actx, sched = host.NewClockContext(), host.NewLogScheduler(logger)
	}
	transport := host.NewTransport(actx, sched, host.TransportOptions{
		Tempo:              float64(cfg.Tempo),
		TimeSigNumerator:   cfg.TimeSigNumerator,
		TimeSigDenominator: cfg.TimeSigDenominator,
		HostGroupID:        id,
	}, logger)

	surface, err := ui.New(cfg, state, ui.Deps{
		ID:        id,
		Mounter:   host.NewMounter(cfg.Title),
		Transport: transport,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	if err := surface.Render(); err != nil {
		return err
	}
	return ebiten.RunGame(surface)
}
