package root

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"fleetview/internal/config"
	"fleetview/internal/displayer"
	"fleetview/internal/handoff"
	"fleetview/internal/i18n"
	"fleetview/internal/navigation"
	"fleetview/internal/provider"
	"fleetview/internal/provider/file"
	"fleetview/internal/provider/mock"
	"fleetview/internal/provider/serial"
	"fleetview/internal/screens/home"
	"fleetview/pkg/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// loadTimeout bounds how long --no-tui waits for the first snapshot.
const loadTimeout = 10 * time.Second

func Run(cmd *cobra.Command, args []string) {
	defer log.Sync()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	p := newProvider(cfg)
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Start provider
	if err := p.Start(ctx); err != nil {
		log.Fatal("failed to start vehicle provider", zap.String("source", cfg.Source), zap.Error(err))
	}
	defer p.Stop()

	tr := i18n.New(cfg.Lang)
	log.Info("starting fleetview",
		zap.String("source", cfg.Source),
		zap.Stringer("lang", tr.Language()),
		zap.Bool("tui", !cfg.NoTUI))

	if cfg.NoTUI {
		if err := printSummary(ctx, os.Stdout, cfg, p, tr); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	d := displayer.New(p, tr, cfg.Refresh)
	if err := d.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func newProvider(cfg config.Config) provider.VehicleProvider {
	switch cfg.Source {
	case config.SourceFile:
		return file.New(cfg.File)
	case config.SourceSerial:
		return serial.New(cfg.Port, cfg.Baud)
	default:
		return mock.New(mock.Options{LoadDelay: 1500 * time.Millisecond})
	}
}

// printSummary waits for the first snapshot, applies the configured
// categories the same way the home screen does, and prints the result.
func printSummary(ctx context.Context, w io.Writer, cfg config.Config, p provider.VehicleProvider, tr *i18n.Translator) error {
	cats, err := cfg.SelectedCategories()
	if err != nil {
		return err
	}

	if err := waitLoaded(ctx, p, loadTimeout); err != nil {
		return err
	}

	store := handoff.New()
	nav := navigation.New(navigation.HomeScreen)
	screen := home.New(p, store, nav, tr)
	screen.Sync()
	for _, c := range cats {
		screen.HandleCategoryPress(c)
	}

	vehicles := screen.Vehicles().Vehicles
	fmt.Fprintf(w, "%s (%d)\n", tr.T("HOME_TITLE"), len(vehicles))
	if len(vehicles) == 0 {
		fmt.Fprintln(w, tr.T("NO_VEHICLES"))
		return nil
	}
	for _, v := range vehicles {
		fmt.Fprintf(w, "- %s [%s] %s: %s, %s: %s (%.5f, %.5f)\n",
			v.Name, screen.CategoryLabel(v.CategoryID),
			tr.T("DRIVER"), v.DriverName, tr.T("PHONE"), v.DriverPhone,
			v.Location.Lat, v.Location.Lon)
	}
	return nil
}

func waitLoaded(ctx context.Context, p provider.VehicleProvider, timeout time.Duration) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(timeout)
	for p.IsLoading() {
		select {
		case <-ticker.C:
		case <-deadline:
			return fmt.Errorf("vehicles not loaded after %s", timeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
