package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/spf13/cobra"
)

var (
	debugMode   bool
	logLevel    string
	logJSON     bool
	prefabDir   string
	watchPrefab bool
	monitorBase bool
)

var rootCmd = &cobra.Command{
	Use:   "thirdperson",
	Short: "Third-person camera mode playground",
	Long: `Runs a small platformer scene with a two-mode camera.

Tab (or the left shoulder button) toggles between free look and forward lock.
A toggle pressed in the air waits for the player to land. R (or the right
stick press) recenters the free look camera while the player is idle.`,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "show the debug readout")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (default info, or $"+logLevelEnv+")")
	rootCmd.Flags().BoolVar(&logJSON, "log-json", false, "write logs as JSON")
	rootCmd.Flags().StringVar(&prefabDir, "prefabs", "prefabs", "directory whose prefabs override the embedded ones; empty uses only embedded")
	rootCmd.Flags().BoolVar(&watchPrefab, "watch", false, "reload prefabs and scripts when they change on disk")
	rootCmd.Flags().BoolVarP(&monitorBase, "monitor-base", "m", false, "use base monitor instead of primary (for multi-monitor setups)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGame(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel(logLevel, os.Getenv(logLevelEnv))
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), level, logJSON)
	slog.SetDefault(logger)

	prefabs.SetDir(prefabDir)

	var watcher *prefabs.Watcher
	if watchPrefab && prefabDir != "" {
		watcher, err = prefabs.NewWatcher(prefabDir)
		if err != nil {
			return fmt.Errorf("watch %s: %w", prefabDir, err)
		}
		defer watcher.Close()
		logger.Info("watching prefabs", "dir", prefabDir)
	}

	game, err := NewGame(GameOptions{Debug: debugMode, Watcher: watcher, Logger: logger})
	if err != nil {
		return err
	}

	if monitorBase {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("thirdperson")

	// Hide the native OS cursor; look is driven by right-drag or the stick.
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
