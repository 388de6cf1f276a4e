package commands

import (
	"errors"
	"fmt"

	"coaster-studio/internal/engineconfig"
	"coaster-studio/internal/logger"
)

// RegisterConfig adds the save command, which writes the config returned by current
// to path (or to the path given as its argument).
func RegisterConfig(r *Registry, path string, current func() engineconfig.Config, log *logger.Logger) {
	withArgs(r, "save", "[path]", func(args []string) error {
		dst := path
		switch len(args) {
		case 0:
		case 1:
			dst = args[0]
		default:
			return errors.New("save: want at most one path")
		}
		cfg := current()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		if err := engineconfig.Save(dst, cfg); err != nil {
			return fmt.Errorf("save %s: %w", dst, err)
		}
		log.Logf("config saved to %s", dst)
		return nil
	})
}
