package cli

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheDir returns the option cache directory (~/.cache/sochart).
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "sochart"), nil
}

// newCacheCmd creates the 'cache' command group for cache management.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local option cache",
		Long: `Manage the local option cache.

The serve command caches emitted option documents on disk so repeated
requests for an unchanged manifest skip the render. The cache lives in
the user cache directory and is safe to delete at any time.`,
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())
	return cmd
}

// newCacheClearCmd creates the 'cache clear' subcommand.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached option documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}

			var files int
			var bytes int64
			err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return err
				}
				if info, err := d.Info(); err == nil {
					bytes += info.Size()
				}
				files++
				return nil
			})
			if os.IsNotExist(err) {
				printInfo("cache is empty")
				return nil
			}
			if err != nil {
				return err
			}

			if err := os.RemoveAll(dir); err != nil {
				return err
			}
			printSuccess("Cache cleared")
			printDetail("%d entries, %d KiB", files, bytes/1024)
			return nil
		},
	}
}

// newCachePathCmd creates the 'cache path' subcommand.
func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			printKeyValue("cache", dir)
			return nil
		},
	}
}
