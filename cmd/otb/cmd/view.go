package cmd

import (
	"log"
	"os"

	"gioui.org/app"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBoards/internal/viewer"
	"github.com/OpenTraceLab/OpenTraceBoards/pkg/ballmap"
)

var viewCmd = &cobra.Command{
	Use:   "view <board>",
	Short: "Open the ball map in a window",
	Long: `Open an interactive window showing the package ball map of a board.
Hover a ball to see the ports bound to it.

If keyboard or pointer input does not work on Wayland, run with:
  GIO_BACKEND=x11 otb view <board>`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	p, err := openBoard(args[0])
	if err != nil {
		return err
	}
	r, err := ballmap.New(p, nil)
	if err != nil {
		return err
	}

	go func() {
		v := viewer.New(new(app.Window), r)
		if err := v.Run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}
