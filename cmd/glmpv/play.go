package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var errArgs = errors.New("pass a single media file as argument")

func singleFile(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errArgs
	}
	return nil
}

func playCmd(m mode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   m.String() + " FILE",
		Short: short,
		Args:  singleFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), m, args[0])
		},
	}
}

var (
	simpleCmd = playCmd(modeSimple, "Render straight into the window framebuffer")
	fboCmd    = playCmd(modeFBO, "Render into a framebuffer texture drawn as a quad")
	cubeCmd   = playCmd(modeCube, "Render onto a rotating cube with async property queries")
)
