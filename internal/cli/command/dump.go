// Package command provides CLI command definitions for phash.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/ablaberge/parallel-hash/pkg/intmap"
)

// DumpCommand returns the dump command.
func DumpCommand() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Populate a small map and print its bucket chains",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "capacity",
				Usage: "Fixed bucket count of the map",
				Value: 8,
			},
			&cli.IntFlag{
				Name:  "entries",
				Usage: "Number of sequential keys to insert",
				Value: 32,
			},
		},
		Action: dumpAction,
	}
}

func dumpAction(c *cli.Context) error {
	m, err := intmap.New(c.Int("capacity"))
	if err != nil {
		return err
	}
	defer m.Close()

	for k := int64(0); k < int64(c.Int("entries")); k++ {
		m.Put(k, k*10)
	}

	return m.Dump(c.App.Writer)
}
