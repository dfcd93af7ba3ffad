package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/seed"
	"github.com/GoSim-25-26J-441/project-board/internal/board/view"
)

func RunValidateSeed(args []string) {
	if len(args) < 1 {
		log.Fatal("usage: validate-seed <yamlPath>")
	}
	if err := validateSeed(os.Stdout, args[0]); err != nil {
		log.Fatal(err)
	}
}

func validateSeed(w io.Writer, path string) error {
	fixtures, err := seed.Load(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d projects OK\n", path, len(fixtures))
	for i, fx := range fixtures {
		label := view.NewProjectItem(domain.Project{People: fx.People}).PeopleLabel()
		fmt.Fprintf(w, " %d. [%s] %s (%s)\n", i+1, fx.Status, fx.Title, label)
	}
	return nil
}
