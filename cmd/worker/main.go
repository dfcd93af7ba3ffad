package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker validate-seed <yamlPath> | worker watch")
	}

	switch os.Args[1] {
	case "validate-seed":
		RunValidateSeed(os.Args[2:])
	case "watch":
		RunWatch(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
